package outliner

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	crumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888")).
			Italic(true).
			Padding(1, 2)

	statusBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f38ba8"))

	previewStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#334455"))

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#334455")).
			Padding(0, 1)

	menuCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("#0AF")).
			Foreground(lipgloss.Color("#FFF"))

	labelChipStyle = lipgloss.NewStyle().Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#334455")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#0AF")).
		Background(lipgloss.Color("#224")).
		Bold(false)
	return s
}

// labelRowStyles puts the cursor row on the label color.
func labelRowStyles(color, foreground string) table.Styles {
	s := tableStyles()
	if color == "" {
		return s
	}
	s.Selected = s.Selected.Background(lipgloss.Color(color))
	if foreground != "" {
		s.Selected = s.Selected.Foreground(lipgloss.Color(foreground))
	}
	return s
}

// labelChip renders a label name on its own color with a readable foreground.
func labelChip(name, color, foreground string) string {
	style := labelChipStyle
	if color != "" {
		style = style.Background(lipgloss.Color(color))
	}
	if foreground != "" {
		style = style.Foreground(lipgloss.Color(foreground))
	}
	return style.Render(name)
}
