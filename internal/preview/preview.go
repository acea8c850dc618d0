// Package preview renders binder items as styled markdown for the terminal.
package preview

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/quire/internal/binder"
	"github.com/Paintersrp/quire/internal/outline"
)

const (
	minWidth     = 20
	defaultWidth = 100
)

// Renderer wraps glamour renderers for one theme, keeping one per wrap width.
type Renderer struct {
	theme     string
	profile   termenv.Profile
	renderers map[int]*glamour.TermRenderer
}

func New(theme string) *Renderer {
	if theme == "" {
		theme = "dark"
	}
	return &Renderer{
		theme:     theme,
		profile:   ColorProfile(theme),
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render styles markdown wrapped to width.
func (r *Renderer) Render(markdown string, width int) (string, error) {
	if width <= 0 {
		width = defaultWidth
	}
	if width < minWidth {
		width = minWidth
	}

	tr, ok := r.renderers[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.theme),
			glamour.WithWordWrap(width),
			glamour.WithColorProfile(r.profile),
		)
		if err != nil {
			return "", fmt.Errorf("failed to create renderer: %w", err)
		}
		r.renderers[width] = tr
	}

	out, err := tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// Item renders a binder item: its metadata as a header followed by the body
// for text documents, or the child titles for folders.
func (r *Renderer) Item(b *binder.Binder, id string, width int) (string, error) {
	md, err := Markdown(b, id)
	if err != nil {
		return "", err
	}
	return r.Render(md, width)
}

// Markdown assembles the markdown shown for an item.
func Markdown(b *binder.Binder, id string) (string, error) {
	item, err := b.Find(id)
	if err != nil {
		return "", err
	}
	meta := b.Metadata[item.ID]

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", item.Title)

	var facts []string
	if meta.Status != outline.StatusNone {
		facts = append(facts, "**"+meta.Status.String()+"**")
	}
	if meta.Label != nil && meta.Label.Name != "" {
		facts = append(facts, "_"+meta.Label.Name+"_")
	}
	if !item.IsFolder() && item.Kind == outline.KindText {
		facts = append(facts, fmt.Sprintf("%d words", outline.WordCount(b.Contents[item.ID])))
	}
	if meta.Modified != nil {
		facts = append(facts, meta.Modified.Format(outline.ModifiedLayout))
	}
	if len(facts) > 0 {
		sb.WriteString(strings.Join(facts, " · "))
		sb.WriteString("\n\n")
	}

	if meta.Synopsis != "" {
		for _, line := range strings.Split(meta.Synopsis, "\n") {
			sb.WriteString("> " + line + "\n")
		}
		sb.WriteString("\n")
	}

	switch {
	case item.IsFolder():
		if len(item.Children) == 0 {
			sb.WriteString("_Empty folder_\n")
		}
		for _, child := range item.Children {
			fmt.Fprintf(&sb, "- %s\n", child.Title)
		}
	case item.Kind == outline.KindText:
		body, err := b.Body(item.ID)
		if err != nil {
			return "", err
		}
		sb.WriteString("---\n\n")
		sb.WriteString(body)
	default:
		fmt.Fprintf(&sb, "_%s file: `%s`_\n", item.Kind, item.ID)
	}

	return sb.String(), nil
}

// ColorProfile picks the terminal color profile for theme. NO_COLOR and the
// notty theme force plain output; otherwise termenv's guess is upgraded when
// TERM or COLORTERM advertise more colors than detection found.
func ColorProfile(theme string) termenv.Profile {
	if theme == "notty" || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return termenv.Ascii
	}

	profile := termenv.ColorProfile()

	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	return profile
}

// ApplyTheme points lipgloss at the profile and background for theme.
func ApplyTheme(theme string) {
	lipgloss.SetColorProfile(ColorProfile(theme))
	lipgloss.SetHasDarkBackground(theme != "light")
}
