package outliner

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	activate   key.Binding
	parent     key.Binding
	sortColumn key.Binding
	clearSort  key.Binding
	columns    key.Binding
	preview    key.Binding
	nextStatus key.Binding
	prevStatus key.Binding
	reload     key.Binding
	toggleHelp key.Binding
	quit       key.Binding
	menuToggle key.Binding
	menuClose  key.Binding
	menuUp     key.Binding
	menuDown   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		parent: key.NewBinding(
			key.WithKeys("backspace", "h"),
			key.WithHelp("⌫", "parent folder"),
		),
		sortColumn: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "sort by column"),
		),
		clearSort: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "binder order"),
		),
		columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "columns"),
		),
		preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		nextStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "next status"),
		),
		prevStatus: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "previous status"),
		),
		reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		menuToggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "show/hide"),
		),
		menuClose: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("esc", "close"),
		),
		menuUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		menuDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.activate, k.parent, k.sortColumn, k.columns, k.preview, k.nextStatus, k.toggleHelp, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.activate, k.parent},
		{k.sortColumn, k.clearSort, k.columns, k.preview},
		{k.nextStatus, k.prevStatus, k.reload},
		{k.toggleHelp, k.quit},
	}
}

// menuHelp is shown while the column menu is open.
type menuHelp struct{ keys keyMap }

func (h menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.menuUp, h.keys.menuDown, h.keys.menuToggle, h.keys.menuClose}
}

func (h menuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
