// Package outliner is the interactive outline view: a sortable table of one
// binder folder with a column menu and an optional preview pane.
package outliner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/quire/internal/binder"
	"github.com/Paintersrp/quire/internal/editor"
	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/preview"
	"github.com/Paintersrp/quire/internal/state"
)

const (
	sortUp   = " ▲"
	sortDown = " ▼"

	// title, blank line, blank line, footer, help, app padding
	chromeHeight = 7
	minColumn    = 12
)

type editorClosedMsg struct {
	err error
}

type Model struct {
	state    *state.State
	outline  *outline.Model
	table    table.Model
	help     help.Model
	keys     keyMap
	menu     columnMenu
	renderer *preview.Renderer

	folderID    string
	rows        []outline.Row
	selectedID  string
	rowTint     string
	showPreview bool
	previewID   string
	previewText string
	message     string
	messageErr  bool
	footer      string
	width       int
	height      int

	pending tea.Cmd
	open    func(path string) tea.Cmd
}

// New builds the outliner over folderID, restoring the project's saved view.
func New(s *state.State, folderID string) (*Model, error) {
	if s == nil || s.Binder == nil {
		return nil, fmt.Errorf("outliner requires a loaded project")
	}

	folder, err := s.Binder.Folder(folderID)
	if err != nil {
		return nil, err
	}

	m := &Model{
		state:    s,
		keys:     newKeyMap(),
		help:     help.New(),
		renderer: preview.New(s.Project.Theme),
		folderID: folder.ID,
		open:     openInEditor,
	}
	m.help.Styles.ShortKey = helpStyle.Copy().Bold(true)
	m.help.Styles.ShortDesc = helpStyle
	m.help.Styles.FullKey = helpStyle.Copy().Bold(true)
	m.help.Styles.FullDesc = helpStyle

	m.outline = outline.New(folder, s.Binder.Contents, s.Binder.Metadata)
	if vs, err := s.Project.ViewState(); err != nil {
		s.Logger.WithError(err).Warn("ignoring saved outline view")
	} else {
		m.outline.ApplyState(vs)
	}
	m.outline.OnSelect(m.handleSelect)
	m.outline.OnActivate(m.handleActivate)
	m.outline.OnMetadataChange(m.handleMetadataChange)

	m.table = table.New(
		table.WithFocused(true),
		table.WithStyles(tableStyles()),
	)
	m.footer = s.StatusLine()
	m.refresh("")

	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return m.watch()
}

func (m *Model) watch() tea.Cmd {
	if m.state.Watcher == nil {
		return nil
	}
	return m.state.Watcher.Start()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case editorClosedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("editor: %w", msg.err))
		}
		m.reload()
		return m, nil
	case state.ProjectChangedMsg:
		m.reload()
		return m, m.watch()
	case state.ProjectWatcherErrMsg:
		m.state.Logger.WithError(msg.Err).Warn("project watcher error")
		m.setError(msg.Err)
		return m, m.watch()
	case tea.KeyMsg:
		if m.menu.open {
			return m.updateMenu(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.sortColumn):
		idx := int(msg.String()[0] - '1')
		m.outline.ClickHeader(outline.AllColumns()[idx])
		m.refresh(m.selectedID)
		return m, nil
	case key.Matches(msg, m.keys.clearSort):
		m.outline.ClearSort()
		m.refresh(m.selectedID)
		return m, nil
	case key.Matches(msg, m.keys.columns):
		m.menu.open = true
		return m, nil
	case key.Matches(msg, m.keys.preview):
		m.showPreview = !m.showPreview
		m.previewID = ""
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.activate):
		if row, ok := m.selectedRow(); ok {
			m.outline.Activate(row.Item)
		}
		cmd := m.pending
		m.pending = nil
		return m, cmd
	case key.Matches(msg, m.keys.parent):
		m.toParent()
		return m, nil
	case key.Matches(msg, m.keys.nextStatus):
		m.cycleStatus(true)
		return m, nil
	case key.Matches(msg, m.keys.prevStatus):
		m.cycleStatus(false)
		return m, nil
	case key.Matches(msg, m.keys.reload):
		m.setMessage("")
		m.reload()
		if !m.messageErr {
			m.setMessage("Reloaded")
		}
		return m, nil
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.syncSelection()
	return m, cmd
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.menuClose):
		m.menu.open = false
	case key.Matches(msg, m.keys.menuUp):
		m.menu.move(-1)
	case key.Matches(msg, m.keys.menuDown):
		m.menu.move(1)
	case key.Matches(msg, m.keys.menuToggle):
		m.outline.ToggleColumn(m.menu.current())
		m.refresh(m.selectedID)
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	}
	return m, nil
}

// quit stores the view so the next session opens the same way.
func (m *Model) quit() tea.Cmd {
	if m.state.Config != nil {
		if err := m.state.Config.SaveViewState(m.outline.State()); err != nil {
			m.state.Logger.WithError(err).Error("failed to save outline view")
		}
	}
	return tea.Quit
}

func (m *Model) handleSelect(item *outline.Item) {
	m.selectedID = item.ID
	m.updatePreview()
}

func (m *Model) handleActivate(item *outline.Item) {
	if item.IsFolder() {
		m.enterFolder(item.ID, "")
		return
	}

	path, err := m.state.Binder.Path(item.ID)
	if err != nil {
		m.setError(err)
		return
	}
	m.pending = m.open(path)
}

func (m *Model) handleMetadataChange(id string, md outline.Metadata) {
	if err := m.state.Binder.SaveMetadata(id, md); err != nil {
		m.state.Logger.WithError(err).WithField("id", id).Error("failed to save metadata")
		m.setError(err)
		return
	}

	m.outline.SetSnapshot(m.outline.Folder(), m.state.Binder.Contents, m.state.Binder.Metadata)
	m.previewID = ""

	title := id
	if item, err := m.state.Binder.Find(id); err == nil {
		title = item.Title
	}
	m.setMessage(fmt.Sprintf("%s: %s", title, md.Status))
}

func (m *Model) cycleStatus(forward bool) {
	if m.selectedID == "" {
		return
	}

	md := m.outline.Metadata(m.selectedID)
	if forward {
		md.Status = md.Status.Next()
	} else {
		md.Status = md.Status.Prev()
	}
	m.outline.ChangeMetadata(m.selectedID, md)
	m.refresh(m.selectedID)
}

func (m *Model) enterFolder(id, keepID string) {
	folder, err := m.state.Binder.Folder(id)
	if err != nil {
		m.setError(err)
		return
	}

	m.folderID = folder.ID
	m.outline.SetSnapshot(folder, m.state.Binder.Contents, m.state.Binder.Metadata)
	m.selectedID = ""
	m.message = ""
	m.refresh(keepID)
}

func (m *Model) toParent() {
	if m.folderID == "" {
		return
	}
	m.enterFolder(binder.Parent(m.folderID), m.folderID)
}

// reload re-reads the project and keeps the cursor on the same item when it
// still exists. A folder that disappeared sends the view back to the root.
func (m *Model) reload() {
	keep := m.selectedID
	if err := m.state.Reload(); err != nil {
		m.setError(err)
		return
	}

	folder, err := m.state.Binder.Folder(m.folderID)
	if err != nil {
		folder = m.state.Binder.Root
	}
	m.folderID = folder.ID
	m.outline.SetSnapshot(folder, m.state.Binder.Contents, m.state.Binder.Metadata)
	m.footer = m.state.StatusLine()
	m.selectedID = ""
	m.previewID = ""
	m.refresh(keep)
}

// refresh rebuilds the table from the outline rows and puts the cursor on
// keepID, or the first row.
func (m *Model) refresh(keepID string) {
	m.rows = m.outline.Rows()
	cols := m.outline.VisibleColumns()
	widths := m.columnWidths(cols)

	tcols := make([]table.Column, len(cols))
	for i, c := range cols {
		tcols[i] = table.Column{Title: m.header(c), Width: widths[i]}
	}

	trows := make([]table.Row, len(m.rows))
	for i, row := range m.rows {
		cells := make(table.Row, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.Text
		}
		trows[i] = cells
	}

	// Rows must never have more cells than there are columns, so clear them
	// before the column set changes.
	m.table.SetRows(nil)
	m.table.SetColumns(tcols)
	m.table.SetRows(trows)

	cursor := 0
	for i, row := range m.rows {
		if row.Item.ID == keepID {
			cursor = i
			break
		}
	}
	m.table.SetCursor(cursor)
	m.syncSelection()
}

func (m *Model) syncSelection() {
	row, ok := m.selectedRow()
	if !ok {
		m.selectedID = ""
		m.tint("")
		return
	}
	if row.Item.ID != m.selectedID {
		m.outline.Select(row.Item)
	}

	md := m.outline.Metadata(row.Item.ID)
	if md.Label != nil {
		m.tint(md.Label.Color)
	} else {
		m.tint("")
	}
}

// tint colors the cursor row with the selected item's label.
func (m *Model) tint(color string) {
	if color == m.rowTint {
		return
	}
	m.rowTint = color
	fg := ""
	if color != "" {
		fg = outline.ContrastForeground(color)
	}
	m.table.SetStyles(labelRowStyles(color, fg))
}

func (m *Model) selectedRow() (outline.Row, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return outline.Row{}, false
	}
	return m.rows[idx], true
}

func (m *Model) header(c outline.Column) string {
	col, ascending, sorted := m.outline.SortState()
	if !sorted || col != c {
		return c.Header()
	}
	if ascending {
		return c.Header() + sortUp
	}
	return c.Header() + sortDown
}

// columnWidths fits the default widths into the table width by shrinking the
// synopsis column first and the title column second.
func (m *Model) columnWidths(cols []outline.Column) []int {
	widths := make([]int, len(cols))
	total := 0
	for i, c := range cols {
		widths[i] = c.Width()
		total += widths[i] + 2
	}

	avail := m.tableWidth()
	if avail <= 0 || total <= avail {
		return widths
	}

	for _, shrink := range []outline.Column{outline.ColumnSynopsis, outline.ColumnTitle} {
		for i, c := range cols {
			if c != shrink || total <= avail {
				continue
			}
			cut := min(total-avail, widths[i]-minColumn)
			if cut > 0 {
				widths[i] -= cut
				total -= cut
			}
		}
	}
	return widths
}

func (m *Model) tableWidth() int {
	if m.width == 0 {
		return 0
	}
	w := m.width - appStyle.GetHorizontalFrameSize()
	if m.showPreview {
		w -= m.previewWidth() + previewStyle.GetHorizontalFrameSize()
	}
	return max(w, 20)
}

func (m *Model) previewWidth() int {
	if m.width == 0 {
		return 0
	}
	return (m.width - appStyle.GetHorizontalFrameSize()) * 2 / 5
}

func (m *Model) resize() {
	m.help.Width = m.width - appStyle.GetHorizontalFrameSize()
	m.table.SetWidth(m.tableWidth())
	m.table.SetHeight(max(m.height-chromeHeight, 3))
	m.refresh(m.selectedID)
	m.updatePreview()
}

func (m *Model) updatePreview() {
	if !m.showPreview || m.selectedID == "" || m.selectedID == m.previewID {
		return
	}

	text, err := m.renderer.Item(m.state.Binder, m.selectedID, m.previewWidth()-2)
	if err != nil {
		text = errorStyle.Render(err.Error())
	}
	m.previewID = m.selectedID
	m.previewText = text
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.messageErr = false
}

func (m *Model) setError(err error) {
	m.message = err.Error()
	m.messageErr = true
}

func (m *Model) View() string {
	var body string
	if m.outline.Empty() {
		body = emptyStyle.Render("This folder is empty.")
	} else {
		body = m.table.View()
	}

	if m.menu.open {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.menu.view(m.outline))
	}

	if m.showPreview {
		pane := previewStyle.
			Width(m.previewWidth()).
			MaxHeight(max(m.height-chromeHeight, 3)).
			Render(m.previewText)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, pane)
	}

	var helpView string
	if m.menu.open {
		helpView = m.help.View(menuHelp{keys: m.keys})
	} else {
		helpView = m.help.View(m.keys)
	}

	return appStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.breadcrumb(),
		"",
		body,
		"",
		m.footerView(),
		helpView,
	))
}

func (m *Model) breadcrumb() string {
	name := m.state.ProjectName
	if name == "" {
		name = m.state.Binder.Root.Title
	}

	var crumbs []string
	if m.folderID != "" {
		segs := strings.Split(m.folderID, "/")
		for i := range segs {
			if item, err := m.state.Binder.Find(strings.Join(segs[:i+1], "/")); err == nil {
				crumbs = append(crumbs, item.Title)
			}
		}
	}

	order := "binder order"
	if col, ascending, sorted := m.outline.SortState(); sorted {
		order = "by " + col.Header()
		if ascending {
			order += sortUp
		} else {
			order += sortDown
		}
	}

	line := titleStyle.Render(name)
	if len(crumbs) > 0 {
		line += crumbStyle.Render("/ " + strings.Join(crumbs, " / "))
	}
	return line + crumbStyle.Render("  ("+order+")")
}

func (m *Model) footerView() string {
	if m.message != "" {
		if m.messageErr {
			return errorStyle.Render(m.message)
		}
		return statusBannerStyle.Render(m.message)
	}

	var parts []string
	if m.selectedID != "" {
		md := m.outline.Metadata(m.selectedID)
		if md.Label != nil && md.Label.Name != "" {
			fg := ""
			if md.Label.Color != "" {
				fg = outline.ContrastForeground(md.Label.Color)
			}
			parts = append(parts, labelChip(md.Label.Name, md.Label.Color, fg))
		}
	}
	if m.footer != "" {
		parts = append(parts, statusBannerStyle.Render(m.footer))
	}
	return strings.Join(parts, " ")
}

func openInEditor(path string) tea.Cmd {
	launch, err := editor.ForPath(path)
	if err != nil {
		return func() tea.Msg { return editorClosedMsg{err: err} }
	}
	if launch.Wait {
		return tea.ExecProcess(launch.Cmd, func(err error) tea.Msg {
			return editorClosedMsg{err: err}
		})
	}
	return func() tea.Msg { return editorClosedMsg{err: launch.Run()} }
}

// Run starts the outliner full screen.
func Run(s *state.State, folderID string) error {
	m, err := New(s, folderID)
	if err != nil {
		return err
	}

	preview.ApplyTheme(s.Project.Theme)

	if _, err := s.Watch(); err != nil {
		s.Logger.WithError(err).Warn("live reload disabled")
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
