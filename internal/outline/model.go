package outline

import (
	"slices"
)

// Cell is the display-ready value of one column in one row. Label cells also
// carry the label color and a foreground that stays readable on it.
type Cell struct {
	Column     Column
	Text       string
	Color      string
	Foreground string
}

// Row is one child of the folder, projected onto the visible columns.
type Row struct {
	Item  *Item
	Index int
	Cells []Cell
}

// Cell returns the row's value for c, if c is visible.
func (r Row) Cell(c Column) (Cell, bool) {
	for _, cell := range r.Cells {
		if cell.Column == c {
			return cell, true
		}
	}
	return Cell{}, false
}

// ViewState is the outliner's user-controlled state. Sorted is false when rows
// keep binder order.
type ViewState struct {
	Columns   []Column
	Sort      Column
	Sorted    bool
	Ascending bool
}

// Model projects a folder's immediate children into rows. It owns the view
// state and treats the folder, contents and metadata as read-only snapshots.
// A Model is meant to be driven from a single goroutine.
type Model struct {
	folder   *Item
	contents Contents
	metadata MetadataMap

	visible   map[Column]bool
	sortCol   Column
	sorted    bool
	ascending bool

	words *wordCounter
	rows  []Row
	dirty bool

	onSelect         func(*Item)
	onActivate       func(*Item)
	onMetadataChange func(id string, md Metadata)
}

// New returns a model over folder showing DefaultColumns in binder order.
func New(folder *Item, contents Contents, metadata MetadataMap) *Model {
	m := &Model{
		visible:   make(map[Column]bool),
		ascending: true,
		words:     newWordCounter(),
	}
	m.SetSnapshot(folder, contents, metadata)
	m.SetVisibleColumns(DefaultColumns())
	return m
}

// SetSnapshot replaces the folder and the two lookups the rows are built from.
func (m *Model) SetSnapshot(folder *Item, contents Contents, metadata MetadataMap) {
	m.folder = folder
	m.contents = contents
	m.metadata = metadata
	m.dirty = true
}

func (m *Model) Folder() *Item {
	return m.folder
}

// Metadata returns the item's metadata, or the zero record when the provider
// has none.
func (m *Model) Metadata(id string) Metadata {
	if m.metadata == nil {
		return Metadata{}
	}
	return m.metadata[id]
}

// Content returns the item's text, or "" when the provider has none.
func (m *Model) Content(id string) string {
	if m.contents == nil {
		return ""
	}
	return m.contents[id]
}

// WordCount is the word count of the item's content.
func (m *Model) WordCount(id string) int {
	return m.words.count(m.Content(id))
}

// SetVisibleColumns replaces the visible set. Title is always kept, whatever
// the caller passes; unknown columns are ignored.
func (m *Model) SetVisibleColumns(cols []Column) {
	visible := map[Column]bool{ColumnTitle: true}
	for _, c := range cols {
		if c.valid() {
			visible[c] = true
		}
	}
	m.visible = visible
	m.resetHiddenSort()
	m.dirty = true
}

// ToggleColumn flips c's visibility. Title cannot be hidden.
func (m *Model) ToggleColumn(c Column) {
	if c == ColumnTitle || !c.valid() {
		return
	}
	if m.visible[c] {
		delete(m.visible, c)
	} else {
		m.visible[c] = true
	}
	m.resetHiddenSort()
	m.dirty = true
}

// IsVisible reports whether c is shown.
func (m *Model) IsVisible(c Column) bool {
	return m.visible[c]
}

// VisibleColumns returns the shown columns in display order.
func (m *Model) VisibleColumns() []Column {
	out := make([]Column, 0, len(m.visible))
	for _, c := range AllColumns() {
		if m.visible[c] {
			out = append(out, c)
		}
	}
	return out
}

// SetSort orders rows by c. Sorting by a hidden column shows it.
func (m *Model) SetSort(c Column, ascending bool) {
	if !c.valid() {
		return
	}
	m.visible[c] = true
	m.sortCol = c
	m.sorted = true
	m.ascending = ascending
	m.dirty = true
}

// ClearSort returns rows to binder order.
func (m *Model) ClearSort() {
	m.sorted = false
	m.sortCol = ColumnTitle
	m.ascending = true
	m.dirty = true
}

// ClickHeader behaves like clicking a column header: the current sort column
// flips direction, any other column sorts ascending.
func (m *Model) ClickHeader(c Column) {
	if m.sorted && m.sortCol == c {
		m.SetSort(c, !m.ascending)
		return
	}
	m.SetSort(c, true)
}

// SortState reports the sort column, its direction, and whether rows are
// sorted at all.
func (m *Model) SortState() (col Column, ascending bool, sorted bool) {
	return m.sortCol, m.ascending, m.sorted
}

// State captures the view state.
func (m *Model) State() ViewState {
	return ViewState{
		Columns:   m.VisibleColumns(),
		Sort:      m.sortCol,
		Sorted:    m.sorted,
		Ascending: m.ascending,
	}
}

// ApplyState restores a captured view state.
func (m *Model) ApplyState(s ViewState) {
	m.SetVisibleColumns(s.Columns)
	if s.Sorted {
		m.SetSort(s.Sort, s.Ascending)
	} else {
		m.ClearSort()
	}
}

// resetHiddenSort puts the sort back on title when its column was hidden.
func (m *Model) resetHiddenSort() {
	if m.sorted && !m.visible[m.sortCol] {
		m.sortCol = ColumnTitle
		m.ascending = true
	}
}

// Empty reports whether the folder has no children to show.
func (m *Model) Empty() bool {
	return m.folder == nil || len(m.folder.Children) == 0
}

// Rows returns the folder's children sorted by the current sort column and
// projected onto the visible columns. Equal keys keep binder order, and the
// result is the same for the same snapshot and view state.
func (m *Model) Rows() []Row {
	if m.dirty || m.rows == nil {
		m.rows = m.buildRows()
		m.dirty = false
	}
	return cloneRows(m.rows)
}

// cloneRows copies rows and their cells so callers never share the cache.
func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		r.Cells = slices.Clone(r.Cells)
		out[i] = r
	}
	return out
}

func (m *Model) buildRows() []Row {
	if m.Empty() {
		return []Row{}
	}

	needWords := m.visible[ColumnWordCount] || (m.sorted && m.sortCol == ColumnWordCount)

	inputs := make([]*rowInput, 0, len(m.folder.Children))
	for i, child := range m.folder.Children {
		if child == nil {
			continue
		}
		in := &rowInput{item: child, meta: m.Metadata(child.ID), index: i}
		if needWords {
			in.words = m.WordCount(child.ID)
		}
		inputs = append(inputs, in)
	}

	if m.sorted {
		compare := columns[m.sortCol].compare
		ascending := m.ascending
		slices.SortStableFunc(inputs, func(a, b *rowInput) int {
			if ascending {
				return compare(a, b)
			}
			return compare(b, a)
		})
	}

	visible := m.VisibleColumns()
	rows := make([]Row, len(inputs))
	for i, in := range inputs {
		cells := make([]Cell, len(visible))
		for j, c := range visible {
			cells[j] = columns[c].render(in)
		}
		rows[i] = Row{Item: in.item, Index: in.index, Cells: cells}
	}
	return rows
}

// OnSelect registers the "item selected" callback.
func (m *Model) OnSelect(fn func(*Item)) {
	m.onSelect = fn
}

// OnActivate registers the "item activated" callback.
func (m *Model) OnActivate(fn func(*Item)) {
	m.onActivate = fn
}

// OnMetadataChange registers the callback that receives edited metadata. The
// model's own snapshot is left untouched; the provider is expected to store the
// change and hand back a fresh snapshot.
func (m *Model) OnMetadataChange(fn func(id string, md Metadata)) {
	m.onMetadataChange = fn
}

func (m *Model) Select(item *Item) {
	if item != nil && m.onSelect != nil {
		m.onSelect(item)
	}
}

func (m *Model) Activate(item *Item) {
	if item != nil && m.onActivate != nil {
		m.onActivate(item)
	}
}

func (m *Model) ChangeMetadata(id string, md Metadata) {
	if m.onMetadataChange != nil {
		m.onMetadataChange(id, md)
	}
}
