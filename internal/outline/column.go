package outline

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Column is one of the fixed outliner columns.
type Column int

const (
	ColumnTitle Column = iota
	ColumnSynopsis
	ColumnStatus
	ColumnLabel
	ColumnWordCount
	ColumnModified
)

// ModifiedLayout is how the modified column renders timestamps.
const ModifiedLayout = "Jan 2, 2006 15:04"

// rowInput is everything a column needs to compare or render one item.
type rowInput struct {
	item  *Item
	meta  Metadata
	words int
	index int
}

type columnSpec struct {
	name    string
	aliases []string
	header  string
	width   int
	compare func(a, b *rowInput) int
	render  func(in *rowInput) Cell
}

var columns = map[Column]columnSpec{
	ColumnTitle: {
		name:   "title",
		header: "Title",
		width:  32,
		compare: func(a, b *rowInput) int {
			return strings.Compare(a.item.Title, b.item.Title)
		},
		render: func(in *rowInput) Cell {
			return Cell{Column: ColumnTitle, Text: in.item.Title}
		},
	},
	ColumnSynopsis: {
		name:   "synopsis",
		header: "Synopsis",
		width:  40,
		compare: func(a, b *rowInput) int {
			return strings.Compare(a.meta.Synopsis, b.meta.Synopsis)
		},
		render: func(in *rowInput) Cell {
			return Cell{Column: ColumnSynopsis, Text: in.meta.Synopsis}
		},
	},
	ColumnStatus: {
		name:   "status",
		header: "Status",
		width:  14,
		compare: func(a, b *rowInput) int {
			return cmp.Compare(a.meta.Status, b.meta.Status)
		},
		render: func(in *rowInput) Cell {
			return Cell{Column: ColumnStatus, Text: in.meta.Status.String()}
		},
	},
	ColumnLabel: {
		name:   "label",
		header: "Label",
		width:  14,
		compare: func(a, b *rowInput) int {
			return strings.Compare(a.meta.labelName(), b.meta.labelName())
		},
		render: func(in *rowInput) Cell {
			c := Cell{Column: ColumnLabel}
			if l := in.meta.Label; l != nil {
				c.Text = l.Name
				c.Color = l.Color
				if l.Color != "" {
					c.Foreground = ContrastForeground(l.Color)
				}
			}
			return c
		},
	},
	ColumnWordCount: {
		name:    "word-count",
		aliases: []string{"words", "wordcount", "word_count"},
		header:  "Words",
		width:   8,
		compare: func(a, b *rowInput) int {
			return cmp.Compare(a.words, b.words)
		},
		render: func(in *rowInput) Cell {
			return Cell{Column: ColumnWordCount, Text: strconv.Itoa(in.words)}
		},
	},
	ColumnModified: {
		name:   "modified",
		header: "Modified",
		width:  18,
		compare: func(a, b *rowInput) int {
			return a.meta.modified().Compare(b.meta.modified())
		},
		render: func(in *rowInput) Cell {
			c := Cell{Column: ColumnModified}
			if in.meta.Modified != nil {
				c.Text = in.meta.Modified.Format(ModifiedLayout)
			}
			return c
		},
	},
}

// AllColumns returns every column in display order.
func AllColumns() []Column {
	return []Column{
		ColumnTitle,
		ColumnSynopsis,
		ColumnStatus,
		ColumnLabel,
		ColumnWordCount,
		ColumnModified,
	}
}

// DefaultColumns is the view a new outliner starts with.
func DefaultColumns() []Column {
	return []Column{ColumnTitle, ColumnSynopsis, ColumnStatus, ColumnLabel, ColumnWordCount}
}

func (c Column) valid() bool {
	_, ok := columns[c]
	return ok
}

// String is the column's config name, e.g. "word-count".
func (c Column) String() string {
	if spec, ok := columns[c]; ok {
		return spec.name
	}
	return fmt.Sprintf("column(%d)", int(c))
}

// Header is the column's display heading.
func (c Column) Header() string {
	return columns[c].header
}

// Width is the column's default display width.
func (c Column) Width() int {
	return columns[c].width
}

// ParseColumn resolves a config name or alias to a Column.
func ParseColumn(name string) (Column, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, c := range AllColumns() {
		spec := columns[c]
		if spec.name == key || strings.EqualFold(spec.header, key) {
			return c, nil
		}
		for _, alias := range spec.aliases {
			if alias == key {
				return c, nil
			}
		}
	}
	return ColumnTitle, fmt.Errorf("unknown column %q", name)
}

// ParseColumns resolves a list of names, failing on the first unknown one.
func ParseColumns(names []string) ([]Column, error) {
	out := make([]Column, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := ParseColumn(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ColumnNames is the inverse of ParseColumns.
func ColumnNames(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.String()
	}
	return out
}
