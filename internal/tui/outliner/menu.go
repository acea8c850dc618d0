package outliner

import (
	"fmt"
	"strings"

	"github.com/Paintersrp/quire/internal/outline"
)

// columnMenu lists every column with its visibility. Title is listed but
// cannot be switched off.
type columnMenu struct {
	open   bool
	cursor int
}

func (c *columnMenu) move(delta int) {
	n := len(outline.AllColumns())
	c.cursor = (c.cursor + delta + n) % n
}

func (c *columnMenu) current() outline.Column {
	return outline.AllColumns()[c.cursor]
}

func (c *columnMenu) view(m *outline.Model) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Columns"))
	sb.WriteString("\n\n")

	for i, col := range outline.AllColumns() {
		mark := "[ ]"
		if m.IsVisible(col) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %d %s", mark, i+1, col.Header())
		if col == outline.ColumnTitle {
			line += crumbStyle.Render(" (always shown)")
		}
		if i == c.cursor {
			line = menuCursorStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return menuStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
