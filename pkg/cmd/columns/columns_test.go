package columns

import (
	"strings"
	"testing"

	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/pkg/cmd/cmdtest"
)

func TestColumnsListsDefaults(t *testing.T) {
	st := cmdtest.NewState(t, nil)

	out, _, err := cmdtest.Execute(NewCmdColumns(st))
	if err != nil {
		t.Fatalf("columns returned error: %v", err)
	}

	for _, want := range []string{"[x] title", "[x] word-count", "[ ] modified"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestColumnsSetPersists(t *testing.T) {
	st := cmdtest.NewState(t, nil)

	out, _, err := cmdtest.Execute(NewCmdColumns(st), "modified", "status")
	if err != nil {
		t.Fatalf("columns returned error: %v", err)
	}
	if !strings.Contains(out, "[x] modified") || !strings.Contains(out, "[ ] synopsis") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	got := st.Project.Outline.Columns
	want := []string{"title", "status", "modified"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestColumnsHidingSortColumnSortsByTitle(t *testing.T) {
	st := cmdtest.NewState(t, nil)
	st.Project.Outline = config.OutlineConfig{
		Columns: []string{"title", "status"},
		Sort:    config.OutlineSort{Field: "status", Order: config.SortDescending},
	}

	if _, _, err := cmdtest.Execute(NewCmdColumns(st), "label"); err != nil {
		t.Fatalf("columns returned error: %v", err)
	}

	vs, err := st.Project.ViewState()
	if err != nil {
		t.Fatalf("ViewState returned error: %v", err)
	}
	if !vs.Sorted || vs.Sort != outline.ColumnTitle || !vs.Ascending {
		t.Fatalf("expected title ascending, got %+v", vs)
	}
}

func TestColumnsRejectsUnknown(t *testing.T) {
	st := cmdtest.NewState(t, nil)

	if _, _, err := cmdtest.Execute(NewCmdColumns(st), "pages"); err == nil {
		t.Fatalf("expected an error for an unknown column")
	}
}

func TestColumnsStoresSort(t *testing.T) {
	st := cmdtest.NewState(t, nil)

	out, _, err := cmdtest.Execute(NewCmdColumns(st), "--sort", "modified", "--order", "desc")
	if err != nil {
		t.Fatalf("columns returned error: %v", err)
	}
	if !strings.Contains(out, "[x] modified") || !strings.Contains(out, "(sorted descending)") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	vs, err := st.Project.ViewState()
	if err != nil {
		t.Fatalf("ViewState returned error: %v", err)
	}
	if !vs.Sorted || vs.Sort != outline.ColumnModified || vs.Ascending {
		t.Fatalf("expected modified descending, got %+v", vs)
	}
}

func TestColumnsRejectsBadOrder(t *testing.T) {
	st := cmdtest.NewState(t, nil)

	if _, _, err := cmdtest.Execute(NewCmdColumns(st), "--sort", "title", "--order", "sideways"); err == nil {
		t.Fatalf("expected an error for an unknown order")
	}
}
