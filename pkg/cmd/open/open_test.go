package open

import (
	"path/filepath"
	"testing"

	"github.com/Paintersrp/quire/internal/fzf"
	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/state"
	"github.com/Paintersrp/quire/pkg/cmd/cmdtest"
)

var files = map[string]string{
	"draft/ch1.md":    "storm",
	"draft/cover.png": "png",
}

type recorder struct {
	opened  []string
	queries []string
	pick    string
	err     error
}

func stub(t *testing.T) *recorder {
	t.Helper()
	r := &recorder{}

	prevOpen, prevFind := openEditor, findDocument
	openEditor = func(path string) error {
		r.opened = append(r.opened, path)
		return nil
	}
	findDocument = func(s *state.State, query string) (*outline.Item, error) {
		r.queries = append(r.queries, query)
		if r.err != nil {
			return nil, r.err
		}
		return s.Binder.Find(r.pick)
	}
	t.Cleanup(func() { openEditor, findDocument = prevOpen, prevFind })

	return r
}

func TestOpenByIdentifier(t *testing.T) {
	st := cmdtest.NewState(t, files)
	r := stub(t)

	if _, _, err := cmdtest.Execute(NewCmdOpen(st), "draft/ch1.md"); err != nil {
		t.Fatalf("open returned error: %v", err)
	}

	want := filepath.Join(st.Project.Dir, "draft", "ch1.md")
	if len(r.opened) != 1 || r.opened[0] != want {
		t.Fatalf("expected %s to be opened, got %v", want, r.opened)
	}
	if len(r.queries) != 0 {
		t.Fatalf("fuzzy finder should not run, got queries %v", r.queries)
	}
}

func TestOpenSearchesUnknownQuery(t *testing.T) {
	st := cmdtest.NewState(t, files)
	r := stub(t)
	r.pick = "draft/ch1.md"

	if _, _, err := cmdtest.Execute(NewCmdOpen(st), "storm"); err != nil {
		t.Fatalf("open returned error: %v", err)
	}

	if len(r.queries) != 1 || r.queries[0] != "storm" {
		t.Fatalf("expected the finder to be seeded with the query, got %v", r.queries)
	}
	if len(r.opened) != 1 {
		t.Fatalf("expected the picked document to be opened, got %v", r.opened)
	}
}

func TestOpenCancelledPicker(t *testing.T) {
	st := cmdtest.NewState(t, files)
	r := stub(t)
	r.err = fzf.ErrNoSelection

	if _, _, err := cmdtest.Execute(NewCmdOpen(st)); err != nil {
		t.Fatalf("a cancelled picker is not an error, got %v", err)
	}
	if len(r.opened) != 0 {
		t.Fatalf("nothing should be opened, got %v", r.opened)
	}
}

func TestOpenRejectsImages(t *testing.T) {
	st := cmdtest.NewState(t, files)
	stub(t)

	if _, _, err := cmdtest.Execute(NewCmdOpen(st), "draft/cover.png"); err == nil {
		t.Fatalf("expected an error opening an image")
	}
}
