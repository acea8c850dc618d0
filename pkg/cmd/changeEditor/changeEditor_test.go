package changeEditor

import (
	"testing"

	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/pkg/cmd/cmdtest"
)

func TestChangeEditorByName(t *testing.T) {
	st := cmdtest.NewState(t, nil)

	if _, _, err := cmdtest.Execute(NewCmdChangeEditor(st), "hx"); err != nil {
		t.Fatalf("editor returned error: %v", err)
	}

	cfg, err := config.Load(st.Home)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if got := cfg.MustProject().Editor; got != "hx" {
		t.Fatalf("expected hx to be saved, got %q", got)
	}
}

func TestChangeEditorPrompts(t *testing.T) {
	st := cmdtest.NewState(t, nil)
	st.Project.Editor = "vim"

	var asked string
	prev := selectEditor
	selectEditor = func(current string) (string, error) {
		asked = current
		return "emacs", nil
	}
	t.Cleanup(func() { selectEditor = prev })

	if _, _, err := cmdtest.Execute(NewCmdChangeEditor(st)); err != nil {
		t.Fatalf("editor returned error: %v", err)
	}
	if asked != "vim" {
		t.Fatalf("expected the prompt to show the current editor, got %q", asked)
	}
	if st.Project.Editor != "emacs" {
		t.Fatalf("expected emacs, got %q", st.Project.Editor)
	}
}

func TestChangeEditorRejectsUnknown(t *testing.T) {
	st := cmdtest.NewState(t, nil)

	if _, _, err := cmdtest.Execute(NewCmdChangeEditor(st), "notepad"); err == nil {
		t.Fatalf("expected an error for an unsupported editor")
	}
}
