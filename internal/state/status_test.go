package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Paintersrp/quire/internal/binder"
)

func TestFormatProjectStatusIncludesLoadTime(t *testing.T) {
	t.Parallel()

	loaded := time.Date(2024, time.March, 5, 17, 42, 0, 0, time.Local)
	got := formatProjectStatus("novel", 3, 1200, loaded)
	want := "novel · 3 docs · 1200 words · loaded 17:42"
	if got != want {
		t.Fatalf("formatProjectStatus mismatch: got %q, want %q", got, want)
	}
}

func TestFormatProjectStatusOmitsZeroTime(t *testing.T) {
	t.Parallel()

	got := formatProjectStatus("", 0, 0, time.Time{})
	want := "0 docs · 0 words"
	if got != want {
		t.Fatalf("formatProjectStatus mismatch: got %q, want %q", got, want)
	}
}

func TestStatusLineCountsBinder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "one.md"), []byte("three little words"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "two.txt"), []byte("two more"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	b, err := binder.Load(dir)
	if err != nil {
		t.Fatalf("binder.Load: %v", err)
	}

	st := &State{ProjectName: "novel", Binder: b}
	if got, want := st.StatusLine(), "novel · 2 docs · 5 words"; got != want {
		t.Fatalf("StatusLine mismatch: got %q, want %q", got, want)
	}
}

func TestStatusLineWithoutBinder(t *testing.T) {
	t.Parallel()

	var st *State
	if got := st.StatusLine(); got != "" {
		t.Fatalf("expected empty status line, got %q", got)
	}
}
