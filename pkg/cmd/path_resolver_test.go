package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/quire/internal/binder"
	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/internal/logger"
	"github.com/Paintersrp/quire/internal/state"
)

func newProjectState(t *testing.T) *state.State {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range map[string]string{
		"draft/ch1.md":      "one two",
		"research/notes.md": "notes",
	} {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	project := config.NewProject(dir)
	cfg := &config.Config{
		Projects:       map[string]*config.Project{"novel": project},
		CurrentProject: "novel",
	}

	return &state.State{
		Config:      cfg,
		Project:     project,
		ProjectName: "novel",
		Logger:      logger.Discard(),
	}
}

func TestResolveItem(t *testing.T) {
	st := newProjectState(t)
	dir := st.Project.Dir

	tests := map[string]struct {
		input   string
		want    string
		wantErr bool
	}{
		"identifier": {
			input: "draft/ch1.md",
			want:  "draft/ch1.md",
		},
		"absolute inside project": {
			input: filepath.Join(dir, "research", "notes.md"),
			want:  "research/notes.md",
		},
		"trailing slash folder": {
			input: "draft/",
			want:  "draft",
		},
		"empty is the root": {
			input: "",
			want:  "",
		},
		"escape attempt": {
			input:   "../evil.md",
			wantErr: true,
		},
		"absolute outside project": {
			input:   filepath.Join(filepath.Dir(dir), "elsewhere.md"),
			wantErr: true,
		},
		"unknown": {
			input:   "draft/missing.md",
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ResolveItem(st, tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveItem returned error: %v", err)
			}
			if got.ID != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got.ID)
			}
		})
	}
}

func TestResolveFolderMapsDocuments(t *testing.T) {
	st := newProjectState(t)

	got, err := ResolveFolder(st, "draft/ch1.md")
	if err != nil {
		t.Fatalf("ResolveFolder returned error: %v", err)
	}
	if got.ID != "draft" {
		t.Fatalf("expected draft, got %q", got.ID)
	}

	_, err = ResolveFolder(st, "nope")
	if !errors.Is(err, binder.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRequireBinderNeedsConfig(t *testing.T) {
	if err := RequireBinder(&state.State{}); err == nil {
		t.Fatalf("expected an error without config")
	}
}
