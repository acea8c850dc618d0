package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/internal/outline"
)

func writeConfig(t *testing.T, home string, cfgData map[string]any) {
	t.Helper()

	configPath := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}

	data, err := yaml.Marshal(cfgData)
	if err != nil {
		t.Fatalf("failed to marshal config data: %v", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func projectConfig(home, editor string) map[string]any {
	return map[string]any{
		"projects": map[string]any{
			"novel": map[string]any{
				"dir":    filepath.Join(home, "novel"),
				"editor": editor,
			},
		},
		"current_project": "novel",
	}
}

func TestLoadAcceptsSupportedEditors(t *testing.T) {
	editors := []string{"nvim", "vim", "nano", "vscode", "code", "emacs", "hx"}

	for _, editor := range editors {
		editor := editor
		t.Run(editor, func(t *testing.T) {
			home := t.TempDir()
			writeConfig(t, home, projectConfig(home, editor))

			cfg, err := config.Load(home)
			if err != nil {
				t.Fatalf("expected load to succeed for editor %q: %v", editor, err)
			}

			if got := cfg.MustProject().Editor; got != editor {
				t.Fatalf("expected editor %q, got %q", editor, got)
			}
		})
	}
}

func TestLoadRejectsUnsupportedEditor(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, projectConfig(home, "unsupported"))

	_, err := config.Load(home)
	if err == nil {
		t.Fatal("expected load to fail for unsupported editor")
	}

	if !strings.Contains(err.Error(), "invalid editor") {
		t.Fatalf("expected invalid editor error, got %v", err)
	}
}

func TestLoadEmptyFileCreatesDefaultProject(t *testing.T) {
	home := t.TempDir()
	configPath := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}
	if err := os.WriteFile(configPath, nil, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.CurrentProject != "default" {
		t.Fatalf("expected default project, got %q", cfg.CurrentProject)
	}

	p := cfg.MustProject()
	if p.Theme != config.DefaultTheme {
		t.Fatalf("expected theme %q, got %q", config.DefaultTheme, p.Theme)
	}
	if !slices.Equal(p.Outline.Columns, outline.ColumnNames(outline.DefaultColumns())) {
		t.Fatalf("expected default columns, got %#v", p.Outline.Columns)
	}
}

func TestLoadRejectsUnknownTheme(t *testing.T) {
	home := t.TempDir()
	data := projectConfig(home, "nvim")
	data["projects"].(map[string]any)["novel"].(map[string]any)["theme"] = "neon"
	writeConfig(t, home, data)

	if _, err := config.Load(home); err == nil || !strings.Contains(err.Error(), "invalid theme") {
		t.Fatalf("expected invalid theme error, got %v", err)
	}
}

func TestSaveWithNoEditorSkipsValidation(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, projectConfig(home, ""))

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if err := cfg.SetLabelColor("Scene", "#ff0000"); err != nil {
		t.Fatalf("SetLabelColor returned error: %v", err)
	}

	reloaded, err := config.Load(home)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}

	if got := reloaded.MustProject().Labels["Scene"]; got != "#ff0000" {
		t.Fatalf("expected persisted label color, got %q", got)
	}
}

func TestChangeEditor(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, projectConfig(home, "nvim"))

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if err := cfg.ChangeEditor("notepad"); err == nil {
		t.Fatal("expected error for unsupported editor")
	}

	if err := cfg.ChangeEditor("hx"); err != nil {
		t.Fatalf("ChangeEditor returned error: %v", err)
	}

	reloaded, err := config.Load(home)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if got := reloaded.MustProject().Editor; got != "hx" {
		t.Fatalf("expected editor hx, got %q", got)
	}
}

func TestAddSwitchAndRemoveProject(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &config.Config{}
	if err := cfg.AddProject("novel", config.NewProject(filepath.Join(home, "novel")), false); err != nil {
		t.Fatalf("AddProject returned error: %v", err)
	}
	if cfg.CurrentProject != "novel" {
		t.Fatalf("expected first project to become current, got %q", cfg.CurrentProject)
	}

	if err := cfg.AddProject("novel", nil, false); err == nil {
		t.Fatal("expected error when adding duplicate project")
	}

	if err := cfg.AddProject("essays", config.NewProject(filepath.Join(home, "essays")), false); err != nil {
		t.Fatalf("AddProject returned error: %v", err)
	}
	if cfg.CurrentProject != "novel" {
		t.Fatalf("expected current project to stay novel, got %q", cfg.CurrentProject)
	}

	if err := cfg.SwitchProject("essays"); err != nil {
		t.Fatalf("SwitchProject returned error: %v", err)
	}

	persisted, err := config.Load(home)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if persisted.CurrentProject != "essays" {
		t.Fatalf("expected persisted current project essays, got %q", persisted.CurrentProject)
	}
	if !slices.Equal(persisted.ProjectNames(), []string{"essays", "novel"}) {
		t.Fatalf("unexpected project names %#v", persisted.ProjectNames())
	}

	if err := cfg.SwitchProject("missing"); err == nil {
		t.Fatal("expected error when switching to a missing project")
	}

	if err := cfg.RemoveProject("essays"); err != nil {
		t.Fatalf("RemoveProject returned error: %v", err)
	}
	if cfg.CurrentProject != "novel" {
		t.Fatalf("expected fallback to novel, got %q", cfg.CurrentProject)
	}

	if err := cfg.RemoveProject("novel"); err == nil {
		t.Fatal("expected error when removing the last project")
	}
}

func TestActivateProjectDoesNotPersist(t *testing.T) {
	home := t.TempDir()
	data := projectConfig(home, "nvim")
	data["projects"].(map[string]any)["essays"] = map[string]any{"dir": filepath.Join(home, "essays")}
	writeConfig(t, home, data)

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if err := cfg.ActivateProject("essays"); err != nil {
		t.Fatalf("ActivateProject returned error: %v", err)
	}
	if cfg.MustProject().Dir != filepath.Join(home, "essays") {
		t.Fatalf("expected essays to be active")
	}

	reloaded, err := config.Load(home)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if reloaded.CurrentProject != "novel" {
		t.Fatalf("expected persisted project to remain novel, got %q", reloaded.CurrentProject)
	}
}

func TestSetOutlineRoundTrip(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, projectConfig(home, "nvim"))

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if err := cfg.SetOutline([]string{"status", "words"}, "modified", "desc"); err != nil {
		t.Fatalf("SetOutline returned error: %v", err)
	}

	reloaded, err := config.Load(home)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}

	p := reloaded.MustProject()
	want := []string{"title", "status", "word-count", "modified"}
	if !slices.Equal(p.Outline.Columns, want) {
		t.Fatalf("expected columns %#v, got %#v", want, p.Outline.Columns)
	}
	if p.Outline.Sort.Field != "modified" || p.Outline.Sort.Order != config.SortDescending {
		t.Fatalf("unexpected sort %#v", p.Outline.Sort)
	}

	vs, err := p.ViewState()
	if err != nil {
		t.Fatalf("ViewState returned error: %v", err)
	}
	if !vs.Sorted || vs.Ascending || vs.Sort != outline.ColumnModified {
		t.Fatalf("unexpected view state %#v", vs)
	}
}

func TestSetOutlineRejectsUnknownNames(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, projectConfig(home, "nvim"))

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if err := cfg.SetOutline([]string{"pages"}, "", ""); err == nil {
		t.Fatal("expected error for unknown column")
	}
	if err := cfg.SetOutline(nil, "title", "sideways"); err == nil {
		t.Fatal("expected error for unknown order")
	}
}

func TestViewStateUnsortedByDefault(t *testing.T) {
	p := config.NewProject("/tmp/novel")

	vs, err := p.ViewState()
	if err != nil {
		t.Fatalf("ViewState returned error: %v", err)
	}
	if vs.Sorted {
		t.Fatalf("expected binder order, got %#v", vs)
	}
	if !slices.Equal(vs.Columns, outline.DefaultColumns()) {
		t.Fatalf("expected default columns, got %#v", vs.Columns)
	}
}

func TestEnsureConfigExists(t *testing.T) {
	home := t.TempDir()

	err := config.EnsureConfigExists(home)
	var initErr *config.ConfigInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError for a project without dir, got %v", err)
	}

	if _, err := os.Stat(config.GetConfigPath(home)); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	writeConfig(t, home, projectConfig(home, "nvim"))
	if err := config.EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists returned error: %v", err)
	}
}
