// Package cmdtest builds throwaway projects for command tests.
package cmdtest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/binder"
	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/internal/logger"
	"github.com/Paintersrp/quire/internal/state"
)

// NewState writes files into a fresh project directory, registers it as the
// "novel" project under a temporary HOME and loads its binder.
func NewState(t *testing.T, files map[string]string) *state.State {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := t.TempDir()
	WriteFiles(t, dir, files)

	project := config.NewProject(dir)
	project.Theme = "notty"
	cfg := &config.Config{
		Projects:       map[string]*config.Project{"novel": project},
		CurrentProject: "novel",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	b, err := binder.Load(dir)
	if err != nil {
		t.Fatalf("failed to load binder: %v", err)
	}

	return &state.State{
		Config:      cfg,
		Project:     project,
		ProjectName: "novel",
		Binder:      b,
		Home:        home,
		Logger:      logger.Discard(),
	}
}

// WriteFiles creates each slash-separated path under dir with its content.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}
}

// Execute runs cmd with args and returns what it wrote to stdout and stderr.
func Execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
