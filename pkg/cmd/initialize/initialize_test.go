package initialize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/internal/logger"
	"github.com/Paintersrp/quire/internal/state"
	"github.com/Paintersrp/quire/pkg/cmd/cmdtest"
)

func firstRunState(t *testing.T) *state.State {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := config.EnsureConfigExists(home); err == nil {
		t.Fatalf("expected an init error before any project is registered")
	}
	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	return &state.State{
		Config:      cfg,
		Project:     cfg.MustProject(),
		ProjectName: cfg.CurrentProject,
		Home:        home,
		Logger:      logger.Discard(),
	}
}

func stubConfirm(t *testing.T, answer bool) *int {
	t.Helper()
	calls := 0
	prev := confirm
	confirm = func(string) (bool, error) {
		calls++
		return answer, nil
	}
	t.Cleanup(func() { confirm = prev })
	return &calls
}

func TestInitReplacesEmptyDefaultProject(t *testing.T) {
	st := firstRunState(t)
	calls := stubConfirm(t, true)
	dir := filepath.Join(t.TempDir(), "novel")

	if _, _, err := cmdtest.Execute(NewCmdInit(st), dir); err != nil {
		t.Fatalf("init returned error: %v", err)
	}

	if *calls != 1 {
		t.Fatalf("expected one confirmation, got %d", *calls)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected %s to be created: %v", dir, err)
	}

	cfg, err := config.Load(st.Home)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if cfg.CurrentProject != "novel" {
		t.Fatalf("expected novel to be current, got %q", cfg.CurrentProject)
	}
	if names := cfg.ProjectNames(); len(names) != 1 {
		t.Fatalf("expected the placeholder to be removed, got %v", names)
	}
	if st.ProjectName != "novel" || st.Project.Dir != dir {
		t.Fatalf("state was not updated: %q %q", st.ProjectName, st.Project.Dir)
	}
}

func TestInitAddsSecondProject(t *testing.T) {
	st := cmdtest.NewState(t, nil)
	calls := stubConfirm(t, true)
	dir := t.TempDir()

	if _, _, err := cmdtest.Execute(NewCmdInit(st), dir, "--name", "essays"); err != nil {
		t.Fatalf("init returned error: %v", err)
	}

	if *calls != 0 {
		t.Fatalf("existing directories need no confirmation")
	}
	names := st.Config.ProjectNames()
	if len(names) != 2 || names[0] != "essays" || names[1] != "novel" {
		t.Fatalf("unexpected projects %v", names)
	}
	if st.Config.CurrentProject != "essays" {
		t.Fatalf("expected essays to be current, got %q", st.Config.CurrentProject)
	}
}

func TestInitDeclined(t *testing.T) {
	st := cmdtest.NewState(t, nil)
	stubConfirm(t, false)
	dir := filepath.Join(t.TempDir(), "missing")

	if _, _, err := cmdtest.Execute(NewCmdInit(st), dir); err == nil {
		t.Fatalf("expected an error when creation is declined")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("directory should not exist: %v", err)
	}
}

func TestInitRejectsDuplicateName(t *testing.T) {
	st := cmdtest.NewState(t, nil)
	stubConfirm(t, true)

	if _, _, err := cmdtest.Execute(NewCmdInit(st), t.TempDir(), "--name", "novel"); err == nil {
		t.Fatalf("expected an error for an existing project name")
	}
}
