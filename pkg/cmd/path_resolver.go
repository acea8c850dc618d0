package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/pathutil"
	"github.com/Paintersrp/quire/internal/state"
)

// RequireBinder loads the active project's binder unless it is already loaded.
func RequireBinder(s *state.State) error {
	if s == nil || s.Config == nil {
		return fmt.Errorf("state configuration is not initialized")
	}
	if s.Binder != nil {
		return nil
	}
	return s.LoadBinder()
}

// ResolveItem turns an argument into a binder item. The argument may be an
// identifier ("draft/ch1.md") or an absolute path inside the project.
func ResolveItem(s *state.State, arg string) (*outline.Item, error) {
	if err := RequireBinder(s); err != nil {
		return nil, err
	}

	projectDir := filepath.Clean(s.Binder.Dir())
	if strings.TrimSpace(arg) == "" {
		return s.Binder.Root, nil
	}

	if filepath.IsAbs(pathutil.NormalizePath(arg)) {
		if err := ensureWithinProject(projectDir, arg); err != nil {
			return nil, err
		}
	}

	id := pathutil.ItemID(projectDir, arg)
	if strings.HasPrefix(id, "../") || id == ".." {
		return nil, fmt.Errorf("path %q is outside the project %q", arg, projectDir)
	}
	if id == "." {
		id = ""
	}

	return s.Binder.Find(id)
}

// ResolveFolder resolves arg like ResolveItem, mapping documents to the
// folder holding them.
func ResolveFolder(s *state.State, arg string) (*outline.Item, error) {
	it, err := ResolveItem(s, arg)
	if err != nil {
		return nil, err
	}
	return s.Binder.Folder(it.ID)
}

func ensureWithinProject(projectDir, target string) error {
	rel, err := filepath.Rel(projectDir, filepath.Clean(target))
	if err != nil {
		return fmt.Errorf("failed to resolve path %q relative to project %q: %w", target, projectDir, err)
	}

	if rel == "." {
		return nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path %q is outside the project %q", target, projectDir)
	}

	return nil
}
