/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package initialize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/internal/pathutil"
	"github.com/Paintersrp/quire/internal/state"
)

var confirm = func(prompt string) (bool, error) {
	return confirmation.New(prompt, confirmation.Yes).RunPrompt()
}

func NewCmdInit(s *state.State) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "init <dir>",
		Aliases: []string{"i", "initialize"},
		Short:   "Register a project directory.",
		Long: heredoc.Doc(`
			Registers a directory as a quire project and makes it the current
			project. The directory is created after confirmation when it does not
			exist. The project is named after the directory unless --name is given.
		`),
		Example: heredoc.Doc(`
			quire init ~/writing/novel
			quire init ~/writing/essays --name essays
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, args[0], name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (defaults to the directory name).")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, arg, name string) error {
	if s == nil || s.Config == nil {
		return fmt.Errorf("state configuration is not initialized")
	}

	dir, err := pathutil.ExpandHome(arg)
	if err != nil {
		return err
	}
	dir, err = filepath.Abs(pathutil.NormalizePath(dir))
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", arg, err)
	}

	if err := ensureDir(dir); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = filepath.Base(dir)
	}

	cfg := s.Config
	previous := cfg.CurrentProject
	placeholder := previous != "" && cfg.Projects[previous] != nil && strings.TrimSpace(cfg.Projects[previous].Dir) == ""

	if existing, ok := cfg.Projects[name]; ok && strings.TrimSpace(existing.Dir) == "" {
		existing.Dir = dir
		if err := cfg.SwitchProject(name); err != nil {
			return err
		}
	} else if err := cfg.AddProject(name, config.NewProject(dir), true); err != nil {
		return err
	}

	// A first run leaves an empty default project behind; replace it.
	if placeholder && previous != name {
		if err := cfg.RemoveProject(previous); err != nil {
			return err
		}
		if err := cfg.SwitchProject(name); err != nil {
			return err
		}
	}

	p, err := cfg.ActiveProject()
	if err != nil {
		return err
	}
	s.Project = p
	s.ProjectName = cfg.CurrentProject
	s.Binder = nil

	cmd.Printf("Initialized project %s at %s\n", name, dir)
	return nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	ok, err := confirm(fmt.Sprintf("%s does not exist. Create it?", dir))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("project directory %s was not created", dir)
	}
	return os.MkdirAll(dir, 0o755)
}
