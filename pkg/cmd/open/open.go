package open

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/editor"
	"github.com/Paintersrp/quire/internal/fzf"
	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/state"
	cmdpkg "github.com/Paintersrp/quire/pkg/cmd"
)

var (
	openEditor   = editor.Open
	findDocument = func(s *state.State, query string) (*outline.Item, error) {
		finder := fzf.NewFuzzyFinder(s.Binder, s.Project.Theme, fmt.Sprintf("%s documents", s.ProjectName))
		return finder.Find(query)
	}
)

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Open a document in your editor.",
		Long: heredoc.Doc(`
			Opens a document with the configured editor. When the argument names a
			document it is opened directly. Otherwise the project's documents are
			shown in a fuzzy finder with a preview, seeded with the argument.

			Examples:
			  quire open
			  quire open draft/ch1.md
			  quire open "storm scene"
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			return run(cmd, s, query)
		},
	}

	return cmd
}

func run(cmd *cobra.Command, s *state.State, query string) error {
	if err := cmdpkg.RequireBinder(s); err != nil {
		return err
	}

	item, err := direct(s, query)
	if err != nil {
		return err
	}
	if item == nil {
		item, err = findDocument(s, query)
		if errors.Is(err, fzf.ErrNoSelection) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	path, err := s.Binder.Path(item.ID)
	if err != nil {
		return err
	}

	s.Logger.WithField("id", item.ID).Info("opening document")
	return openEditor(path)
}

// direct returns the document query names, or nil when query should be
// searched for instead.
func direct(s *state.State, query string) (*outline.Item, error) {
	if query == "" {
		return nil, nil
	}
	item, err := cmdpkg.ResolveItem(s, query)
	if err != nil || item.IsFolder() {
		return nil, nil
	}
	if item.Kind != outline.KindText {
		return nil, fmt.Errorf("%s is a %s and cannot be edited", item.ID, item.Kind)
	}
	return item, nil
}
