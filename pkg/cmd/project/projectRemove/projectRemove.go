package projectRemove

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/state"
)

func NewCmdProjectRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Forget a project.",
		Long: heredoc.Doc(`
			Removes a project from the configuration. Its files are left alone.
			The last project cannot be removed.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.RemoveProject(args[0]); err != nil {
				return err
			}

			s.Project = s.Config.MustProject()
			s.ProjectName = s.Config.CurrentProject

			cmd.Printf("Removed project %s\n", args[0])
			return nil
		},
	}

	return cmd
}
