package projectSwitch

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/state"
)

func NewCmdProjectSwitch(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "switch <name>",
		Aliases: []string{"s", "use"},
		Short:   "Make another project current.",
		Long: heredoc.Doc(`
			Makes the named project current and saves the choice. Use the global
			--project flag to work in another project for a single command.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.SwitchProject(args[0]); err != nil {
				return err
			}

			s.Project = s.Config.MustProject()
			s.ProjectName = s.Config.CurrentProject
			s.Binder = nil

			cmd.Printf("Switched to project %s\n", s.ProjectName)
			return nil
		},
	}

	return cmd
}
