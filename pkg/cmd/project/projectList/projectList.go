package projectList

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/state"
)

func NewCmdProjectList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List registered projects.",
		Long: heredoc.Doc(`
			Lists every registered project and its directory. The current project
			is marked with an asterisk.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range s.Config.ProjectNames() {
				mark := " "
				if name == s.Config.CurrentProject {
					mark = "*"
				}
				dir := s.Config.Projects[name].Dir
				if dir == "" {
					dir = "(no directory)"
				}
				fmt.Fprintf(out, "%s %s\t%s\n", mark, name, dir)
			}
			return nil
		},
	}

	return cmd
}
