package project

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/state"
	"github.com/Paintersrp/quire/pkg/cmd/project/projectList"
	"github.com/Paintersrp/quire/pkg/cmd/project/projectRemove"
	"github.com/Paintersrp/quire/pkg/cmd/project/projectSwitch"
)

func NewCmdProject(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Manage registered projects.",
		Long: heredoc.Doc(`
			Lists, switches between and removes the projects registered with
			quire init. Running project with no subcommand lists them.
		`),
		RunE: projectList.NewCmdProjectList(s).RunE,
	}

	cmd.AddCommand(projectList.NewCmdProjectList(s))
	cmd.AddCommand(projectSwitch.NewCmdProjectSwitch(s))
	cmd.AddCommand(projectRemove.NewCmdProjectRemove(s))

	return cmd
}
