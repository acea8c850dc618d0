package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/constants"
	"github.com/Paintersrp/quire/internal/state"
	"github.com/Paintersrp/quire/internal/tui/outliner"
	cmdpkg "github.com/Paintersrp/quire/pkg/cmd"
	"github.com/Paintersrp/quire/pkg/cmd/backup"
	"github.com/Paintersrp/quire/pkg/cmd/changeEditor"
	"github.com/Paintersrp/quire/pkg/cmd/changeTheme"
	"github.com/Paintersrp/quire/pkg/cmd/columns"
	"github.com/Paintersrp/quire/pkg/cmd/initialize"
	"github.com/Paintersrp/quire/pkg/cmd/label"
	"github.com/Paintersrp/quire/pkg/cmd/open"
	"github.com/Paintersrp/quire/pkg/cmd/outlineTable"
	"github.com/Paintersrp/quire/pkg/cmd/project"
	"github.com/Paintersrp/quire/pkg/cmd/status"
	"github.com/Paintersrp/quire/pkg/cmd/wordcount"
)

var runOutliner = outliner.Run

// NewCmdRoot builds the command tree around s. The state is filled in before
// any command runs, once the global flags are parsed.
func NewCmdRoot(s *state.State) *cobra.Command {
	var (
		opts   state.Options
		folder string
	)

	cmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Outline and organise long-form writing projects.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			quire keeps a writing project as a directory of folders and documents,
			with each document's synopsis, status and label in its frontmatter.

			Run without a command to browse the project in the interactive
			outliner: sort by any column, choose the visible columns, cycle a
			document's status and open documents in your editor.
		`),
		Example: heredoc.Doc(`
			quire init ~/writing/novel
			quire --folder draft
			quire outline draft --sort status
		`),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := state.NewConfigState(opts)
			if err != nil {
				return err
			}
			*s = *loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdpkg.RequireBinder(s); err != nil {
				return err
			}
			defer s.Close()

			start := ""
			if folder != "" {
				it, err := cmdpkg.ResolveFolder(s, folder)
				if err != nil {
					return err
				}
				start = it.ID
			}
			return runOutliner(s, start)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Project, "project", "P", "", "Project to use for this command instead of the current one.")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Write logs at this level (debug, info, warn, error).")
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "Folder to open the outliner in.")

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		outlineTable.NewCmdOutline(s),
		wordcount.NewCmdWordCount(s),
		open.NewCmdOpen(s),
		status.NewCmdStatus(s),
		label.NewCmdLabel(s),
		columns.NewCmdColumns(s),
		changeEditor.NewCmdChangeEditor(s),
		changeTheme.NewCmdChangeTheme(s),
		project.NewCmdProject(s),
		backup.NewCmdBackup(s),
	)

	return cmd
}
