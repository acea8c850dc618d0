package changeTheme

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/internal/state"
)

var selectTheme = func(current string) (string, error) {
	sel := selection.New(fmt.Sprintf("Current theme: %s. Pick a preview theme.", current), config.ThemeNames())
	sel.Filter = nil
	return sel.RunPrompt()
}

func NewCmdChangeTheme(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [theme]",
		Short: "Change the theme used to preview documents.",
		Long: heredoc.Doc(`
			Sets the glamour style the outliner preview pane renders documents
			with. Without an argument you are asked to pick one.

			Themes: dark, light, dracula, notty.
		`),
		Example: heredoc.Doc(`
			quire theme dracula
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				picked, err := selectTheme(s.Project.Theme)
				if err != nil {
					return err
				}
				name = picked
			}

			if err := s.Config.ChangeTheme(name); err != nil {
				return err
			}

			cmd.Printf("Theme changed to %s\n", name)
			return nil
		},
	}

	return cmd
}
