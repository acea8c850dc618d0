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
package changeEditor

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/config"
	"github.com/Paintersrp/quire/internal/state"
)

var selectEditor = func(current string) (string, error) {
	prompt := "Please select an editor option."
	if current != "" {
		prompt = fmt.Sprintf("Current editor: %s. Please select an editor option.", current)
	}
	sel := selection.New(prompt, config.EditorNames())
	sel.Filter = nil
	return sel.RunPrompt()
}

func NewCmdChangeEditor(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "editor [editor]",
		Aliases: []string{"change-editor"},
		Short:   "Change the editor documents open in.",
		Long: heredoc.Doc(`
			Updates the editor used for the current project and saves it to the
			configuration file. Without an argument you are asked to pick one.

			Editors: nvim, vim, nano, vscode, code, emacs, hx, custom.
			The custom editor runs the command in editor_args, or $VISUAL/$EDITOR.
		`),
		Example: heredoc.Doc(`
			# Change the editor to 'vim'
			quire editor vim
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				picked, err := selectEditor(s.Project.Editor)
				if err != nil {
					return err
				}
				name = picked
			}

			if err := s.Config.ChangeEditor(name); err != nil {
				return err
			}

			cmd.Printf("Editor changed to %s\n", name)
			return nil
		},
	}

	return cmd
}
