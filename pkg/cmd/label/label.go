package label

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/state"
	cmdpkg "github.com/Paintersrp/quire/pkg/cmd"
)

func NewCmdLabel(s *state.State) *cobra.Command {
	var palette bool

	cmd := &cobra.Command{
		Use:   "label <id> <name> [color]",
		Short: "Set or clear a document's label.",
		Long: heredoc.Doc(`
			Sets the label of a document or folder. The color is a hex value; when
			it is omitted the project's palette color for the name is used. Use
			"none" as the name to clear the label.

			With --palette the color also becomes the project's default for the
			label name.

			Examples:
			  quire label draft/ch1.md Scene
			  quire label draft/ch1.md Flashback "#7e57c2" --palette
			  quire label draft/ch1.md none
		`),
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := cmdpkg.ResolveItem(s, args[0])
			if err != nil {
				return err
			}

			name := strings.TrimSpace(args[1])
			color := ""
			if len(args) == 3 {
				color = strings.TrimSpace(args[2])
				if _, ok := outline.Luminance(color); !ok {
					return fmt.Errorf("invalid color %q. Please use a hex value such as #f5a623", color)
				}
				if !strings.HasPrefix(color, "#") {
					color = "#" + color
				}
			}

			if palette && color != "" && !isNone(name) {
				if err := s.Config.SetLabelColor(name, color); err != nil {
					return err
				}
			}
			if color == "" && !isNone(name) {
				color = s.Project.Labels[name]
			}

			md, err := cmdpkg.EditMetadata(s, item, func(md *outline.Metadata) {
				if isNone(name) {
					md.Label = nil
					return
				}
				md.Label = &outline.Label{Name: name, Color: color}
			})
			if err != nil {
				return err
			}

			if md.Label == nil {
				cmd.Printf("Cleared the label of %s\n", item.Title)
				return nil
			}
			cmd.Printf("%s is labelled %s\n", item.Title, md.Label.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&palette, "palette", false, "Also store the color as the project default for this label.")

	return cmd
}

func isNone(name string) bool {
	return name == "" || strings.EqualFold(name, "none")
}
