package status

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/state"
	cmdpkg "github.com/Paintersrp/quire/pkg/cmd"
)

func NewCmdStatus(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id> [status]",
		Short: "Show or set a document's status.",
		Long: heredoc.Doc(fmt.Sprintf(`
			Shows the status of a document or folder, or sets it when a status is
			given. Use "none" to clear it.

			Statuses: %s

			Examples:
			  quire status draft/ch1.md
			  quire status draft/ch1.md "first draft"
			  quire status draft/ch1.md none
		`, statusList())),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := cmdpkg.ResolveItem(s, args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				md := s.Binder.Metadata[item.ID]
				fmt.Fprintln(cmd.OutOrStdout(), md.Status.String())
				return nil
			}

			next, err := Parse(args[1])
			if err != nil {
				return err
			}

			md, err := cmdpkg.EditMetadata(s, item, func(md *outline.Metadata) {
				md.Status = next
			})
			if err != nil {
				return err
			}

			cmd.Printf("%s is now %s\n", item.Title, md.Status)
			return nil
		},
	}

	return cmd
}

// Parse is outline.ParseStatus without the silent fallback: anything other
// than a known status or "none" is an error.
func Parse(name string) (outline.Status, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "no status", "":
		return outline.StatusNone, nil
	}
	st := outline.ParseStatus(name)
	if st == outline.StatusNone {
		return st, fmt.Errorf("unknown status %q. Please choose from %s", name, statusList())
	}
	return st, nil
}

func statusList() string {
	names := make([]string, 0, len(outline.Statuses()))
	for _, st := range outline.Statuses() {
		names = append(names, st.String())
	}
	return strings.Join(names, ", ")
}
