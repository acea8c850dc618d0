package columns

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/state"
)

func NewCmdColumns(s *state.State) *cobra.Command {
	var sortField, order string

	cmd := &cobra.Command{
		Use:   "columns [column...]",
		Short: "Show or set the outline's visible columns.",
		Long: heredoc.Doc(`
			Without arguments, lists every column and marks the visible ones. With
			arguments, makes exactly those columns visible for the current project.
			The title column is always shown. Hiding the sorted column sorts by
			title instead. --sort stores the sort column as well; an empty value
			keeps binder order.

			Examples:
			  quire columns
			  quire columns status word-count modified
			  quire columns --sort modified --order desc
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := s.Project.ViewState()
			if err != nil {
				return err
			}

			m := outline.New(nil, nil, nil)
			m.ApplyState(vs)

			if cmd.Flags().Changed("sort") {
				names := args
				if len(names) == 0 {
					names = s.Project.Outline.Columns
				}
				if err := s.Config.SetOutline(names, sortField, order); err != nil {
					return err
				}
				if vs, err = s.Project.ViewState(); err != nil {
					return err
				}
				m.ApplyState(vs)
			} else if len(args) > 0 {
				cols, err := outline.ParseColumns(args)
				if err != nil {
					return err
				}
				m.SetVisibleColumns(cols)
				if err := s.Config.SaveViewState(m.State()); err != nil {
					return err
				}
			}

			list(cmd, m)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sortField, "sort", "s", "", "Column to sort the outline by.")
	cmd.Flags().StringVarP(&order, "order", "o", "", "Sort order: asc or desc.")

	return cmd
}

func list(cmd *cobra.Command, m *outline.Model) {
	out := cmd.OutOrStdout()
	sortCol, ascending, sorted := m.SortState()

	for _, c := range outline.AllColumns() {
		mark := " "
		if m.IsVisible(c) {
			mark = "x"
		}
		line := fmt.Sprintf("[%s] %-10s %s", mark, c, c.Header())
		if sorted && c == sortCol {
			if ascending {
				line += " (sorted ascending)"
			} else {
				line += " (sorted descending)"
			}
		}
		fmt.Fprintln(out, line)
	}
}
