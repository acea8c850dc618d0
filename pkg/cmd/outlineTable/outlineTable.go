package outlineTable

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/state"
	cmdpkg "github.com/Paintersrp/quire/pkg/cmd"
)

var (
	writeClipboard = clipboard.WriteAll
	terminalWidth  = func() int {
		w, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return 0
		}
		return w
	}
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0AF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#334455"))
)

type options struct {
	columns []string
	sort    string
	desc    bool
	copy    bool
	save    bool
}

func NewCmdOutline(s *state.State) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:     "outline [folder]",
		Aliases: []string{"ls", "t"},
		Short:   "Print a folder's outline as a table.",
		Long: heredoc.Doc(`
			Prints the children of a folder as a table, using the project's saved
			columns and sort order unless overridden by flags.

			Columns: title, synopsis, status, label, word-count, modified.

			Examples:
			  quire outline
			  quire outline draft --sort word-count --desc
			  quire outline draft --columns status,label --save
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return run(cmd, s, arg, o)
		},
	}

	cmd.Flags().StringSliceVarP(&o.columns, "columns", "c", nil, "Visible columns, comma separated. Title is always shown.")
	cmd.Flags().StringVarP(&o.sort, "sort", "s", "", "Column to sort by.")
	cmd.Flags().BoolVar(&o.desc, "desc", false, "Sort in descending order.")
	cmd.Flags().BoolVar(&o.copy, "copy", false, "Copy the plain table to the clipboard.")
	cmd.Flags().BoolVar(&o.save, "save", false, "Persist the columns and sort order for this project.")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, arg string, o *options) error {
	folder, err := cmdpkg.ResolveFolder(s, arg)
	if err != nil {
		return err
	}

	vs, err := s.Project.ViewState()
	if err != nil {
		return fmt.Errorf("invalid outline settings for project %q: %w", s.ProjectName, err)
	}

	m := outline.New(folder, s.Binder.Contents, s.Binder.Metadata)
	m.ApplyState(vs)

	if err := applyFlags(cmd, m, o); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if m.Empty() {
		fmt.Fprintf(out, "%s is an empty folder\n", folderName(folder))
	} else {
		fmt.Fprintln(out, Render(m, terminalWidth(), true))
	}

	if o.copy {
		if err := writeClipboard(Render(m, 0, false)); err != nil {
			return fmt.Errorf("failed to copy outline: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied outline to clipboard.")
	}

	if o.save {
		if err := s.Config.SaveViewState(m.State()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved outline view for %s.\n", s.ProjectName)
	}

	return nil
}

func applyFlags(cmd *cobra.Command, m *outline.Model, o *options) error {
	if cmd.Flags().Changed("columns") {
		cols, err := outline.ParseColumns(o.columns)
		if err != nil {
			return err
		}
		m.SetVisibleColumns(cols)
	}

	col, _, sorted := m.SortState()
	switch {
	case strings.TrimSpace(o.sort) != "":
		c, err := outline.ParseColumn(o.sort)
		if err != nil {
			return err
		}
		m.SetSort(c, !o.desc)
	case cmd.Flags().Changed("desc"):
		if !sorted {
			col = outline.ColumnTitle
		}
		m.SetSort(col, !o.desc)
	}
	return nil
}

// Render draws the model's rows as a table. A positive width caps the table
// width. Unstyled output carries no color, for pasting elsewhere.
func Render(m *outline.Model, width int, styled bool) string {
	cols := m.VisibleColumns()
	rows := m.Rows()

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = header(m, c)
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = make([]string, len(r.Cells))
		for j, cell := range r.Cells {
			data[i][j] = cell.Text
		}
	}

	t := table.New().Headers(headers...).Rows(data...)
	if styled {
		t = t.
			BorderStyle(borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == 0 {
					return headerStyle
				}
				cell := rows[row-1].Cells[col]
				if cell.Column == outline.ColumnLabel && cell.Color != "" {
					return cellStyle.
						Background(lipgloss.Color(cell.Color)).
						Foreground(lipgloss.Color(cell.Foreground))
				}
				return cellStyle
			})
	} else {
		t = t.Border(lipgloss.NormalBorder())
	}

	// A table narrower than its width is stretched, so only cap wide ones.
	out := t.Render()
	if width > 0 && lipgloss.Width(out) > width {
		out = t.Width(width).Render()
	}
	return out
}

func header(m *outline.Model, c outline.Column) string {
	col, ascending, sorted := m.SortState()
	if !sorted || col != c {
		return c.Header()
	}
	if ascending {
		return c.Header() + " ▲"
	}
	return c.Header() + " ▼"
}

func folderName(folder *outline.Item) string {
	if folder.ID == "" {
		return "The project root"
	}
	return folder.Title
}
