package wordcount

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/quire/internal/outline"
	"github.com/Paintersrp/quire/internal/state"
	cmdpkg "github.com/Paintersrp/quire/pkg/cmd"
)

type count struct {
	name  string
	words int
}

func NewCmdWordCount(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wordcount [id...]",
		Aliases: []string{"wc"},
		Short:   "Count the words in documents.",
		Long: heredoc.Doc(`
			Prints the word count of each document and the total. Folders count
			every text document inside them. With no arguments the whole project is
			counted, and "-" counts standard input.

			Examples:
			  quire wordcount
			  quire wordcount draft research/notes.md
			  cat chapter.md | quire wordcount -
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := collect(cmd.InOrStdin(), s, args)
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), counts)
			return nil
		},
	}

	return cmd
}

func collect(in io.Reader, s *state.State, args []string) ([]count, error) {
	if len(args) == 0 {
		args = []string{""}
	}

	var counts []count
	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(in)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			counts = append(counts, count{name: "-", words: outline.WordCount(string(data))})
			continue
		}

		item, err := cmdpkg.ResolveItem(s, arg)
		if err != nil {
			return nil, err
		}

		item.Walk(func(it *outline.Item) bool {
			if it.Kind == outline.KindText {
				counts = append(counts, count{name: it.ID, words: outline.WordCount(s.Binder.Contents[it.ID])})
			}
			return true
		})
	}
	return counts, nil
}

func report(w io.Writer, counts []count) {
	total := 0
	for _, c := range counts {
		fmt.Fprintf(w, "%8d  %s\n", c.words, c.name)
		total += c.words
	}
	if len(counts) != 1 {
		fmt.Fprintf(w, "%8d  total\n", total)
	}
}
