package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/xamlnav/internal/cli/output"
	"github.com/leapstack-labs/xamlnav/pkg/outline"
)

// NewSymbolsCommand creates the symbols command.
func NewSymbolsCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "symbols <file>",
		Short: "List the elements of a XAML file as a flat table",
		Long: `List every outline element of a XAML file in document order with its
line, tag, kind and containing element.

Use --filter to keep elements whose label or tag contains the query
(case-insensitive).`,
		Example: `  # All elements
  xamlnav symbols Views/MainWindow.xaml

  # Only buttons
  xamlnav symbols Views/MainWindow.xaml --filter button`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSymbols(cmd, args[0], filter)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Keep elements whose label or tag contains this text")

	return cmd
}

func runSymbols(cmd *cobra.Command, path, filter string) error {
	c := NewCommandContext(cmd)

	doc, err := c.Load(cmd.Context(), path, fileVersion(path))
	if err != nil {
		return err
	}

	entries := outline.FilterEntries(doc.Entries(), filter)
	if entries == nil {
		entries = []outline.Entry{}
	}

	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.Data(output.SymbolsOutput{
			Path:    path,
			Query:   filter,
			Total:   len(entries),
			Entries: entries,
		})
	case output.ModeMarkdown:
		r.Header(1, fmt.Sprintf("Symbols: %s (%d)", path, len(entries)))
	default:
		r.Header(1, fmt.Sprintf("Symbols in %s (%d)", path, len(entries)))
	}

	if len(entries) == 0 {
		r.Muted("No matching elements.")
		return nil
	}
	r.Println(r.EntriesTable(entries))
	return nil
}
