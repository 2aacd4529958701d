package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/xamlnav/internal/cli/output"
	"github.com/leapstack-labs/xamlnav/internal/provider"
	"github.com/leapstack-labs/xamlnav/pkg/outline"
)

// NewOutlineCommand creates the outline command.
func NewOutlineCommand() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "outline <file>...",
		Short: "Show the element outline of XAML files",
		Long: `Show the hierarchical outline of one or more XAML files.

Each visual element becomes a node labeled by its x:Name, its Name, its
button or text content, or its tag. Property elements (Grid.RowDefinitions)
and definition tags (Style, Setter, RowDefinition...) are left out.

Output adapts to environment:
  - Terminal: Styled tree
  - Piped/Scripted: Nested markdown list
  - JSON/YAML: Symbol tree with ranges`,
		Example: `  # Outline a window
  xamlnav outline Views/MainWindow.xaml

  # Outline several files in parallel with line numbers
  xamlnav outline --line-numbers Views/*.xaml

  # Outline as JSON
  xamlnav outline -o json Views/MainWindow.xaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, args, workers)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Files parsed concurrently (default from config)")

	return cmd
}

func runOutline(cmd *cobra.Command, paths []string, workers int) error {
	c := NewCommandContext(cmd)
	if workers <= 0 {
		workers = c.Cfg.Workers
	}

	results := make([]output.OutlineOutput, len(paths))
	docs := make([]*provider.ParsedDocument, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		g.Go(func() error {
			doc, err := c.Open(ctx, path, fileVersion(path))
			if err != nil {
				return err
			}
			docs[i] = doc
			results[i] = output.OutlineOutput{
				Path:     path,
				Elements: outline.Count(doc.Forest),
				Symbols:  doc.Symbols,
			}
			if doc.HasParseError() {
				results[i].Error = doc.ParseError.Error()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// Warnings are printed here, in argument order, rather than by the workers.
	for i, doc := range docs {
		c.warnParseError(paths[i], doc)
	}

	c.Logger.Debug("Outlined files", "files", len(paths), "workers", workers)

	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		if len(results) == 1 {
			return r.Data(results[0])
		}
		return r.Data(results)
	case output.ModeMarkdown:
		for i, res := range results {
			if i > 0 {
				r.Println("")
			}
			renderOutlineMarkdown(r, res)
		}
	default:
		for i, res := range results {
			if i > 0 {
				r.Println("")
			}
			renderOutlineText(r, res)
		}
	}
	return nil
}

func renderOutlineText(r *output.Renderer, res output.OutlineOutput) {
	if len(res.Symbols) == 0 {
		r.Println(r.Styles().Bold.Render(res.Path))
		r.Muted("  (no elements)")
		return
	}
	r.Println(r.OutlineTree(res.Path, res.Symbols))
	r.Muted(fmt.Sprintf("%d elements", res.Elements))
}

func renderOutlineMarkdown(r *output.Renderer, res output.OutlineOutput) {
	r.Println(output.FormatHeader(1, "Outline: "+res.Path))
	r.Println("")
	r.Println(output.FormatKeyValue("Elements", fmt.Sprintf("%d", res.Elements)))
	r.Println("")
	if len(res.Symbols) == 0 {
		r.Println("_No elements._")
		return
	}
	r.Printf("%s", output.OutlineMarkdown(res.Symbols))
}
