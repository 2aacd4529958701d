package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/xamlnav/internal/cli/output"
	"github.com/leapstack-labs/xamlnav/pkg/outline"
	"github.com/leapstack-labs/xamlnav/pkg/token"
)

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file> <line>:<col>",
		Short: "Describe the element at a position",
		Long: `Describe the innermost outline element containing a position.

Line and column are 1-based; the column counts bytes, as most editors
show it for ASCII markup.`,
		Example: `  # Element under line 11, column 15
  xamlnav info Views/MainWindow.xaml 11:15

  # As JSON
  xamlnav info -o json Views/MainWindow.xaml 11:15`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			return runInfo(cmd, args[0], pos)
		},
	}

	return cmd
}

// parsePosition parses a 1-based "line:col" (or "line") into a 0-based position.
func parsePosition(s string) (token.Position, error) {
	lineStr, colStr, hasCol := strings.Cut(s, ":")
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return token.Position{}, fmt.Errorf("invalid position %q: line must be a positive number", s)
	}
	col := 1
	if hasCol {
		col, err = strconv.Atoi(colStr)
		if err != nil || col < 1 {
			return token.Position{}, fmt.Errorf("invalid position %q: column must be a positive number", s)
		}
	}
	return token.Position{Line: line - 1, Column: col - 1}, nil
}

func runInfo(cmd *cobra.Command, path string, pos token.Position) error {
	c := NewCommandContext(cmd)

	doc, err := c.Load(cmd.Context(), path, fileVersion(path))
	if err != nil {
		return err
	}

	info := describe(path, pos, outline.PathAt(doc.Forest, pos))

	r := c.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.Data(info)
	case output.ModeMarkdown:
		renderInfoMarkdown(r, info)
	default:
		renderInfoText(r, info)
	}
	return nil
}

// describe builds the info output from the chain of elements enclosing pos.
func describe(path string, pos token.Position, chain []*outline.Element) output.ElementInfo {
	info := output.ElementInfo{Path: path, Position: pos}
	if len(chain) == 0 {
		return info
	}

	e := chain[len(chain)-1]
	span := e.Span
	info.Found = true
	info.Label = e.Label
	info.Tag = e.TagName
	info.Kind = e.Kind.String()
	info.Span = &span
	info.Children = len(e.Children)
	info.Attributes = e.Attributes
	for _, a := range chain[:len(chain)-1] {
		info.Ancestors = append(info.Ancestors, a.Label)
	}
	return info
}

func sortedAttributeNames(attrs map[string]string) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func renderInfoText(r *output.Renderer, info output.ElementInfo) {
	styles := r.Styles()
	if !info.Found {
		r.Muted(fmt.Sprintf("No element at %s:%s", info.Path, info.Position))
		return
	}

	r.Println(styles.Header1.Render(info.Label) + " " + styles.Tag.Render("<"+info.Tag+">"))
	r.Printf("  %s %s\n", styles.Muted.Render("Kind:    "), output.Title(info.Kind))
	r.Printf("  %s %s\n", styles.Muted.Render("Span:    "), styles.Location.Render(info.Span.String()))
	r.Printf("  %s %d\n", styles.Muted.Render("Children:"), info.Children)
	if len(info.Ancestors) > 0 {
		r.Printf("  %s %s\n", styles.Muted.Render("Path:    "), strings.Join(append(info.Ancestors, info.Label), " › "))
	}
	if len(info.Attributes) > 0 {
		r.Println("")
		r.Println(styles.Header2.Render("  Attributes"))
		for _, name := range sortedAttributeNames(info.Attributes) {
			r.Printf("    %s = %q\n", styles.Bold.Render(name), info.Attributes[name])
		}
	}
}

func renderInfoMarkdown(r *output.Renderer, info output.ElementInfo) {
	if !info.Found {
		r.Printf("No element at `%s:%s`.\n", info.Path, info.Position)
		return
	}

	r.Println(output.FormatHeader(1, output.EscapeMarkdown(info.Label)))
	r.Println("")
	r.Println(output.FormatKeyValue("Tag", "`"+info.Tag+"`"))
	r.Println(output.FormatKeyValue("Kind", info.Kind))
	r.Println(output.FormatKeyValue("Span", info.Span.String()))
	r.Println(output.FormatKeyValue("Children", strconv.Itoa(info.Children)))
	if len(info.Ancestors) > 0 {
		r.Println(output.FormatKeyValue("Path", output.EscapeMarkdown(strings.Join(append(info.Ancestors, info.Label), " > "))))
	}
	if len(info.Attributes) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Attributes"))
		r.Println("")
		r.Println("| Attribute | Value |")
		r.Println("|---|---|")
		for _, name := range sortedAttributeNames(info.Attributes) {
			r.Printf("| `%s` | %s |\n", name, output.EscapeMarkdown(info.Attributes[name]))
		}
	}
}
