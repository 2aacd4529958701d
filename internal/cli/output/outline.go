package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/xamlnav/pkg/outline"
)

// OutlineTree renders symbols as a lipgloss tree for text mode.
func (r *Renderer) OutlineTree(title string, syms []outline.Symbol) string {
	t := tree.Root(r.styles.Bold.Render(title)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(r.styles.Enumerator)
	for i := range syms {
		t.Child(r.symbolNode(&syms[i]))
	}
	return t.String()
}

func (r *Renderer) symbolNode(sym *outline.Symbol) any {
	label := r.styles.Kind(sym.Kind).Render(sym.Name) + " " + r.styles.Tag.Render(sym.Detail)
	if len(sym.Children) == 0 {
		return label
	}
	node := tree.Root(label)
	for i := range sym.Children {
		node.Child(r.symbolNode(&sym.Children[i]))
	}
	return node
}

// OutlineMarkdown renders symbols as a nested markdown list.
func OutlineMarkdown(syms []outline.Symbol) string {
	var sb strings.Builder
	writeMarkdownSymbols(&sb, syms, 0)
	return sb.String()
}

func writeMarkdownSymbols(sb *strings.Builder, syms []outline.Symbol, depth int) {
	indent := strings.Repeat("  ", depth)
	for i := range syms {
		sym := &syms[i]
		fmt.Fprintf(sb, "%s- **%s** `%s` (line %d)\n", indent, EscapeMarkdown(sym.Name), sym.Detail, sym.Range.Start.Line+1)
		writeMarkdownSymbols(sb, sym.Children, depth+1)
	}
}

// EntriesTable renders flattened entries as a go-pretty table. Markdown mode
// produces a markdown table.
func (r *Renderer) EntriesTable(entries []outline.Entry) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Line", "Element", "Tag", "Kind", "Container"})
	for _, e := range entries {
		label := strings.Repeat("  ", e.Depth) + e.Label
		t.AppendRow(table.Row{e.Line, label, e.TagName, Title(e.Kind.String()), e.Container})
	}

	if r.EffectiveMode() == ModeMarkdown {
		return t.RenderMarkdown()
	}
	return t.Render()
}
