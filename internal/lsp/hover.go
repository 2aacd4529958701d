package lsp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/leapstack-labs/xamlnav/pkg/outline"
)

func (s *Server) handleHover(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.HoverParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}

	doc, parsed := s.parsedDocument(ctx, conn, string(params.TextDocument.URI))
	if parsed == nil {
		return nil, nil
	}

	e, ok := parsed.ElementAt(doc.ToTokenPosition(params.Position))
	if !ok {
		return nil, nil
	}

	r := doc.ToProtocolRange(e.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: describeElement(e),
		},
		Range: &r,
	}, nil
}

// describeElement renders the element under the cursor as markdown.
func describeElement(e *outline.Element) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**%s** `<%s>`\n\n", e.Label, e.TagName)
	fmt.Fprintf(&sb, "Kind: %s · Line %d", e.Kind, e.Line())
	if n := len(e.Children); n > 0 {
		fmt.Fprintf(&sb, " · %d children", n)
	}
	sb.WriteString("\n")

	if len(e.Attributes) > 0 {
		names := make([]string, 0, len(e.Attributes))
		for name := range e.Attributes {
			names = append(names, name)
		}
		sort.Strings(names)

		sb.WriteString("\n| Attribute | Value |\n|---|---|\n")
		for _, name := range names {
			value := strings.ReplaceAll(e.Attributes[name], "|", `\|`)
			fmt.Fprintf(&sb, "| `%s` | %s |\n", name, value)
		}
	}
	return sb.String()
}
