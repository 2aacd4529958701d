package lsp

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/leapstack-labs/xamlnav/internal/provider"
	"github.com/leapstack-labs/xamlnav/pkg/outline"
)

// symbolKinds maps outline categories onto LSP symbol kinds.
var symbolKinds = map[outline.Kind]protocol.SymbolKind{
	outline.KindClass:    protocol.SymbolKindClass,
	outline.KindPackage:  protocol.SymbolKindPackage,
	outline.KindFunction: protocol.SymbolKindFunction,
	outline.KindString:   protocol.SymbolKindString,
	outline.KindArray:    protocol.SymbolKindArray,
	outline.KindFile:     protocol.SymbolKindFile,
	outline.KindObject:   protocol.SymbolKindObject,
}

// SymbolKind returns the LSP symbol kind for an outline category.
func SymbolKind(k outline.Kind) protocol.SymbolKind {
	if sk, ok := symbolKinds[k]; ok {
		return sk
	}
	return protocol.SymbolKindObject
}

func (s *Server) handleDocumentSymbol(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.DocumentSymbolParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}

	doc, parsed := s.parsedDocument(ctx, conn, string(params.TextDocument.URI))
	if parsed == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	return toDocumentSymbols(doc, parsed.Symbols), nil
}

// toDocumentSymbols converts outline symbols, translating byte columns into
// the client's UTF-16 columns.
func toDocumentSymbols(doc *Document, syms []outline.Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, len(syms))
	for i, sym := range syms {
		out[i] = protocol.DocumentSymbol{
			Name:           sym.Name,
			Detail:         sym.Detail,
			Kind:           SymbolKind(sym.Kind),
			Range:          doc.ToProtocolRange(sym.Range),
			SelectionRange: doc.ToProtocolRange(sym.SelectionRange),
		}
		if len(sym.Children) > 0 {
			out[i].Children = toDocumentSymbols(doc, sym.Children)
		}
	}
	return out
}

func (s *Server) handleWorkspaceSymbol(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.WorkspaceSymbolParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}

	results := []protocol.SymbolInformation{}
	for _, docURI := range s.documents.List() {
		doc := s.documents.Get(docURI)
		if doc == nil || !s.isXAML(doc) {
			continue
		}

		// Parsed outside the cache so the single slot keeps serving the
		// active editor.
		parsed := provider.Parse(ctx, doc.Content, doc.URI, doc.Version, outline.ConvertOptions{})
		if parsed.HasParseError() {
			s.notify(ctx, conn, protocol.MessageTypeError, "xamlnav: failed to build outline for "+doc.URI+": "+parsed.ParseError.Error())
			continue
		}

		for _, e := range outline.FilterEntries(parsed.Entries(), params.Query) {
			results = append(results, protocol.SymbolInformation{
				Name: e.Label,
				Kind: SymbolKind(e.Kind),
				Location: protocol.Location{
					URI:   protocol.DocumentURI(doc.URI),
					Range: doc.ToProtocolRange(e.Span),
				},
				ContainerName: e.Container,
			})
		}
	}

	s.logger.Debug("Workspace symbols", "query", params.Query, "results", len(results))
	return results, nil
}
