package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/leapstack-labs/xamlnav/internal/testutil"
)

const sampleURI = "file:///work/Views/MainWindow.xaml"

// testClient drives a Server over an in-memory pipe.
type testClient struct {
	server   *Server
	conn     *jsonrpc2.Conn
	messages chan protocol.ShowMessageParams
	done     chan error
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	serverSide, clientSide := net.Pipe()
	server := NewServerWithLogger(serverSide, serverSide, slog.New(slog.DiscardHandler))
	server.SetVersion("1.2.3")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	messages := make(chan protocol.ShowMessageParams, 16)
	handler := jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
		if req.Method == protocol.MethodWindowShowMessage && req.Params != nil {
			var p protocol.ShowMessageParams
			if err := json.Unmarshal(*req.Params, &p); err == nil {
				messages <- p
			}
		}
		return nil, nil
	})
	conn := jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}), handler)

	c := &testClient{server: server, conn: conn, messages: messages, done: done}
	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return c
}

func (c *testClient) call(t *testing.T, method string, params, result interface{}) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.conn.Call(ctx, method, params, result))
}

func (c *testClient) notify(t *testing.T, method string, params interface{}) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.conn.Notify(ctx, method, params))
}

func (c *testClient) initialize(t *testing.T) protocol.InitializeResult {
	t.Helper()
	var result protocol.InitializeResult
	c.call(t, protocol.MethodInitialize, &protocol.InitializeParams{}, &result)
	c.notify(t, protocol.MethodInitialized, &protocol.InitializedParams{})
	return result
}

func (c *testClient) open(t *testing.T, docURI, languageID, text string) {
	t.Helper()
	c.notify(t, protocol.MethodTextDocumentDidOpen, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        protocol.DocumentURI(docURI),
			LanguageID: protocol.LanguageIdentifier(languageID),
			Version:    1,
			Text:       text,
		},
	})
}

func (c *testClient) documentSymbols(t *testing.T, docURI string) []protocol.DocumentSymbol {
	t.Helper()
	var syms []protocol.DocumentSymbol
	c.call(t, protocol.MethodTextDocumentDocumentSymbol, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(docURI)},
	}, &syms)
	return syms
}

func TestServer_Initialize(t *testing.T) {
	c := newTestClient(t)
	result := c.initialize(t)

	caps := result.Capabilities
	assert.Equal(t, true, caps.HoverProvider)
	assert.Equal(t, true, caps.DocumentSymbolProvider)
	assert.Equal(t, true, caps.WorkspaceSymbolProvider)

	require.NotNil(t, result.ServerInfo)
	assert.Equal(t, ServerName, result.ServerInfo.Name)
	assert.Equal(t, "1.2.3", result.ServerInfo.Version)
}

func TestServer_Initialize_LoadsProjectConfig(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "xamlnav.yaml", "show_line_numbers: true\n")

	c := newTestClient(t)
	var result protocol.InitializeResult
	c.call(t, protocol.MethodInitialize, &protocol.InitializeParams{
		RootURI: protocol.DocumentURI(uri.File(dir)),
	}, &result)

	c.open(t, sampleURI, "xaml", testutil.SampleWindow)
	syms := c.documentSymbols(t, sampleURI)
	require.Len(t, syms, 1)
	assert.Equal(t, "Window (line 1)", syms[0].Detail)
}

func TestServer_DocumentSymbol(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)
	c.open(t, sampleURI, "xaml", testutil.SampleWindow)

	syms := c.documentSymbols(t, sampleURI)
	require.Len(t, syms, 1)

	window := syms[0]
	assert.Equal(t, "[Window]", window.Name)
	assert.Equal(t, "Window", window.Detail)
	assert.Equal(t, protocol.SymbolKindClass, window.Kind)
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, window.Range.Start)
	assert.Equal(t, protocol.Position{Line: 15, Character: 9}, window.Range.End)

	require.Len(t, window.Children, 1)
	grid := window.Children[0]
	assert.Equal(t, "LayoutRoot", grid.Name)
	assert.Equal(t, protocol.SymbolKindPackage, grid.Kind)

	require.Len(t, grid.Children, 2)
	panel := grid.Children[0]
	assert.Equal(t, "[StackPanel]", panel.Name)
	require.Len(t, panel.Children, 2)
	assert.Equal(t, "TestButton", panel.Children[0].Name)
	assert.Equal(t, protocol.SymbolKindFunction, panel.Children[0].Kind)
	assert.Equal(t, `[Button "Another Button"]`, panel.Children[1].Name)

	text := grid.Children[1]
	assert.Equal(t, `[TextBlock "Status: Ready"]`, text.Name)
	assert.Equal(t, protocol.SymbolKindString, text.Kind)
}

func TestServer_DocumentSymbol_Change(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)
	c.open(t, sampleURI, "xaml", testutil.SampleWindow)
	require.Len(t, c.documentSymbols(t, sampleURI), 1)

	c.notify(t, protocol.MethodTextDocumentDidChange, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(sampleURI)},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: "<Grid/>"},
			{Text: "<UserControl/>\n<ListBox x:Name=\"Items\"/>"},
		},
	})

	syms := c.documentSymbols(t, sampleURI)
	require.Len(t, syms, 2)
	assert.Equal(t, "[UserControl]", syms[0].Name)
	assert.Equal(t, "Items", syms[1].Name)
	assert.Equal(t, protocol.SymbolKindArray, syms[1].Kind)
}

func TestServer_DidSaveThenChange(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)
	c.open(t, sampleURI, "xaml", testutil.SampleWindow)
	require.Len(t, c.documentSymbols(t, sampleURI), 1)

	c.notify(t, protocol.MethodTextDocumentDidSave, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(sampleURI)},
		Text:         "<Grid/>\n<Border/>",
	})
	syms := c.documentSymbols(t, sampleURI)
	require.Len(t, syms, 2)
	assert.Equal(t, "[Grid]", syms[0].Name)

	// The client's next version must not be served from the outline of the save.
	c.notify(t, protocol.MethodTextDocumentDidChange, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(sampleURI)},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: "<UserControl/>\n<Image/>\n<Slider/>"},
		},
	})
	syms = c.documentSymbols(t, sampleURI)
	require.Len(t, syms, 3)
	assert.Equal(t, "[UserControl]", syms[0].Name)
	assert.Equal(t, protocol.SymbolKindFile, syms[1].Kind)
}

func TestServer_DidChangeConfiguration(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)
	c.open(t, sampleURI, "xaml", testutil.SampleWindow)
	assert.Equal(t, "Window", c.documentSymbols(t, sampleURI)[0].Detail)

	c.notify(t, protocol.MethodWorkspaceDidChangeConfiguration, map[string]interface{}{
		"settings": map[string]interface{}{
			"xamlnav": map[string]interface{}{"showLineNumbers": true},
		},
	})

	assert.Equal(t, "Window (line 1)", c.documentSymbols(t, sampleURI)[0].Detail)
}

func TestServer_Hover(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)
	c.open(t, sampleURI, "xaml", testutil.SampleWindow)

	var hover protocol.Hover
	c.call(t, protocol.MethodTextDocumentHover, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(sampleURI)},
			Position:     protocol.Position{Line: 10, Character: 14},
		},
	}, &hover)

	assert.Equal(t, protocol.Markdown, hover.Contents.Kind)
	assert.Contains(t, hover.Contents.Value, "**TestButton** `<Button>`")
	assert.Contains(t, hover.Contents.Value, "Kind: function")
	assert.Contains(t, hover.Contents.Value, "| `Content` | Click Me! |")
	require.NotNil(t, hover.Range)
	assert.Equal(t, protocol.Position{Line: 10, Character: 12}, hover.Range.Start)
}

func TestServer_Hover_OutsideElements(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)
	c.open(t, sampleURI, "xaml", "\n  <Grid/>")

	var raw json.RawMessage
	c.call(t, protocol.MethodTextDocumentHover, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(sampleURI)},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	}, &raw)
	assert.True(t, len(raw) == 0 || string(raw) == "null", "expected null hover, got %s", raw)
}

func TestServer_WorkspaceSymbol(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)
	c.open(t, sampleURI, "xaml", testutil.SampleWindow)
	c.open(t, "file:///work/notes.txt", "plaintext", "<Button/>")

	var results []protocol.SymbolInformation
	c.call(t, protocol.MethodWorkspaceSymbol, &protocol.WorkspaceSymbolParams{Query: "button"}, &results)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "[StackPanel]", r.ContainerName)
		assert.Equal(t, sampleURI, string(r.Location.URI))
		assert.Equal(t, protocol.SymbolKindFunction, r.Kind)
	}
	assert.Equal(t, "TestButton", results[0].Name)
	assert.Equal(t, uint32(10), results[0].Location.Range.Start.Line)
}

func TestServer_NonXAMLDocument(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)
	c.open(t, "file:///work/readme.md", "markdown", "<Window><Grid/></Window>")

	syms := c.documentSymbols(t, "file:///work/readme.md")
	assert.Empty(t, syms)
}

func TestServer_UnknownDocument(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)

	syms := c.documentSymbols(t, "file:///work/Missing.xaml")
	assert.Empty(t, syms)
}

func TestServer_MethodNotFound(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := c.conn.Call(ctx, "textDocument/completion", map[string]string{}, nil)

	var rpcErr *jsonrpc2.Error
	require.True(t, errors.As(err, &rpcErr), "expected jsonrpc2 error, got %v", err)
	assert.Equal(t, int64(jsonrpc2.CodeMethodNotFound), rpcErr.Code)
}

func TestServer_ShutdownExit(t *testing.T) {
	c := newTestClient(t)
	c.initialize(t)

	c.call(t, protocol.MethodShutdown, nil, nil)

	// Requests after shutdown are refused.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := c.conn.Call(ctx, protocol.MethodTextDocumentDocumentSymbol, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(sampleURI)},
	}, nil)
	var rpcErr *jsonrpc2.Error
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, int64(jsonrpc2.CodeInvalidRequest), rpcErr.Code)

	c.notify(t, protocol.MethodExit, nil)

	select {
	case err := <-c.done:
		assert.NoError(t, err)
		c.done <- err
	case <-time.After(2 * time.Second):
		t.Fatal("server did not exit")
	}
}

func TestServer_ParsedDocument_Canceled(t *testing.T) {
	server := NewServerWithLogger(nil, nil, slog.New(slog.DiscardHandler))
	server.documents.Open(sampleURI, "xaml", testutil.SampleWindow, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, parsed := server.parsedDocument(ctx, nil, sampleURI)
	assert.NotNil(t, doc)
	assert.Nil(t, parsed)
}

func TestServer_SetPredicate(t *testing.T) {
	server := NewServerWithLogger(nil, nil, slog.New(slog.DiscardHandler))
	docURI := "file:///work/Shell.view"
	server.documents.Open(docURI, "plaintext", "<Grid/>", 1)

	_, parsed := server.parsedDocument(context.Background(), nil, docURI)
	assert.Nil(t, parsed, "unknown extension without markers is not XAML")

	server.SetPredicate(nil)
	_, parsed = server.parsedDocument(context.Background(), nil, docURI)
	require.NotNil(t, parsed)
	assert.Len(t, parsed.Symbols, 1)
}
