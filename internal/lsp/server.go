// Package lsp implements a Language Server Protocol server that exposes the
// XAML element outline: document symbols, hover details for the element under
// the cursor and a workspace-wide pick-by-name symbol list.
package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/leapstack-labs/xamlnav/internal/config"
	"github.com/leapstack-labs/xamlnav/internal/detect"
	"github.com/leapstack-labs/xamlnav/internal/provider"
)

// ServerName is reported to clients in the initialize result.
const ServerName = "xamlnav"

// Server implements the Language Server Protocol for XAML outlines.
type Server struct {
	// Document management
	documents *DocumentStore

	// Single-slot parse cache shared by symbol and hover requests
	provider *provider.Provider

	// Decides which open documents are XAML
	detect   detect.Predicate
	detectMu sync.RWMutex

	// Project context
	projectRoot string
	initialized bool
	version     string

	// I/O
	reader io.Reader
	writer io.Writer
	conn   *jsonrpc2.Conn

	// Logging
	logger *slog.Logger

	// Shutdown state
	shutdown   bool
	shutdownMu sync.RWMutex
}

// NewServer creates a new LSP server instance.
func NewServer(reader io.Reader, writer io.Writer) *Server {
	return NewServerWithLogger(reader, writer, nil)
}

// NewServerWithLogger creates a new LSP server instance with a custom logger.
func NewServerWithLogger(reader io.Reader, writer io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return &Server{
		documents: NewDocumentStore(),
		provider:  provider.New(false, logger),
		detect:    detect.New(detect.DefaultOptions()).Predicate(),
		reader:    reader,
		writer:    writer,
		logger:    logger,
		version:   "dev",
	}
}

// Configure applies settings loaded by the caller. A project config found
// in the workspace root during initialize takes precedence.
func (s *Server) Configure(cfg *config.ProjectConfig) {
	if cfg == nil {
		return
	}
	s.provider.SetShowLineNumbers(cfg.ShowLineNumbers)
	s.SetPredicate(detect.New(cfg.Detect.Options()).Predicate())
}

// SetPredicate replaces the document detection predicate.
func (s *Server) SetPredicate(p detect.Predicate) {
	if p == nil {
		p = detect.Always
	}
	s.detectMu.Lock()
	defer s.detectMu.Unlock()
	s.detect = p
}

// SetVersion sets the version reported in the initialize result.
func (s *Server) SetVersion(v string) {
	s.version = v
}

func (s *Server) isXAML(doc *Document) bool {
	s.detectMu.RLock()
	defer s.detectMu.RUnlock()
	return s.detect(doc.Detect())
}

// rwc joins the server's reader and writer into the stream jsonrpc2 expects.
type rwc struct {
	io.Reader
	io.Writer
}

func (c rwc) Close() error {
	var errs []error
	if cl, ok := c.Reader.(io.Closer); ok {
		errs = append(errs, cl.Close())
	}
	if cl, ok := c.Writer.(io.Closer); ok {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}

// slogPrinter routes jsonrpc2 transport messages into the server logger.
type slogPrinter struct {
	logger *slog.Logger
}

func (p slogPrinter) Printf(format string, v ...interface{}) {
	p.logger.Debug(fmt.Sprintf(format, v...))
}

// Run serves requests until the client disconnects, sends exit, or ctx is
// canceled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("xamlnav LSP server starting...")

	stream := jsonrpc2.NewBufferedStream(rwc{Reader: s.reader, Writer: s.writer}, jsonrpc2.VSCodeObjectCodec{})
	handler := jsonrpc2.HandlerWithError(s.handle).SuppressErrClosed()
	s.conn = jsonrpc2.NewConn(ctx, stream, handler, jsonrpc2.SetLogger(slogPrinter{s.logger}))

	select {
	case <-s.conn.DisconnectNotify():
		s.logger.Info("Client disconnected")
	case <-ctx.Done():
		_ = s.conn.Close()
		s.logger.Info("Server stopped", "reason", ctx.Err())
	}
	return nil
}

// handle dispatches a request to the appropriate handler. It runs on the
// connection's read loop, so requests are processed one at a time.
func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	s.logger.Debug("Received", "method", req.Method)

	if s.isShutdown() && req.Method != protocol.MethodExit {
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidRequest, Message: "server is shutting down"}
	}

	switch req.Method {
	case protocol.MethodInitialize:
		return s.handleInitialize(ctx, req)
	case protocol.MethodInitialized:
		return s.handleInitialized(ctx, conn)
	case protocol.MethodShutdown:
		return s.handleShutdown()
	case protocol.MethodExit:
		return s.handleExit(conn)
	case protocol.MethodTextDocumentDidOpen:
		return s.handleDidOpen(req)
	case protocol.MethodTextDocumentDidClose:
		return s.handleDidClose(req)
	case protocol.MethodTextDocumentDidChange:
		return s.handleDidChange(req)
	case protocol.MethodTextDocumentDidSave:
		return s.handleDidSave(req)
	case protocol.MethodWorkspaceDidChangeConfiguration:
		return s.handleDidChangeConfiguration(req)
	case protocol.MethodTextDocumentDocumentSymbol:
		return s.handleDocumentSymbol(ctx, conn, req)
	case protocol.MethodTextDocumentHover:
		return s.handleHover(ctx, conn, req)
	case protocol.MethodWorkspaceSymbol:
		return s.handleWorkspaceSymbol(ctx, conn, req)
	default:
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: "Method not found: " + req.Method,
		}
	}
}

// decodeParams unmarshals request params, reporting failures as InvalidParams.
func decodeParams(req *jsonrpc2.Request, v interface{}) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

func (s *Server) isShutdown() bool {
	s.shutdownMu.RLock()
	defer s.shutdownMu.RUnlock()
	return s.shutdown
}

// notify sends a window/showMessage notification. Failures are only logged.
func (s *Server) notify(ctx context.Context, conn *jsonrpc2.Conn, typ protocol.MessageType, message string) {
	if conn == nil {
		return
	}
	if err := conn.Notify(ctx, protocol.MethodWindowShowMessage, &protocol.ShowMessageParams{
		Type:    typ,
		Message: message,
	}); err != nil {
		s.logger.Warn("Failed to send notification", "error", err)
	}
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(_ context.Context, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.InitializeParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}

	switch {
	case len(params.WorkspaceFolders) > 0:
		s.projectRoot = detect.PathFromURI(string(params.WorkspaceFolders[0].URI))
	case params.RootURI != "":
		s.projectRoot = detect.PathFromURI(string(params.RootURI))
	default:
		s.projectRoot = params.RootPath
	}
	s.logger.Info("Project root", "path", s.projectRoot)

	s.loadProjectConfig()

	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save: &protocol.SaveOptions{
					IncludeText: true,
				},
			},
			HoverProvider:           true,
			DocumentSymbolProvider:  true,
			WorkspaceSymbolProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    ServerName,
			Version: s.version,
		},
	}, nil
}

// loadProjectConfig applies xamlnav.yaml from the project root, if any.
func (s *Server) loadProjectConfig() {
	if s.projectRoot == "" {
		return
	}
	cfg, err := config.LoadFromDir(s.projectRoot)
	if err != nil {
		s.logger.Warn("Failed to load project config", "path", s.projectRoot, "error", err)
		return
	}
	if cfg == nil {
		s.logger.Debug("No project config found", "path", s.projectRoot)
		return
	}
	s.Configure(cfg)
	s.logger.Info("Loaded project config", "path", config.FindConfigFile(s.projectRoot), "show_line_numbers", cfg.ShowLineNumbers)
}

func (s *Server) handleInitialized(_ context.Context, _ *jsonrpc2.Conn) (interface{}, error) {
	s.initialized = true
	s.logger.Info("Server initialized")
	return nil, nil
}

func (s *Server) handleShutdown() (interface{}, error) {
	s.shutdownMu.Lock()
	s.shutdown = true
	s.shutdownMu.Unlock()

	s.provider.InvalidateAll()
	s.logger.Info("Server shutdown")
	return nil, nil
}

func (s *Server) handleExit(conn *jsonrpc2.Conn) (interface{}, error) {
	s.logger.Info("Server exit")
	if err := conn.Close(); err != nil && !errors.Is(err, jsonrpc2.ErrClosed) {
		return nil, err
	}
	return nil, nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.DidOpenTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}

	item := params.TextDocument
	s.documents.Open(string(item.URI), string(item.LanguageID), item.Text, int(item.Version))
	s.logger.Info("Opened", "uri", item.URI, "language", item.LanguageID)
	return nil, nil
}

func (s *Server) handleDidClose(req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.DidCloseTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}

	uri := string(params.TextDocument.URI)
	s.documents.Close(uri)
	s.provider.Invalidate(uri)
	s.logger.Info("Closed", "uri", uri)
	return nil, nil
}

func (s *Server) handleDidChange(req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.DidChangeTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}

	// We use full sync, so take the last change
	if len(params.ContentChanges) > 0 {
		lastChange := params.ContentChanges[len(params.ContentChanges)-1]
		s.documents.Update(string(params.TextDocument.URI), lastChange.Text, int(params.TextDocument.Version))
	}
	return nil, nil
}

func (s *Server) handleDidSave(req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.DidSaveTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}

	uri := string(params.TextDocument.URI)
	s.logger.Info("Saved", "path", detect.PathFromURI(uri))

	// Saved text replaces the content under the client's version; only the
	// client numbers versions, so the cached outline for it is dropped instead.
	if params.Text != "" {
		if doc := s.documents.Get(uri); doc != nil && doc.Content != params.Text {
			s.documents.Update(uri, params.Text, doc.Version)
			s.provider.Invalidate(uri)
		}
	}
	return nil, nil
}

// settingsPayload is the shape of workspace/didChangeConfiguration settings.
type settingsPayload struct {
	Settings struct {
		Xamlnav struct {
			ShowLineNumbers *bool `json:"showLineNumbers"`
		} `json:"xamlnav"`
	} `json:"settings"`
}

func (s *Server) handleDidChangeConfiguration(req *jsonrpc2.Request) (interface{}, error) {
	var params settingsPayload
	if err := decodeParams(req, &params); err != nil {
		return nil, err
	}

	if show := params.Settings.Xamlnav.ShowLineNumbers; show != nil {
		s.provider.SetShowLineNumbers(*show)
		s.logger.Info("Configuration changed", "show_line_numbers", *show)
	}
	return nil, nil
}

// parsedDocument returns the cached parse for an open XAML document, or nil
// when the document is unknown or not XAML. A parse failure is reported to
// the client and yields nil as well.
func (s *Server) parsedDocument(ctx context.Context, conn *jsonrpc2.Conn, uri string) (*Document, *provider.ParsedDocument) {
	doc := s.documents.Get(uri)
	if doc == nil {
		s.logger.Debug("Document not open", "uri", uri)
		return nil, nil
	}
	if !s.isXAML(doc) {
		s.logger.Debug("Not a XAML document", "uri", uri)
		return doc, nil
	}

	parsed := s.provider.GetOrParse(ctx, doc.URI, doc.Content, doc.Version)
	if parsed.HasParseError() {
		s.notify(ctx, conn, protocol.MessageTypeError, "xamlnav: failed to build outline: "+parsed.ParseError.Error())
		return doc, nil
	}
	return doc, parsed
}
