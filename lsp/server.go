// Copyright © 2025 The lispindent authors

// Package lsp implements a Language Server Protocol server exposing the
// indentation engine through textDocument/onTypeFormatting and
// textDocument/rangeFormatting, and the symbol classifier through semantic
// token highlighting.
package lsp

import (
	"os"

	"github.com/tliron/glsp"
	glspserver "github.com/tliron/glsp/server"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/lispindent/classify"
	"github.com/luthersystems/lispindent/indent"
	"github.com/luthersystems/lispindent/indent/rules"
	"github.com/luthersystems/lispindent/mode"
)

const serverName = "lispindent-lsp"

// Server is the lispindent language server.  Providers are installed on an
// internal mode host so an embedder can swap either capability at runtime
// without touching the other.
type Server struct {
	handler protocol.Handler
	glspSrv *glspserver.Server
	docs    *DocumentStore
	host    *mode.Host
	active  *mode.Mode

	// exitFn is called on the LSP exit notification.  Defaults to os.Exit.
	// Overridable for testing.
	exitFn func(int)
}

// Option configures the LSP server.
type Option func(*Server) error

// WithProvider installs a custom indentation provider in place of the
// default engine.
func WithProvider(p mode.IndentProvider) Option {
	return func(s *Server) error {
		s.host.SetIndentProvider(p)
		return nil
	}
}

// WithHighlighter installs a custom highlighter in place of the default
// builtin-table classifier.
func WithHighlighter(hl mode.Highlighter) Option {
	return func(s *Server) error {
		s.host.SetHighlighter(hl)
		return nil
	}
}

// New creates a new lispindent LSP server.  Without options, the default
// engine (default rule table, plist heuristic enabled) and the builtin
// classifier are activated.
func New(opts ...Option) (*Server, error) {
	eng, err := indent.New(indent.Options{KeywordPlistHeuristic: true}, rules.Default())
	if err != nil {
		return nil, err
	}

	s := &Server{
		docs:   NewDocumentStore(),
		host:   &mode.Host{},
		exitFn: os.Exit,
	}
	s.active = mode.Activate(s.host, eng, classify.New(classify.Builtins()))
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	s.handler = protocol.Handler{
		Initialize: s.initialize,
		Shutdown:   s.shutdown,
		Exit:       s.exit,
		SetTrace:   s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentOnTypeFormatting:   s.textDocumentOnTypeFormatting,
		TextDocumentRangeFormatting:    s.textDocumentRangeFormatting,
		TextDocumentSemanticTokensFull: s.textDocumentSemanticTokensFull,
	}

	s.glspSrv = glspserver.NewServer(&s.handler, serverName, false)
	return s, nil
}

// RunStdio starts the server using stdio transport.
func (s *Server) RunStdio() error {
	return s.glspSrv.RunStdio()
}

// RunTCP starts the server listening on the given address.
func (s *Server) RunTCP(addr string) error {
	return s.glspSrv.RunTCP(addr)
}

// initialize handles the LSP initialize request.
func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}

	capabilities.DocumentOnTypeFormattingProvider = &protocol.DocumentOnTypeFormattingOptions{
		FirstTriggerCharacter: "\n",
	}
	capabilities.DocumentRangeFormattingProvider = true
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: semanticTokenLegend(),
		Full:   true,
	}

	version := "0.1.0"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	return nil
}

// exit handles the LSP exit notification by terminating the process.
func (s *Server) exit(_ *glsp.Context) error {
	s.exitFn(0)
	return nil
}

// setTrace handles the $/setTrace notification (required by some clients).
func (s *Server) setTrace(_ *glsp.Context, _ *protocol.SetTraceParams) error {
	return nil
}

func (s *Server) textDocumentDidOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.Open(params.TextDocument.URI, int32(params.TextDocument.Version), params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}
	s.docs.Change(params.TextDocument.URI, int32(params.TextDocument.Version), content)
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.Close(params.TextDocument.URI)
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
