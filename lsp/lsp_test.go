// Copyright © 2025 The lispindent authors

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/lispindent/indent"
)

// testServer creates a server with the default engine and classifier.
func testServer(t *testing.T) *Server {
	t.Helper()
	s, err := New()
	require.NoError(t, err)
	s.exitFn = func(int) {}
	return s
}

// openDoc opens a document in the test server and returns it.
func openDoc(s *Server, uri, content string) *Document {
	return s.docs.Open(uri, 1, content)
}

// mockContext returns a minimal glsp.Context for testing.
func mockContext() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {},
	}
}

func TestInitialize(t *testing.T) {
	s := testServer(t)
	result, err := s.initialize(mockContext(), &protocol.InitializeParams{})
	require.NoError(t, err)

	init, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	require.NotNil(t, init.Capabilities.DocumentOnTypeFormattingProvider)
	assert.Equal(t, "\n", init.Capabilities.DocumentOnTypeFormattingProvider.FirstTriggerCharacter)
	assert.Equal(t, true, init.Capabilities.DocumentRangeFormattingProvider)
	require.NotNil(t, init.Capabilities.SemanticTokensProvider)
}

func TestDidOpenChangeClose(t *testing.T) {
	s := testServer(t)

	err := s.textDocumentDidOpen(mockContext(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        "file:///test/a.lisp",
			LanguageID: "lisp",
			Version:    1,
			Text:       "(foo)",
		},
	})
	require.NoError(t, err)
	doc := s.docs.Get("file:///test/a.lisp")
	require.NotNil(t, doc)
	assert.Equal(t, "(foo)", doc.Snapshot())

	err = s.textDocumentDidChange(mockContext(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///test/a.lisp"},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "(bar)"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "(bar)", s.docs.Get("file:///test/a.lisp").Snapshot())

	err = s.textDocumentDidClose(mockContext(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///test/a.lisp"},
	})
	require.NoError(t, err)
	assert.Nil(t, s.docs.Get("file:///test/a.lisp"))
}

type fixedColumnProvider int

func (f fixedColumnProvider) Indent(text string, cursor, topLevel int) indent.Result {
	return indent.Column(int(f))
}

func TestWithProvider(t *testing.T) {
	s, err := New(WithProvider(fixedColumnProvider(3)))
	require.NoError(t, err)
	openDoc(s, "file:///test/p.lisp", "(foo bar\n")

	edits, err := s.textDocumentOnTypeFormatting(mockContext(), &protocol.DocumentOnTypeFormattingParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///test/p.lisp"},
			Position:     protocol.Position{Line: 1, Character: 0},
		},
		Ch: "\n",
	})
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "   ", edits[0].NewText, "custom provider's column is used")
}
