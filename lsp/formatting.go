// Copyright © 2025 The lispindent authors

package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/lispindent/parser/partial"
	"github.com/luthersystems/lispindent/reindent"
)

// textDocumentOnTypeFormatting handles textDocument/onTypeFormatting.  The
// trigger character is newline: the editor asks for the indentation of the
// line the cursor just landed on, and the response is a single edit
// replacing that line's leading whitespace.
func (s *Server) textDocumentOnTypeFormatting(_ *glsp.Context, params *protocol.DocumentOnTypeFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	provider := s.host.IndentProvider()
	if provider == nil {
		return nil, nil
	}
	content := doc.Snapshot()

	line := int(params.Position.Line)
	ls := lineStartOffset(content, line)
	r := provider.Indent(content, ls, partial.TopLevelStart(content, ls))
	if r.Unchanged {
		return nil, nil
	}

	// Extent of the line's current leading whitespace.
	ws := ls
	for ws < len(content) && (content[ws] == ' ' || content[ws] == '\t') {
		ws++
	}
	current := ws - ls
	if current == r.Column && !strings.ContainsRune(content[ls:ws], '\t') {
		return nil, nil
	}

	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: safeUint(line), Character: 0},
				End:   protocol.Position{Line: safeUint(line), Character: safeUint(current)},
			},
			NewText: strings.Repeat(" ", r.Column),
		},
	}, nil
}

// textDocumentRangeFormatting handles textDocument/rangeFormatting by
// reindenting each line of the range in order, so each line's computation
// sees the lines already adjusted above it.  The response replaces the
// covered lines wholesale.
func (s *Server) textDocumentRangeFormatting(_ *glsp.Context, params *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	provider := s.host.IndentProvider()
	if provider == nil {
		return nil, nil
	}
	content := doc.Snapshot()

	startLine := int(params.Range.Start.Line)
	endLine := int(params.Range.End.Line)
	if endLine > startLine && params.Range.End.Character == 0 {
		// A selection ending at column 0 does not include that line.
		endLine--
	}

	updated := reindent.Lines(content, startLine, endLine, provider)
	if updated == content {
		return nil, nil
	}

	// Replace the full covered lines with their reindented text.
	regionStart := lineStartOffset(content, startLine)
	regionEnd := lineEndOffset(content, endLine)
	// The edit only moves leading whitespace, so line counts are stable and
	// the updated region spans the same line numbers.
	newStart := lineStartOffset(updated, startLine)
	newEnd := lineEndOffset(updated, endLine)
	if updated[newStart:newEnd] == content[regionStart:regionEnd] {
		return nil, nil
	}

	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: safeUint(startLine), Character: 0},
				End:   protocol.Position{Line: safeUint(endLine), Character: safeUint(regionEnd - lineStartOffset(content, endLine))},
			},
			NewText: updated[newStart:newEnd],
		},
	}, nil
}
