// Copyright © 2025 The lispindent authors

package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/luthersystems/lispindent/classify"
	"github.com/luthersystems/lispindent/mode"
	"github.com/luthersystems/lispindent/parser/token"
)

// Semantic token type indices — must match the order in semanticTokenLegend().
const (
	semTokenVariable = iota
	semTokenFunction
	semTokenMacro
	semTokenKeyword
	semTokenComment
	semTokenString
	semTokenNumber
)

// semanticTokenLegend returns the legend that the client uses to decode tokens.
func semanticTokenLegend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes: []string{
			"variable", // 0
			"function", // 1
			"macro",    // 2
			"keyword",  // 3
			"comment",  // 4
			"string",   // 5
			"number",   // 6
		},
		TokenModifiers: []string{},
	}
}

// rawToken is an intermediate representation before delta encoding.
type rawToken struct {
	line      int // 0-based
	startChar int // 0-based
	length    int
	tokenType int
}

// textDocumentSemanticTokensFull handles textDocument/semanticTokens/full.
// Tokens are produced by a flat lexical walk; symbol categories come from
// the active highlighter.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content := doc.Snapshot()
	tokens := lexTokens(content, s.host.Highlighter())
	return &protocol.SemanticTokens{Data: deltaEncode(tokens)}, nil
}

// lexTokens scans content for highlightable tokens.  Multi-line strings are
// emitted one token per line so clients that cannot render multi-line
// tokens still highlight them correctly.
func lexTokens(content string, hl mode.Highlighter) []rawToken {
	var tokens []rawToken
	line, bol := 0, 0
	emit := func(start, end, typ int) {
		if end > start {
			tokens = append(tokens, rawToken{
				line: line, startChar: start - bol, length: end - start, tokenType: typ,
			})
		}
	}

	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == '\n':
			line++
			i++
			bol = i

		case c == ';':
			start := i
			for i < len(content) && content[i] != '\n' {
				i++
			}
			emit(start, i, semTokenComment)

		case c == '"':
			start := i
			i = scanStringEnd(content, i)
			// Emit per line.
			segStart := start
			for j := start; j < i; j++ {
				if content[j] == '\n' {
					emit(segStart, j, semTokenString)
					line++
					bol = j + 1
					segStart = j + 1
				}
			}
			emit(segStart, i, semTokenString)

		case token.IsOpen(c) || token.IsClose(c) || token.IsSigil(c) || token.IsSpace(c):
			i++

		default:
			start := i
			for i < len(content) && !token.IsAtomTerminator(content[i]) {
				i++
			}
			name := content[start:i]
			emit(start, i, atomTokenType(name, hl))
		}
	}
	return tokens
}

// atomTokenType maps a bare atom to a legend index.
func atomTokenType(name string, hl mode.Highlighter) int {
	if name == "" {
		return semTokenVariable
	}
	if name[0] == token.Marker {
		return semTokenKeyword
	}
	if token.IsNumberLiteral(name) {
		return semTokenNumber
	}
	if hl == nil {
		return semTokenVariable
	}
	switch hl.Classify(name) {
	case classify.SpecialForm:
		return semTokenKeyword
	case classify.Macro:
		return semTokenMacro
	case classify.FunctionPrimitive, classify.FunctionLibrary:
		return semTokenFunction
	default:
		return semTokenVariable
	}
}

// scanStringEnd returns the offset one past the closing quote of the string
// starting at start, or len(content) when unterminated.
func scanStringEnd(content string, start int) int {
	if start+3 <= len(content) && content[start:start+3] == `"""` {
		for j := start + 3; j+3 <= len(content); j++ {
			if content[j:j+3] == `"""` {
				return j + 3
			}
		}
		return len(content)
	}
	for j := start + 1; j < len(content); j++ {
		switch content[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(content)
}

// deltaEncode converts position-ordered raw tokens into the LSP
// delta-encoded format: [deltaLine, deltaStartChar, length, type, modifiers].
func deltaEncode(tokens []rawToken) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(tokens)*5)
	prevLine := 0
	prevChar := 0
	for _, tok := range tokens {
		deltaLine := tok.line - prevLine
		deltaChar := tok.startChar
		if deltaLine == 0 {
			deltaChar = tok.startChar - prevChar
		}
		data = append(data,
			safeUint(deltaLine),
			safeUint(deltaChar),
			safeUint(tok.length),
			safeUint(tok.tokenType),
			0,
		)
		prevLine = tok.line
		prevChar = tok.startChar
	}
	return data
}
