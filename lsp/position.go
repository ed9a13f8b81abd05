// Copyright © 2025 The lispindent authors

package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// offsetAt converts a 0-based LSP position to a byte offset into content.
// Out-of-range lines clamp to the end of the document; out-of-range
// characters clamp to the end of the line.
func offsetAt(content string, pos protocol.Position) int {
	off := 0
	line := int(pos.Line)
	for line > 0 {
		i := strings.IndexByte(content[off:], '\n')
		if i < 0 {
			return len(content)
		}
		off += i + 1
		line--
	}
	end := strings.IndexByte(content[off:], '\n')
	if end < 0 {
		end = len(content) - off
	}
	char := int(pos.Character)
	if char > end {
		char = end
	}
	return off + char
}

// lineStartOffset returns the byte offset of the start of a 0-based line.
func lineStartOffset(content string, line int) int {
	return offsetAt(content, protocol.Position{Line: safeUint(line), Character: 0})
}

// lineEndOffset returns the byte offset just before the newline ending a
// 0-based line (or the end of the document).
func lineEndOffset(content string, line int) int {
	off := lineStartOffset(content, line)
	if i := strings.IndexByte(content[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(content)
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}
