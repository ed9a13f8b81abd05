// Copyright © 2025 The lispindent authors

// Package reindent applies an indentation provider's columns to lines of
// text.  This is host-side plumbing: the engine computes one column per
// line, and this package rewrites each line's leading whitespace
// accordingly, one line at a time so every query sees the text produced by
// the previous edit.
package reindent

import (
	"strings"

	"github.com/luthersystems/lispindent/mode"
	"github.com/luthersystems/lispindent/parser/partial"
)

// File reindents every line of text.
func File(text string, p mode.IndentProvider) string {
	return Lines(text, 0, countLines(text), p)
}

// Lines reindents the 0-based line range [startLine, endLine], clamped to
// the text.  Lines whose result is the unchanged sentinel keep their
// leading whitespace; blank lines have theirs stripped.
func Lines(text string, startLine, endLine int, p mode.IndentProvider) string {
	for ln := startLine; ln <= endLine; ln++ {
		ls := lineOffset(text, ln)
		if ls < 0 {
			break
		}
		ws := ls
		for ws < len(text) && (text[ws] == ' ' || text[ws] == '\t') {
			ws++
		}
		if ws >= len(text) || text[ws] == '\n' {
			// Blank line: no expression to align, drop trailing whitespace.
			text = text[:ls] + text[ws:]
			continue
		}
		r := p.Indent(text, ls, partial.TopLevelStart(text, ls))
		if r.Unchanged {
			continue
		}
		text = text[:ls] + strings.Repeat(" ", r.Column) + text[ws:]
	}
	return text
}

// lineOffset returns the byte offset of the start of 0-based line ln, or -1
// when the text has fewer lines.
func lineOffset(text string, ln int) int {
	off := 0
	for ; ln > 0; ln-- {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			return -1
		}
		off += i + 1
	}
	return off
}

// countLines returns the 0-based index of the final line.
func countLines(text string) int {
	return strings.Count(text, "\n")
}
