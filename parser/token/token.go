// Copyright © 2025 The lispindent authors

// Package token defines source positions and the character classes shared by
// the partial-expression scanner and the indentation engine.  Positions are
// byte offsets into the text region handed to a single query; nothing in this
// package retains state between queries.
package token

import (
	"fmt"
	"strconv"
)

// Pos is a byte offset into the scanned text.  NoPos marks the absence of a
// position (for example the containing expression at top level).
type Pos int

// NoPos is the zero-value-adjacent sentinel for "no position".
const NoPos Pos = -1

// Valid reports whether p refers to an actual offset.
func (p Pos) Valid() bool {
	return p >= 0
}

// Location is a human readable source position used in error messages and
// editor protocol translation.  Line and Col start at 1.
type Location struct {
	File string
	Pos  Pos
	Line int
	Col  int
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// Locate computes the 1-based line and column of pos within text.
func Locate(file, text string, pos Pos) *Location {
	loc := &Location{File: file, Pos: pos, Line: 1, Col: 1}
	if !pos.Valid() || int(pos) > len(text) {
		return loc
	}
	for i := 0; i < int(pos); i++ {
		if text[i] == '\n' {
			loc.Line++
			loc.Col = 1
		} else {
			loc.Col++
		}
	}
	return loc
}

// IsOpen reports whether c opens a list.  The dialect uses parentheses for
// calls and square brackets for literal lists.
func IsOpen(c byte) bool {
	return c == '(' || c == '['
}

// IsClose reports whether c closes a list.
func IsClose(c byte) bool {
	return c == ')' || c == ']'
}

// CloseFor returns the closing delimiter matching an opening delimiter.
func CloseFor(open byte) byte {
	if open == '[' {
		return ']'
	}
	return ')'
}

// IsSigil reports whether c is a quoting sigil character: quote, quasiquote,
// unquote, or the splicing marker that may trail an unquote.
func IsSigil(c byte) bool {
	switch c {
	case '\'', '`', ',', '@':
		return true
	}
	return false
}

// IsQuoteSigil reports whether c marks the following expression as literal
// data.  The unquote sigils are deliberately excluded; they re-enter
// evaluated context.
func IsQuoteSigil(c byte) bool {
	return c == '\'' || c == '`'
}

// IsSpace reports whether c separates expressions.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// IsAtomTerminator reports whether c ends a bare symbol or number token.
func IsAtomTerminator(c byte) bool {
	return IsSpace(c) || IsOpen(c) || IsClose(c) || c == '"' || c == ';'
}

// Marker is the property-list marker character.  A list whose first element
// begins with Marker is conventionally a plist.
const Marker byte = ':'

// LineStart returns the offset of the first byte of the line containing pos.
func LineStart(text string, pos Pos) Pos {
	i := int(pos)
	if i > len(text) {
		i = len(text)
	}
	for i > 0 && text[i-1] != '\n' {
		i--
	}
	return Pos(i)
}

// Col returns the 0-based column of pos within its line.
func Col(text string, pos Pos) int {
	return int(pos - LineStart(text, pos))
}

// SameLine reports whether a and b fall on the same line of text.
func SameLine(text string, a, b Pos) bool {
	return LineStart(text, a) == LineStart(text, b)
}

// SkipSigils advances pos past any leading quoting sigils, returning the
// offset of the expression proper.
func SkipSigils(text string, pos Pos) Pos {
	i := int(pos)
	for i < len(text) && IsSigil(text[i]) {
		i++
	}
	return Pos(i)
}

// IsNumberLiteral reports whether an atom spells a numeric literal: an
// optionally signed integer (with 0x, 0o, or 0b base prefixes) or float.
// The atom must begin with a digit after any sign, or with a decimal point
// followed by a digit, so bare symbols such as "e" or "..." are never
// numbers.
func IsNumberLiteral(name string) bool {
	s := name
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	digitLed := s[0] >= '0' && s[0] <= '9'
	if !digitLed && !(s[0] == '.' && len(s) > 1 && s[1] >= '0' && s[1] <= '9') {
		return false
	}
	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// LeadingWidth returns the width of the whitespace run starting at the
// beginning of the line containing pos.  Tabs count as single columns; the
// engine emits space-only indentation.
func LeadingWidth(text string, pos Pos) int {
	i := int(LineStart(text, pos))
	n := 0
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		n++
		i++
	}
	return n
}
