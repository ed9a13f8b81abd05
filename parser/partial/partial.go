// Copyright © 2025 The lispindent authors

// Package partial implements the partial-expression scanner.  A single
// forward pass over the text between the start of the enclosing top-level
// form and the cursor produces an immutable State snapshot describing the
// nesting around the cursor: the innermost unclosed delimiter, the last
// complete sibling expression, string/comment flags, and the stack of every
// enclosing delimiter.  The scanner never looks past the cursor and never
// repairs unbalanced input; a stray or mismatched closing delimiter is
// reported as ErrUnbalanced and left for the caller to recover from.
package partial

import (
	"github.com/pkg/errors"

	"github.com/luthersystems/lispindent/parser/token"
)

// ErrUnbalanced indicates the region contains a closing delimiter with no
// matching open, or a close that does not match its open's bracket type.
var ErrUnbalanced = errors.New("unbalanced expression")

// ErrRange indicates the scan region is not a valid sub-range of the text.
var ErrRange = errors.New("scan range out of bounds")

// State is the parse-state snapshot for one indentation query.  It is
// created fresh per call, read only, and holds no reference to anything
// mutable.
type State struct {
	// Text is the full text the positions below index into.
	Text string

	// Depth is the nesting level at the cursor.
	Depth int

	// Containing is the innermost unclosed opening delimiter strictly
	// enclosing the cursor, or NoPos at top level.
	Containing token.Pos

	// LastExpr is the start of the most recent complete expression inside
	// Containing (including any attached quoting sigils), or NoPos when the
	// cursor immediately follows the opening delimiter.
	LastExpr token.Pos

	InString  bool
	InComment bool

	// Enclosing holds every enclosing opening delimiter, outermost first.
	// The final element equals Containing when Containing is valid.
	Enclosing []token.Pos

	// Siblings holds the start of every completed element directly inside
	// Containing, in order.  The final element equals LastExpr.
	Siblings []token.Pos
}

// Col returns the 0-based column of pos within its line of the scanned text.
func (st *State) Col(pos token.Pos) int {
	return token.Col(st.Text, pos)
}

// Operator returns the operator symbol of the list opened at open, or the
// empty string when the first element is absent, a sub-list, a string, or
// quoted data.  The scan is bounded by limit.
func (st *State) Operator(open token.Pos, limit token.Pos) string {
	i := int(open) + 1
	end := int(limit)
	if end > len(st.Text) {
		end = len(st.Text)
	}
	for i < end {
		c := st.Text[i]
		switch {
		case token.IsSpace(c):
			i++
		case c == ';':
			for i < end && st.Text[i] != '\n' {
				i++
			}
		default:
			if token.IsOpen(c) || token.IsClose(c) || c == '"' || token.IsSigil(c) {
				return ""
			}
			start := i
			for i < end && !token.IsAtomTerminator(st.Text[i]) {
				i++
			}
			return st.Text[start:i]
		}
	}
	return ""
}

type frame struct {
	open   token.Pos // opening delimiter
	openCh byte
	start  token.Pos // element start, including attached sigils
	elems  []token.Pos
}

// Scan analyzes text between topLevel and cursor and returns the parse
// state at the cursor.  The cursor is conventionally the start of the line
// being indented but may fall anywhere at or after topLevel.
func Scan(text string, topLevel, cursor int) (*State, error) {
	if topLevel < 0 || cursor < topLevel || cursor > len(text) {
		return nil, errors.Wrapf(ErrRange, "region [%d, %d) in %d bytes", topLevel, cursor, len(text))
	}

	st := &State{
		Text:       text,
		Containing: token.NoPos,
		LastExpr:   token.NoPos,
	}
	var stack []frame
	pending := token.NoPos // sigil run preceding the next expression

	complete := func(start token.Pos) {
		if len(stack) > 0 {
			f := &stack[len(stack)-1]
			f.elems = append(f.elems, start)
		}
	}
	elemStart := func(at token.Pos) token.Pos {
		if pending.Valid() {
			return pending
		}
		return at
	}

	i := topLevel
scan:
	for i < cursor {
		c := text[i]
		switch {
		case token.IsSpace(c):
			// A sigil run only attaches to the expression it touches.
			pending = token.NoPos
			i++

		case c == ';':
			for i < cursor && text[i] != '\n' {
				i++
			}
			if i == cursor && (i >= len(text) || text[i] != '\n') {
				st.InComment = true
			}

		case c == '"':
			start := elemStart(token.Pos(i))
			pending = token.NoPos
			end, ok := scanString(text, i, cursor)
			i = end
			if !ok {
				st.InString = true
				break scan
			}
			complete(start)

		case token.IsOpen(c):
			stack = append(stack, frame{
				open:   token.Pos(i),
				openCh: c,
				start:  elemStart(token.Pos(i)),
			})
			pending = token.NoPos
			i++

		case token.IsClose(c):
			if len(stack) == 0 {
				return nil, errors.Wrapf(ErrUnbalanced, "unexpected %q at offset %d", c, i)
			}
			f := stack[len(stack)-1]
			if token.CloseFor(f.openCh) != c {
				return nil, errors.Wrapf(ErrUnbalanced, "%q at offset %d closes %q at offset %d",
					c, i, f.openCh, f.open)
			}
			stack = stack[:len(stack)-1]
			complete(f.start)
			pending = token.NoPos
			i++

		case token.IsSigil(c):
			if !pending.Valid() {
				pending = token.Pos(i)
			}
			i++

		default:
			start := elemStart(token.Pos(i))
			pending = token.NoPos
			for i < cursor && !token.IsAtomTerminator(text[i]) {
				i++
			}
			complete(start)
		}
	}

	st.Depth = len(stack)
	for _, f := range stack {
		st.Enclosing = append(st.Enclosing, f.open)
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		st.Containing = top.open
		st.Siblings = top.elems
		if len(top.elems) > 0 {
			st.LastExpr = top.elems[len(top.elems)-1]
		}
	}
	return st, nil
}

// scanString consumes a string literal starting at the double quote at
// offset start.  It returns the offset just past the closing quote and
// whether the literal terminated before limit.  Triple-quoted raw strings
// contain no escape sequences; ordinary strings honor backslash escapes.
func scanString(text string, start, limit int) (int, bool) {
	if start+3 <= limit && text[start:start+3] == `"""` {
		i := start + 3
		for i+3 <= limit {
			if text[i:i+3] == `"""` {
				return i + 3, true
			}
			i++
		}
		return limit, false
	}
	i := start + 1
	for i < limit {
		switch text[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1, true
		default:
			i++
		}
	}
	return limit, false
}

// TopLevelStart returns the offset of the enclosing top-level form for the
// line containing cursor: the start of the nearest line, at or before the
// cursor's line, whose first character opens a list.  With no such line it
// returns 0.  This bounds per-query work to a single top-level form rather
// than the whole document.
func TopLevelStart(text string, cursor int) int {
	if cursor > len(text) {
		cursor = len(text)
	}
	if cursor < 0 {
		cursor = 0
	}
	ls := token.LineStart(text, token.Pos(cursor))
	for {
		if int(ls) < len(text) && token.IsOpen(text[ls]) {
			return int(ls)
		}
		if ls == 0 {
			return 0
		}
		ls = token.LineStart(text, ls-1)
	}
}
