// Copyright © 2025 The lispindent authors

// Package indent implements the indentation decision engine.  Given the text
// of the enclosing top-level form and the offset of the line being indented,
// the engine selects the prior expression the line should align under and
// returns its column.  The engine consults a partial-expression scan of the
// surrounding context and, when configured, a per-operator resolver; it
// performs no reformatting itself and never fails on malformed input.
package indent

import (
	"github.com/pkg/errors"

	"github.com/luthersystems/lispindent/parser/partial"
	"github.com/luthersystems/lispindent/parser/token"
)

// DefaultIndentSize is the body-indent width used when Options does not
// specify one.
const DefaultIndentSize = 2

// Options configures the engine.  Options are validated once by New;
// individual queries never re-validate.
type Options struct {
	// KeywordPlistHeuristic treats a list whose first element begins with
	// the plist marker as a property list: arguments align under the head
	// rather than under the first argument, and marker-led lines align on
	// the earliest marker of the trailing pair run.
	KeywordPlistHeuristic bool

	// FixedOffset, when non-nil, bypasses all heuristics and indents every
	// line at the containing delimiter's column plus the offset.
	FixedOffset *int

	// IndentSize is the body-indent width used by per-operator rules.
	// Zero selects DefaultIndentSize.
	IndentSize int
}

func (o *Options) validate() error {
	if o.IndentSize < 0 {
		return errors.Errorf("indent size must be non-negative: %d", o.IndentSize)
	}
	if o.FixedOffset != nil && *o.FixedOffset < 0 {
		return errors.Errorf("fixed offset must be non-negative: %d", *o.FixedOffset)
	}
	return nil
}

// Result is the outcome of one indentation query.  Unchanged means the line's
// current leading whitespace must not be altered (the cursor is inside a
// string, or the surrounding syntax could not be scanned).
type Result struct {
	Column    int
	Unchanged bool
}

// Column returns a Result carrying a concrete column.
func Column(col int) Result {
	if col < 0 {
		col = 0
	}
	return Result{Column: col}
}

// Unchanged returns the leave-unchanged sentinel Result.
func Unchanged() Result {
	return Result{Unchanged: true}
}

// Resolver supplies custom per-operator columns.  Resolve returns the column
// for the line being indented and true, or false to defer to the engine's
// default heuristics.  Implementations must be side-effect free; a panic or
// a negative column is treated as "no opinion".
type Resolver interface {
	Resolve(op string, st *partial.State, opts *Options) (int, bool)
}

// Engine computes indentation columns.  An Engine is immutable and safe for
// concurrent use; every query is independent and stateless.
type Engine struct {
	opts     Options
	resolver Resolver
}

// New validates opts and returns an engine.  resolver may be nil to disable
// per-operator rules.
func New(opts Options, resolver Resolver) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Wrap(err, "indent options")
	}
	if opts.IndentSize == 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Engine{opts: opts, resolver: resolver}, nil
}

// Options returns a copy of the engine's validated options.
func (e *Engine) Options() Options {
	return e.opts
}

// Indent computes the indentation column for the line starting at cursor.
// topLevel is the offset of the enclosing top-level form (see
// partial.TopLevelStart).  Malformed input yields the unchanged sentinel;
// Indent never panics and never returns an error.
func (e *Engine) Indent(text string, cursor, topLevel int) Result {
	st, err := partial.Scan(text, topLevel, cursor)
	if err != nil {
		return Unchanged()
	}

	// Indentation inside multi-line strings is never altered.  Comment
	// bodies are not reformatted either; the line keeps its own leading
	// whitespace.
	if st.InString {
		return Unchanged()
	}
	if st.InComment {
		return Column(token.LeadingWidth(text, token.Pos(cursor)))
	}

	if !st.Containing.Valid() {
		return Column(0)
	}

	if e.opts.FixedOffset != nil {
		return Column(st.Col(st.Containing) + *e.opts.FixedOffset)
	}

	// Base case: nothing on the sub-list yet.  The column immediately after
	// the opening delimiter is final; no heuristics or overrides apply.
	if !st.LastExpr.Valid() {
		return Column(st.Col(st.Containing) + 1)
	}

	if col, ok := e.resolve(st, cursor); ok {
		return Column(col)
	}

	if e.opts.KeywordPlistHeuristic && lineBeginsWithMarker(text, cursor) {
		if col, ok := plistPairColumn(st); ok {
			return Column(col)
		}
	}

	return Column(e.anchor(st, cursor))
}

// resolve queries the per-operator resolver, guarding against faults.  Any
// panic or invalid column is treated as "no opinion" so a broken resolver
// can never interrupt an editing session.
func (e *Engine) resolve(st *partial.State, cursor int) (col int, ok bool) {
	if e.resolver == nil {
		return 0, false
	}
	op := st.Operator(st.Containing, token.Pos(cursor))
	if op == "" {
		return 0, false
	}
	defer func() {
		if recover() != nil {
			col, ok = 0, false
		}
	}()
	col, ok = e.resolver.Resolve(op, st, &e.opts)
	if ok && col < 0 {
		return 0, false
	}
	return col, ok
}

// anchor selects the column the current line aligns under, in priority
// order: operator alignment for quoted data, plists, and single-element
// lists; nested-head alignment when the operator position is itself a
// sub-list; argument alignment under the second element; and finally
// alignment with the first expression of the last sibling's line.
func (e *Engine) anchor(st *partial.State, cursor int) int {
	text := st.Text
	first := st.Siblings[0]

	// The current line is the first argument line when every completed
	// sibling still sits on the opening delimiter's line.
	if token.SameLine(text, st.LastExpr, st.Containing) {
		switch {
		case len(st.Siblings) == 1:
			// Degenerate single-element list: nothing but the operator.
			return st.Col(first)
		case e.opts.KeywordPlistHeuristic && plistStart(st):
			return st.Col(first)
		case quotedContext(st, token.Pos(cursor)):
			return st.Col(first)
		}
		if head := token.SkipSigils(text, first); int(head) < len(text) && token.IsOpen(text[head]) {
			// The operator position is a sub-list; align under it.
			return st.Col(head)
		}
		return st.Col(st.Siblings[1])
	}

	// Fallback sibling alignment: the first expression on the last
	// sibling's line, with leading quoting sigils stripped.
	ls := token.LineStart(text, st.LastExpr)
	p := firstExprAfter(text, ls, st.Containing+1, token.Pos(cursor))
	return st.Col(token.SkipSigils(text, p))
}

// plistStart reports whether the containing list opens directly onto the
// plist marker.
func plistStart(st *partial.State) bool {
	i := int(st.Containing) + 1
	return i < len(st.Text) && st.Text[i] == token.Marker
}

// quotedContext reports whether the containing list is quoted data rather
// than a call: the innermost enclosing delimiter, or any ancestor, is
// immediately preceded by a quoting sigil or wrapped by an explicit quoting
// form.  An unquote sigil or form at a nearer level re-enters evaluated
// context and stops the outward walk.
func quotedContext(st *partial.State, cursor token.Pos) bool {
	text := st.Text
	for k := len(st.Enclosing) - 1; k >= 0; k-- {
		open := st.Enclosing[k]
		unquoted := false
		for i := int(open) - 1; i >= 0 && token.IsSigil(text[i]); i-- {
			switch text[i] {
			case ',':
				unquoted = true
			case '\'', '`':
				if !unquoted {
					return true
				}
			}
		}
		if unquoted {
			return false
		}
		if k > 0 {
			switch st.Operator(st.Enclosing[k-1], cursor) {
			case "quote", "quasiquote":
				return true
			case "unquote", "unquote-splicing":
				return false
			}
		}
	}
	return false
}

// plistStart above covers the opening line; plistPairColumn aligns
// marker-led continuation lines on multi-line property lists.  It walks
// backward from the last sibling over strictly alternating marker/value
// pairs and returns the column of the earliest marker reached, provided the
// run starts strictly after the list's first element.
func plistPairColumn(st *partial.State) (int, bool) {
	sib := st.Siblings
	best := -1
	for k := len(sib) - 2; k >= 0; k -= 2 {
		p := token.SkipSigils(st.Text, sib[k])
		if int(p) >= len(st.Text) || st.Text[p] != token.Marker {
			break
		}
		best = k
	}
	if best <= 0 {
		// No pair, or the run reaches the first element itself; defer to
		// the anchor rules.
		return 0, false
	}
	return st.Col(sib[best]), true
}

// lineBeginsWithMarker reports whether the line starting at cursor begins,
// after leading whitespace, with the plist marker.
func lineBeginsWithMarker(text string, cursor int) bool {
	i := cursor
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i < len(text) && text[i] == token.Marker
}

// firstExprAfter returns the start of the first expression on the line
// beginning at ls, constrained to start at or after min and before limit.
func firstExprAfter(text string, ls, min, limit token.Pos) token.Pos {
	i := int(ls)
	if i < int(min) {
		i = int(min)
	}
	for i < int(limit) && token.IsSpace(text[i]) && text[i] != '\n' {
		i++
	}
	return token.Pos(i)
}
