// Copyright © 2025 The lispindent authors

// Package rules implements the per-operator indent resolver.  A rule table
// maps operator names to indentation styles; the table satisfies
// indent.Resolver and takes priority over the engine's default heuristics
// for the operators it knows.
package rules

import (
	"strings"

	"github.com/luthersystems/lispindent/indent"
	"github.com/luthersystems/lispindent/parser/partial"
)

// Style determines how a form's arguments are indented.
type Style int

const (
	// StyleAlign defers to the engine's default alignment heuristics.
	StyleAlign Style = iota
	// StyleBody indents all subforms at delimiter column + indent size.
	StyleBody
	// StyleSpecial indents N distinguished header args at double indent,
	// the body at delimiter column + indent size.
	StyleSpecial
)

func (s Style) String() string {
	switch s {
	case StyleBody:
		return "body"
	case StyleSpecial:
		return "special"
	default:
		return "align"
	}
}

// Rule specifies the indentation behavior for a particular operator.
type Rule struct {
	Style      Style
	HeaderArgs int // for StyleSpecial: args before the "body"
}

// Table is an immutable operator-to-rule mapping.  A nil Table resolves
// nothing.
type Table struct {
	rules map[string]*Rule
}

// New builds a table from an explicit rule map.
func New(m map[string]*Rule) *Table {
	return &Table{rules: m}
}

// Default returns the conventional rule table for the dialect.
func Default() *Table {
	return New(map[string]*Rule{
		// 2 header args + body
		"defun":    {Style: StyleSpecial, HeaderArgs: 2},
		"defmacro": {Style: StyleSpecial, HeaderArgs: 2},
		"deftype":  {Style: StyleSpecial, HeaderArgs: 2},

		// 1 header arg + body
		"lambda":       {Style: StyleSpecial, HeaderArgs: 1},
		"let":          {Style: StyleSpecial, HeaderArgs: 1},
		"let*":         {Style: StyleSpecial, HeaderArgs: 1},
		"flet":         {Style: StyleSpecial, HeaderArgs: 1},
		"labels":       {Style: StyleSpecial, HeaderArgs: 1},
		"macrolet":     {Style: StyleSpecial, HeaderArgs: 1},
		"handler-bind": {Style: StyleSpecial, HeaderArgs: 1},
		"dotimes":      {Style: StyleSpecial, HeaderArgs: 1},
		"if":           {Style: StyleSpecial, HeaderArgs: 1},
		"do":           {Style: StyleSpecial, HeaderArgs: 1},
		"unless":       {Style: StyleSpecial, HeaderArgs: 1},
		"when":         {Style: StyleSpecial, HeaderArgs: 1},

		// threading forms keep default first-arg alignment
		"thread-first": {Style: StyleAlign},
		"thread-last":  {Style: StyleAlign},

		// all body
		"progn":         {Style: StyleBody},
		"ignore-errors": {Style: StyleBody},

		// quasiquote forms
		"quasiquote":       {Style: StyleBody},
		"unquote":          {Style: StyleBody},
		"unquote-splicing": {Style: StyleBody},
	})
}

// Snapshot returns a copy of the table's explicit rules, keyed by operator.
func (t *Table) Snapshot() map[string]Rule {
	if t == nil {
		return nil
	}
	m := make(map[string]Rule, len(t.rules))
	for k, v := range t.rules {
		m[k] = *v
	}
	return m
}

// RuleFor returns the rule for the given operator name, or nil when the
// table has no opinion.  Operators starting with "def" get defun-style
// indent, following the common Lisp convention for definition forms.
func (t *Table) RuleFor(name string) *Rule {
	if t == nil {
		return nil
	}
	if r, ok := t.rules[name]; ok {
		return r
	}
	if strings.HasPrefix(name, "def") {
		return &Rule{Style: StyleSpecial, HeaderArgs: 2}
	}
	return nil
}

// Resolve implements indent.Resolver.  Package-qualified operators resolve
// on the name after the final colon.  StyleAlign rules and unknown
// operators return no opinion so the engine's heuristics apply.
func (t *Table) Resolve(op string, st *partial.State, opts *indent.Options) (int, bool) {
	if idx := strings.LastIndex(op, ":"); idx >= 0 {
		op = op[idx+1:]
	}
	r := t.RuleFor(op)
	if r == nil {
		return 0, false
	}
	col := st.Col(st.Containing)
	switch r.Style {
	case StyleBody:
		return col + opts.IndentSize, true
	case StyleSpecial:
		// The element about to start on the current line is child number
		// len(Siblings); the operator is child 0.
		next := len(st.Siblings)
		if next <= r.HeaderArgs {
			return col + 2*opts.IndentSize, true
		}
		return col + opts.IndentSize, true
	default:
		return 0, false
	}
}
