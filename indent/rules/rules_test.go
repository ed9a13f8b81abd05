// Copyright © 2025 The lispindent authors

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/lispindent/indent"
	"github.com/luthersystems/lispindent/parser/partial"
	"github.com/luthersystems/lispindent/parser/token"
)

func stateFor(t *testing.T, text string) *partial.State {
	t.Helper()
	st, err := partial.Scan(text, 0, len(text))
	require.NoError(t, err)
	return st
}

func resolve(t *testing.T, table *Table, text string) (int, bool) {
	t.Helper()
	st := stateFor(t, text)
	opts := indent.Options{IndentSize: indent.DefaultIndentSize}
	op := st.Operator(st.Containing, token.Pos(len(text)))
	return table.Resolve(op, st, &opts)
}

func TestRuleFor(t *testing.T) {
	table := Default()
	require.NotNil(t, table.RuleFor("defun"))
	assert.Equal(t, StyleSpecial, table.RuleFor("defun").Style)
	assert.Nil(t, table.RuleFor("foo"))

	r := table.RuleFor("defwidget")
	require.NotNil(t, r, "def prefix gets defun-style indent")
	assert.Equal(t, StyleSpecial, r.Style)
	assert.Equal(t, 2, r.HeaderArgs)

	var nilTable *Table
	assert.Nil(t, nilTable.RuleFor("defun"))
}

func TestResolveStyles(t *testing.T) {
	table := Default()

	col, ok := resolve(t, table, "(progn a\n")
	require.True(t, ok)
	assert.Equal(t, 2, col, "body style indents one step")

	col, ok = resolve(t, table, "(defun\n")
	require.True(t, ok)
	assert.Equal(t, 4, col, "pending header args get double indent")

	col, ok = resolve(t, table, "(defun foo (x)\n")
	require.True(t, ok)
	assert.Equal(t, 2, col, "body after header args gets single indent")

	col, ok = resolve(t, table, "(let ((x 1))\n")
	require.True(t, ok)
	assert.Equal(t, 2, col)

	_, ok = resolve(t, table, "(thread-first x\n")
	assert.False(t, ok, "align style defers to engine heuristics")

	_, ok = resolve(t, table, "(foo x\n")
	assert.False(t, ok, "unknown operator defers")
}

func TestResolveNested(t *testing.T) {
	col, ok := resolve(t, Default(), "(foo\n  (progn a\n")
	require.True(t, ok)
	assert.Equal(t, 4, col, "body indent stacks on the delimiter column")
}

func TestResolveQualified(t *testing.T) {
	col, ok := resolve(t, Default(), "(mylib:progn a\n")
	require.True(t, ok)
	assert.Equal(t, 2, col, "package qualifier stripped before lookup")
}

func TestLoad(t *testing.T) {
	table, err := Load([]byte(`
mydef: {style: special, header_args: 1}
run: {style: body}
pipe: {style: align}
`))
	require.NoError(t, err)

	r := table.RuleFor("mydef")
	require.NotNil(t, r)
	assert.Equal(t, StyleSpecial, r.Style)
	assert.Equal(t, 1, r.HeaderArgs)
	assert.Equal(t, StyleBody, table.RuleFor("run").Style)
	assert.Equal(t, StyleAlign, table.RuleFor("pipe").Style)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]byte(`x: {style: bogus}`))
	assert.Error(t, err, "unknown style")

	_, err = Load([]byte(`x: {style: special, header_args: -1}`))
	assert.Error(t, err, "negative header args")

	_, err = Load([]byte(`x: {style: body, header_args: 2}`))
	assert.Error(t, err, "header args without special style")

	_, err = Load([]byte(`{{{`))
	assert.Error(t, err, "malformed yaml")
}

func TestMerge(t *testing.T) {
	over, err := Load([]byte(`
progn: {style: align}
mine: {style: body}
`))
	require.NoError(t, err)

	merged := Default().Merge(over)
	assert.Equal(t, StyleAlign, merged.RuleFor("progn").Style, "overlay wins")
	assert.Equal(t, StyleBody, merged.RuleFor("mine").Style)
	assert.Equal(t, StyleSpecial, merged.RuleFor("defun").Style, "defaults survive")
}

func TestSnapshot(t *testing.T) {
	snap := Default().Snapshot()
	assert.Equal(t, Rule{Style: StyleSpecial, HeaderArgs: 2}, snap["defun"])

	snap["defun"] = Rule{Style: StyleBody}
	assert.Equal(t, StyleSpecial, Default().RuleFor("defun").Style, "snapshot is a copy")

	var nilTable *Table
	assert.Nil(t, nilTable.Snapshot())
}
