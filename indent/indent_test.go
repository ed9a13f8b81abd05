// Copyright © 2025 The lispindent authors

package indent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/lispindent/parser/partial"
)

type indentTest struct {
	name      string
	input     string // cursor sits at the start of the final line
	want      int
	unchanged bool
	opts      Options
	resolver  Resolver
}

func runIndentTests(t *testing.T, tests []indentTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := New(tt.opts, tt.resolver)
			require.NoError(t, err, "New failed")

			cursor := strings.LastIndexByte(tt.input, '\n') + 1
			topLevel := partial.TopLevelStart(tt.input, cursor)

			r := eng.Indent(tt.input, cursor, topLevel)
			if tt.unchanged {
				assert.True(t, r.Unchanged, "expected unchanged sentinel, got column %d", r.Column)
				return
			}
			require.False(t, r.Unchanged, "unexpected unchanged sentinel")
			assert.Equal(t, tt.want, r.Column, "column mismatch")

			// Determinism: identical inputs always yield the identical result.
			r2 := eng.Indent(tt.input, cursor, topLevel)
			assert.Equal(t, r, r2, "result not deterministic")
		})
	}
}

type resolverFunc func(op string, st *partial.State, opts *Options) (int, bool)

func (f resolverFunc) Resolve(op string, st *partial.State, opts *Options) (int, bool) {
	return f(op, st, opts)
}

func TestIndentBaseCases(t *testing.T) {
	runIndentTests(t, []indentTest{
		{
			name:  "just-opened list",
			input: "(\n",
			want:  1,
		},
		{
			name:  "degenerate single-element list",
			input: "(foo\n)",
			want:  1,
		},
		{
			name:  "nested just-opened list",
			input: "(foo (\n",
			want:  6,
		},
		{
			name:  "top level",
			input: "(foo bar)\n",
			want:  0,
		},
		{
			name:  "empty input",
			input: "\n",
			want:  0,
		},
	})
}

func TestIndentArgumentAlignment(t *testing.T) {
	runIndentTests(t, []indentTest{
		{
			name:  "align under first argument",
			input: "(foo bar\n)",
			want:  5,
		},
		{
			name:  "align under first argument with extra elements",
			input: "(foo bar baz\n)",
			want:  5,
		},
		{
			name:  "indented containing list",
			input: "(a\n  (foo bar\n)",
			want:  7,
		},
		{
			name:  "nested head sub-list",
			input: "((lambda (x) x) 5\n)",
			want:  1,
		},
	})
}

func TestIndentSiblingFallback(t *testing.T) {
	runIndentTests(t, []indentTest{
		{
			name:  "align with previous argument line",
			input: "(foo bar\n     baz\n)",
			want:  5,
		},
		{
			name:  "misaligned previous line wins",
			input: "(foo bar\n  baz\n)",
			want:  2,
		},
		{
			name:  "quoting sigils stripped from sibling column",
			input: "(foo bar\n  'baz\n)",
			want:  3,
		},
	})
}

func TestIndentQuoting(t *testing.T) {
	runIndentTests(t, []indentTest{
		{
			name:  "quoted list aligns under head",
			input: "'(a\n)",
			want:  2,
		},
		{
			name:  "quoted list with second element still aligns under head",
			input: "'(a b\n)",
			want:  2,
		},
		{
			name:  "quasiquoted list aligns under head",
			input: "`(a b\n)",
			want:  2,
		},
		{
			name:  "quoting propagates through ancestors",
			input: "'(outer (a b\n)",
			want:  9,
		},
		{
			name:  "explicit quote form",
			input: "(quote (a b\n)",
			want:  8,
		},
		{
			name:  "unquote re-enters evaluated context",
			input: "`(a ,(f b\n)",
			want:  8,
		},
		{
			name:  "unquoted bracket list uses argument alignment",
			input: "(foo [a b\n)",
			want:  8,
		},
	})
}

func TestIndentPlist(t *testing.T) {
	plist := Options{KeywordPlistHeuristic: true}
	runIndentTests(t, []indentTest{
		{
			name:  "plist start aligns under first marker",
			input: "(:a 1\n)",
			opts:  plist,
			want:  1,
		},
		{
			name:  "continuation of a multi-line plist",
			input: "(:a 1\n :b 2\n )",
			opts:  plist,
			want:  1,
		},
		{
			name:  "marker-led line aligns to earliest pair",
			input: "(foo :a 1\n:b 2\n:c)",
			opts:  plist,
			want:  5,
		},
		{
			name:  "marker run broken by non-pair element",
			input: "(foo bar :a 1\n:b 2\n:c)",
			opts:  plist,
			want:  9,
		},
		{
			name:  "heuristic disabled falls back to argument alignment",
			input: "(:a 1\n)",
			want:  4,
		},
	})
}

func TestIndentFixedOffset(t *testing.T) {
	two := 2
	runIndentTests(t, []indentTest{
		{
			name:  "fixed offset bypasses heuristics",
			input: "(foo bar\n)",
			opts:  Options{FixedOffset: &two},
			want:  2,
		},
		{
			name:  "fixed offset from nested containing",
			input: "(a\n  (foo bar\n)",
			opts:  Options{FixedOffset: &two},
			want:  4,
		},
	})
}

func TestIndentStringImmunity(t *testing.T) {
	runIndentTests(t, []indentTest{
		{
			name:      "inside unterminated string",
			input:     "(foo \"abc\n",
			unchanged: true,
		},
		{
			name:      "inside raw string",
			input:     "(foo \"\"\"abc\n",
			unchanged: true,
		},
		{
			name:  "after terminated string",
			input: "(foo \"abc\"\n)",
			want:  5,
		},
	})
}

func TestIndentMalformedInput(t *testing.T) {
	runIndentTests(t, []indentTest{
		{
			name:      "stray closing delimiter",
			input:     ")\nx\n",
			unchanged: true,
		},
		{
			name:      "mismatched bracket pair",
			input:     "(foo]\nx\n",
			unchanged: true,
		},
	})
}

func TestIndentResolverPrecedence(t *testing.T) {
	always := resolverFunc(func(op string, st *partial.State, opts *Options) (int, bool) {
		if op == "myop" {
			return 7, true
		}
		return 0, false
	})
	panicky := resolverFunc(func(op string, st *partial.State, opts *Options) (int, bool) {
		panic("resolver bug")
	})
	negative := resolverFunc(func(op string, st *partial.State, opts *Options) (int, bool) {
		return -3, true
	})
	runIndentTests(t, []indentTest{
		{
			name:     "resolver column wins over argument alignment",
			input:    "(myop arg\n)",
			resolver: always,
			want:     7,
		},
		{
			name:     "resolver ignores unknown operator",
			input:    "(other arg\n)",
			resolver: always,
			want:     7,
		},
		{
			name:     "panicking resolver falls through to heuristics",
			input:    "(foo bar\n)",
			resolver: panicky,
			want:     5,
		},
		{
			name:     "negative resolver column is no opinion",
			input:    "(foo bar\n)",
			resolver: negative,
			want:     5,
		},
	})
}

func TestIndentComments(t *testing.T) {
	runIndentTests(t, []indentTest{
		{
			name:  "after comment line aligns normally",
			input: "(foo bar ; trailing\n)",
			want:  5,
		},
	})

	t.Run("cursor inside comment keeps current leading width", func(t *testing.T) {
		eng, err := New(Options{}, nil)
		require.NoError(t, err)

		text := "(foo\n   ; a comment\n)"
		cursor := strings.Index(text, "comment")
		r := eng.Indent(text, cursor, partial.TopLevelStart(text, cursor))
		require.False(t, r.Unchanged)
		assert.Equal(t, 3, r.Column, "comment body lines are not reindented")
	})
}

func TestNewValidation(t *testing.T) {
	neg := -1
	_, err := New(Options{IndentSize: -1}, nil)
	assert.Error(t, err, "negative indent size must be rejected")

	_, err = New(Options{FixedOffset: &neg}, nil)
	assert.Error(t, err, "negative fixed offset must be rejected")

	eng, err := New(Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultIndentSize, eng.Options().IndentSize, "zero indent size defaults")
}

func TestIndentInvalidRange(t *testing.T) {
	eng, err := New(Options{}, nil)
	require.NoError(t, err)
	assert.True(t, eng.Indent("(foo)", 99, 0).Unchanged, "cursor past end")
	assert.True(t, eng.Indent("(foo)", 1, 3).Unchanged, "cursor before top level")
}
