// Copyright © 2025 The lispindent authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/luthersystems/lispindent/classify"
	"github.com/luthersystems/lispindent/parser/token"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [files...]",
	Short: "Print source files with symbol highlighting",
	Long: `Print source files to stdout with each symbol colored by its
classification: special forms, macros, primitive and library functions,
keywords, strings, comments, and numbers.

Examples:
  lispindent highlight file.lisp
  lispindent highlight src/...`,
	Run: func(_ *cobra.Command, args []string) {
		expanded, err := expandArgs(args, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cls := classify.New(classify.Builtins())
		for _, path := range expanded {
			src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			highlight(string(src), cls)
		}
	},
}

var (
	commentColor = color.New(color.FgGreen)
	stringColor  = color.New(color.FgYellow)
	numberColor  = color.New(color.FgCyan)
	keywordColor = color.New(color.FgBlue, color.Bold)
	macroColor   = color.New(color.FgMagenta)
	funcColor    = color.New(color.FgCyan, color.Bold)
)

// highlight writes content to stdout with per-token coloring.  The walk
// mirrors the semantic token lexer in the LSP server.
func highlight(content string, cls *classify.Classifier) {
	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == ';':
			start := i
			for i < len(content) && content[i] != '\n' {
				i++
			}
			commentColor.Print(content[start:i])

		case c == '"':
			start := i
			i = stringEnd(content, i)
			stringColor.Print(content[start:i])

		case token.IsOpen(c) || token.IsClose(c) || token.IsSigil(c) || token.IsSpace(c):
			fmt.Print(string(c))
			i++

		default:
			start := i
			for i < len(content) && !token.IsAtomTerminator(content[i]) {
				i++
			}
			printAtom(content[start:i], cls)
		}
	}
}

func printAtom(name string, cls *classify.Classifier) {
	switch {
	case strings.HasPrefix(name, string(token.Marker)):
		keywordColor.Print(name)
	case token.IsNumberLiteral(name):
		numberColor.Print(name)
	default:
		switch cls.Classify(name) {
		case classify.SpecialForm:
			keywordColor.Print(name)
		case classify.Macro:
			macroColor.Print(name)
		case classify.FunctionPrimitive, classify.FunctionLibrary:
			funcColor.Print(name)
		default:
			fmt.Print(name)
		}
	}
}

// stringEnd returns the offset one past the closing quote, or the end of
// the content when unterminated.
func stringEnd(content string, start int) int {
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

func init() {
	rootCmd.AddCommand(highlightCmd)
}
