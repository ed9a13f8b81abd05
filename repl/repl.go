// Copyright © 2025 The lispindent authors

// Package repl implements an interactive indentation explorer.  Each line
// typed is echoed back at the column the engine computes for it, which makes
// the explorer a convenient way to probe rule tables and heuristics without
// wiring up an editor.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"

	"github.com/luthersystems/lispindent/mode"
	"github.com/luthersystems/lispindent/parser/partial"
)

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures the explorer.
type Option func(*config)

// WithStdin allows overriding the input to the explorer.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the explorer.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// Run reads lines until EOF, echoing each at its computed indentation.  The
// accumulated form resets whenever nesting returns to the top level, so the
// explorer never scans more than the form being typed.
func Run(prompt string, provider mode.IndentProvider, opts ...Option) error {
	cfg := newConfig(opts...)
	cont := strings.Repeat(" ", len(prompt))

	rlCfg := &readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyPath(),
		HistorySearchFold: true,
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	var out io.Writer = os.Stderr
	if cfg.stderr != nil {
		rlCfg.Stdout = cfg.stderr
		rlCfg.Stderr = cfg.stderr
		out = cfg.stderr
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	text := ""
	for {
		line, err := rl.ReadLine()
		if err == readline.ErrInterrupt {
			text = ""
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			return nil
		}

		text += Echo(text, line, provider, out)

		if depth(text) == 0 {
			text = ""
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
	}
}

// Echo computes the indentation of line appended to text, prints the
// reindented line to out, and returns the text to append to the buffer.
func Echo(text, line string, provider mode.IndentProvider, out io.Writer) string {
	ls := len(text)
	probe := text + line + "\n"
	trimmed := strings.TrimLeft(line, " \t")

	r := provider.Indent(probe, ls, partial.TopLevelStart(probe, ls))
	indented := line
	if !r.Unchanged && trimmed != "" {
		indented = strings.Repeat(" ", r.Column) + trimmed
	}
	fmt.Fprintln(out, indented)
	return indented + "\n"
}

// depth returns the nesting level at the end of text, or zero when the text
// does not scan.
func depth(text string) int {
	st, err := partial.Scan(text, partial.TopLevelStart(text, len(text)), len(text))
	if err != nil {
		return 0
	}
	return st.Depth
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lispindent_history")
}
