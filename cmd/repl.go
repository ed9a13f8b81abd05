// Copyright © 2025 The lispindent authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luthersystems/lispindent/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Explore indentation interactively",
	Long: `Read lines from the terminal and echo each at its computed
indentation.  The prompt switches to a continuation prompt while a form
is still open, and the buffer resets when nesting returns to the top
level.

Examples:
  lispindent repl
  lispindent repl --rules mine.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		eng, err := newEngine()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := repl.Run("indent> ", eng); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
