// Copyright © 2025 The lispindent authors

package cmd

import (
	"fmt"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/luthersystems/lispindent/docs"
)

// docCmd represents the doc command
var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Show the indentation guide",
	Long: `Print the guide describing how lispindent decides each line's column:
the scan region, the decision order, and every alignment rule with
examples.

Examples:
  lispindent doc            Read the guide
  lispindent doc | less     Page through it`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(wordwrap.String(docs.IndentGuide, 78))
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
}
