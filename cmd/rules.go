// Copyright © 2025 The lispindent authors

package cmd

import (
	"fmt"
	"os"
	"sort"

	reflowindent "github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/luthersystems/lispindent/indent/rules"
)

const rulesIntro = `Per-operator rules override the default alignment heuristics for the operators they name. "align" defers to the heuristics, "body" indents every subform one level past the opening delimiter, and "special" gives N distinguished header arguments a double indent before the body. Operators starting with "def" fall back to defun-style indentation even without an explicit rule.`

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the active per-operator indent rule table",
	Long: `Print the rule table the engine will consult, including any overlay
loaded with --rules.

Examples:
  lispindent rules                       Show the default table
  lispindent rules --rules mine.yaml     Show the table with overrides`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		table, err := activeTable()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Println(reflowindent.String(wordwrap.String(rulesIntro, 72), 2))
		fmt.Println()

		snapshot := table.Snapshot()
		names := make([]string, 0, len(snapshot))
		for name := range snapshot {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			r := snapshot[name]
			if r.Style == rules.StyleSpecial {
				fmt.Printf("  %-20s %-8s %d\n", name, r.Style, r.HeaderArgs)
			} else {
				fmt.Printf("  %-20s %s\n", name, r.Style)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
