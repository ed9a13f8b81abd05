// Copyright © 2025 The lispindent authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luthersystems/lispindent/indent"
	"github.com/luthersystems/lispindent/indent/rules"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lispindent",
	Short: "Context-aware indentation for Lisp source",
	Long: `lispindent computes the correct indentation column for lines of
parenthesized, prefix-notation source code from their surrounding syntax.

Getting started:
  lispindent fmt file.lisp         Reindent a source file to stdout
  lispindent fmt -w file.lisp      Reindent in place
  lispindent fmt -w --watch *.lisp Reindent whenever a file changes
  lispindent repl                  Explore indentation interactively
  lispindent rules                 Show the active per-operator rule table
  lispindent highlight file.lisp   Print a file with symbol highlighting
  lispindent lsp                   Start the language server

How alignment is decided:
  The engine scans from the start of the enclosing top-level form to the
  line being indented and aligns the line under a prior expression: the
  first argument for ordinary calls, the list head for quoted data and
  property lists, or the column a per-operator rule dictates.  Rules for
  known operators (defun, let, when, ...) take priority and may be
  extended with a YAML table via --rules.

Configuration is read from ~/.lispindent.yaml and the environment; every
persistent flag below can also be set there.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lispindent.yaml)")
	rootCmd.PersistentFlags().Int("indent-size", indent.DefaultIndentSize,
		"Spaces per body-indent level for per-operator rules.")
	rootCmd.PersistentFlags().Bool("plist", true,
		"Treat lists opening on a ':'-prefixed element as property lists.")
	rootCmd.PersistentFlags().Int("fixed-offset", -1,
		"Indent every line at the containing delimiter column plus this offset, bypassing heuristics (-1 disables).")
	rootCmd.PersistentFlags().String("rules", "",
		"YAML file of per-operator indent rules overlaying the defaults.")

	for _, name := range []string{"indent-size", "plist", "fixed-offset", "rules"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".lispindent" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".lispindent")
	}

	viper.AutomaticEnv() // read in environment variables that match

	_ = viper.ReadInConfig()
}

// activeTable returns the default rule table overlaid with any configured
// rule file.
func activeTable() (*rules.Table, error) {
	table := rules.Default()
	if path := viper.GetString("rules"); path != "" {
		custom, err := rules.LoadFile(path)
		if err != nil {
			return nil, err
		}
		table = table.Merge(custom)
	}
	return table, nil
}

// newEngine builds the engine from the active configuration.  Option
// validation happens here, once, before any per-line work begins.
func newEngine() (*indent.Engine, error) {
	opts := indent.Options{
		KeywordPlistHeuristic: viper.GetBool("plist"),
		IndentSize:            viper.GetInt("indent-size"),
	}
	if off := viper.GetInt("fixed-offset"); off >= 0 {
		opts.FixedOffset = &off
	}
	table, err := activeTable()
	if err != nil {
		return nil, err
	}
	return indent.New(opts, table)
}
