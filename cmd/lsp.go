// Copyright © 2025 The lispindent authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/luthersystems/lispindent/lsp"
	"github.com/luthersystems/lispindent/mode"
	"github.com/luthersystems/lispindent/tracing"
)

var (
	lspStdio bool
	lspPort  int
	lspTrace bool
)

var lspCmd = &cobra.Command{
	Use:   "lsp [flags]",
	Short: "Start the Language Server Protocol server",
	Long: `Start an LSP server that indents lines as they are typed.

The server answers textDocument/onTypeFormatting on newline with the
engine's column for the new line, reindents selections through
textDocument/rangeFormatting, and highlights symbols through semantic
tokens.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  lispindent lsp                     Start with stdio transport
  lispindent lsp --port 7998         Start with TCP on port 7998`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		eng, err := newEngine()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		var provider mode.IndentProvider = eng
		if lspTrace {
			provider = tracing.NewProvider(eng)
		}

		srv, err := lsp.New(lsp.WithProvider(provider))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if !lspStdio && lspPort > 0 {
			addr := fmt.Sprintf("localhost:%d", lspPort)
			log.Printf("lispindent LSP server listening on %s", addr)
			if err := srv.RunTCP(addr); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		} else {
			if err := srv.RunStdio(); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(lspCmd)

	lspCmd.Flags().BoolVar(&lspStdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	lspCmd.Flags().IntVar(&lspPort, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
	lspCmd.Flags().BoolVar(&lspTrace, "trace", false,
		"Record an OpenTelemetry span per indentation query")
}
