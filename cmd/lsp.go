// Copyright © 2026 The iota authors

package cmd

import (
	"fmt"

	"github.com/iotalang/iota/lint"
	"github.com/iotalang/iota/lsp"
	"github.com/spf13/cobra"
)

func (a *app) lspCommand() *cobra.Command {
	var (
		stdio bool
		port  int
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the iota Language Server Protocol server",
		Long: `Start an LSP server for iota source files.

The language server provides diagnostics (errors from analysis and
warnings from the lint checks selected by lint.checks), hover,
go-to-definition, find references, completion and document symbols.
Logs are written to stderr.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  iotac lsp                           Start with stdio transport
  iotac lsp --port 7998               Start with TCP on port 7998

Editor configuration (VS Code):
  Install a generic LSP client extension and configure it to run
  "iotac lsp --stdio" for .iota files.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			analyzers, err := lint.Select(a.lintChecks())
			if err != nil {
				return err
			}
			srv := lsp.New(
				lsp.WithLogger(a.log.WithField("component", "lsp")),
				lsp.WithAnalyzers(analyzers),
			)
			if !stdio && port > 0 {
				err = srv.RunTCP(fmt.Sprintf("localhost:%d", port))
			} else {
				err = srv.RunStdio()
			}
			if err != nil {
				return fmt.Errorf("lsp server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
	return cmd
}
