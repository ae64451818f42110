// Copyright © 2026 The iota authors

package cmd

import (
	"fmt"
	"strings"

	"github.com/iotalang/iota/diagnostic"
	"github.com/iotalang/iota/lint"
	"github.com/spf13/cobra"
)

func (a *app) lintCommand() *cobra.Command {
	var (
		jsonOut  bool
		plain    bool
		checks   []string
		listAll  bool
		excludes []string
	)
	cmd := &cobra.Command{
		Use:   "lint [flags] [files...]",
		Short: "Run static analysis checks on iota source files",
		Long: `Run static analysis checks on iota source files.

The linter reports likely mistakes in programs that check cleanly, similar
to "go vet" for Go.  A file with a syntax or semantic error is reported as
by "iotac check" and not linted.  With no files, reads from stdin.

Exit codes:
  0  No problems found
  1  One or more problems were reported
  2  Bad invocation (invalid flags, unreadable files)

To suppress a specific diagnostic, add a comment on the same line:
  x = x; // nolint:self-assign

To suppress all checks on a line:
  x = x; // nolint

The checks to run may also be set with the lint.checks config key or the
IOTAC_LINT_CHECKS environment variable.

Available checks (use --checks to select specific ones):
` + lint.AnalyzerDoc() + `
Examples:
  iotac lint file.iota                        # Lint a single file
  iotac lint ./...                            # Lint every .iota file below .
  iotac lint --json file.iota                 # Output diagnostics as JSON
  iotac lint --checks=shadow file.iota        # Run only specific checks
  iotac lint --list                           # List available checks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listAll {
				for _, name := range lint.AnalyzerNames() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			names := checks
			if !cmd.Flags().Changed("checks") {
				names = a.lintChecks()
			}
			analyzers, err := lint.Select(names)
			if err != nil {
				return err
			}
			l := &lint.Linter{Analyzers: analyzers}

			inputs, err := readInputs(cmd, args, excludes)
			if err != nil {
				return err
			}
			r, err := a.newRenderer(inputs)
			if err != nil {
				return err
			}
			tr, err := startTracing(cmd.Context(), a.v.GetString("trace"), a.log)
			if err != nil {
				return err
			}
			defer tr.Close()

			failed := 0
			var all []lint.Diagnostic
			for _, in := range inputs {
				cfg, done := a.analysisConfig(in, tr)
				diags, err := l.LintFile(in.src, in.name, cfg)
				done()
				if err != nil {
					failed++
					renderError(cmd.ErrOrStderr(), r, in, err)
					continue
				}
				all = append(all, diags...)
			}

			switch {
			case jsonOut:
				if err := lint.FormatJSON(cmd.OutOrStdout(), all); err != nil {
					return err
				}
			case plain:
				if err := lint.FormatText(cmd.OutOrStdout(), all); err != nil {
					return err
				}
			default:
				ds := make([]diagnostic.Diagnostic, len(all))
				for i, d := range all {
					ds[i] = lintDiagToDiagnostic(d)
				}
				if err := r.RenderAll(cmd.ErrOrStderr(), ds); err != nil {
					return err
				}
			}
			if failed > 0 || len(all) > 0 {
				return errProblems
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false,
		"Output diagnostics as JSON.")
	cmd.Flags().BoolVar(&plain, "plain", false,
		"Output diagnostics one per line, go vet style.")
	cmd.Flags().StringSliceVar(&checks, "checks", nil,
		"Comma-separated list of checks to run (default: all).")
	cmd.Flags().BoolVar(&listAll, "list", false,
		"List available checks and exit.")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	return cmd
}

// lintChecks returns the check names of the lint.checks setting.  The
// environment variable form is a comma-separated string.
func (a *app) lintChecks() []string {
	var names []string
	for _, n := range a.v.GetStringSlice("lint.checks") {
		for _, part := range strings.Split(n, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
	}
	return names
}
