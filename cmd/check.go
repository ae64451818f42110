// Copyright © 2026 The iota authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) checkCommand() *cobra.Command {
	var (
		excludes []string
		verbose  bool
	)
	cmd := &cobra.Command{
		Use:   "check [flags] [files...]",
		Short: "Check iota source files for semantic errors",
		Long: `Parse and analyze iota source files.

Each file is checked on its own and only the first error in a file is
reported.  With no files, reads from stdin.

Exit codes:
  0  Every file passed
  1  One or more files have an error
  2  Bad invocation (invalid flags, unreadable files)

Examples:
  iotac check file.iota                    # Check a single file
  iotac check ./...                        # Check every .iota file below .
  iotac check --exclude=testdata ./...     # Skip a directory
  iotac check --trace=otel file.iota       # Log a span per analyzed function`,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			for _, in := range inputs {
				if _, _, err := a.analyze(in, tr); err != nil {
					failed++
					renderError(cmd.ErrOrStderr(), r, in, err)
					continue
				}
				if verbose {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", in.name)
				}
			}
			a.log.WithField("files", len(inputs)).WithField("failed", failed).Debug("check complete")
			if failed > 0 {
				return errProblems
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Print the name of every file that passes.")
	return cmd
}
