// Copyright © 2026 The iota authors

package cmd

import (
	"github.com/iotalang/iota/ast"
	"github.com/spf13/cobra"
)

func (a *app) dumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the type-annotated syntax tree of a program",
		Long: `Check a program and print its syntax tree.  Every expression is followed
by the type analysis assigned to it.  With no file, reads from stdin.

Example:
  $ echo 'var x: float = 1 + 2;' | iotac dump
  Program
    VarDecl var x: float
      Binary + : int
        Int 1 : int
        Int 2 : int`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd, args, nil)
			if err != nil {
				return err
			}
			in := inputs[0]
			tr, err := startTracing(cmd.Context(), a.v.GetString("trace"), a.log)
			if err != nil {
				return err
			}
			defer tr.Close()

			prog, _, err := a.analyze(in, tr)
			if err != nil {
				r, rerr := a.newRenderer(inputs)
				if rerr != nil {
					return rerr
				}
				renderError(cmd.ErrOrStderr(), r, in, err)
				return errProblems
			}
			return ast.Fprint(cmd.OutOrStdout(), prog)
		},
	}
}
