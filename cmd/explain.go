// Copyright © 2026 The iota authors

package cmd

import (
	"github.com/iotalang/iota/explain"
	"github.com/spf13/cobra"
)

func (a *app) explainCommand() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "explain [kind|code]",
		Short: "Describe the errors iotac reports",
		Long: `Print a description and an example of an error kind.  The kind may be
given by code or by name.  With no argument, lists every kind.

Examples:
  iotac explain                       # List all error kinds
  iotac explain E0003                 # Describe missing-return
  iotac explain missing-return        # Same as above`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return explain.FormatIndex(cmd.OutOrStdout())
			}
			e, err := explain.Lookup(args[0])
			if err != nil {
				return err
			}
			a.log.WithField("kind", e.Name).Debug("explain")
			return explain.Format(cmd.OutOrStdout(), e, width)
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "Wrap text to this many columns.")
	return cmd
}
