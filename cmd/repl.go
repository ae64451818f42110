// Copyright © 2026 The iota authors

package cmd

import (
	"github.com/iotalang/iota/repl"
	"github.com/spf13/cobra"
)

func (a *app) replCommand() *cobra.Command {
	var noHistory bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Check iota declarations interactively",
		Long: `Start an interactive session that checks iota code as it is typed.

Each entry is checked together with everything accepted before it.  An
entry with an error is reported and discarded; the session keeps what came
before.  An unfinished entry continues on the next line.  Line editing and
history (~/.iota_history) are supported via readline.  Use Ctrl-D or :quit
to exit, Ctrl-C to abandon an unfinished entry.

Example session:
  iota> func sq(x: int): int { return x * x; }
  func sq(int): int
  iota> var y: float = sq(3);
  var y: float
  iota> sq(true, 1);
  error[E0017]: ...
  iota> :symbols`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := a.colorMode()
			if err != nil {
				return err
			}
			opts := []repl.Option{
				repl.WithLogger(a.log),
				repl.WithColor(mode),
			}
			if noHistory {
				opts = append(opts, repl.WithoutHistory())
			}
			return repl.Run("iota> ", "  ... ", opts...)
		},
	}
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not read or write the history file.")
	return cmd
}
