// Copyright © 2026 The iota authors

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iotalang/iota/diagnostic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exitError ends the process with a status and no further message.  The
// command has already reported what went wrong.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// errProblems is returned when a command reported errors or warnings.
var errProblems = &exitError{code: 1}

// app holds the configuration shared by the commands of one command tree.
type app struct {
	cfgFile string
	v       *viper.Viper
	log     *logrus.Entry
}

// NewRootCommand builds the iotac command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "iotac",
		Short: "iotac checks iota programs",
		Long: `iotac is the semantic checker for iota, a small statically typed language
with int, float and bool values, functions, and block scoping.

A program passes when every name resolves, every expression is well typed,
and every function that returns a value does so on every path.  iotac
reports the first violation it finds.

Getting started:
  iotac check file.iota        Check a source file
  iotac lint file.iota         Check and report likely mistakes
  iotac dump file.iota         Print the type-annotated syntax tree
  iotac explain E0003          Describe an error kind
  iotac repl                   Check declarations interactively
  iotac lsp                    Start the language server

Configuration is read from $HOME/.iotac.yaml (or --config) and from
IOTAC_* environment variables, e.g. IOTAC_LOG_LEVEL=debug or
IOTAC_LINT_CHECKS=shadow,self-assign.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.iotac.yaml)")
	flags.String("color", "auto", `Control colored output: "auto", "always", or "never".`)
	flags.String("log-level", "warning", "Log level: error, warning, info, debug or trace.")
	flags.String("trace", "none", `Record analysis spans: "none", "otel", or "opencensus".`)
	for _, name := range []string{"color", "log-level", "trace"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		a.checkCommand(),
		a.lintCommand(),
		a.dumpCommand(),
		a.explainCommand(),
		a.replCommand(),
		a.lspCommand(),
	)
	return root
}

// Execute runs the command line and exits on failure.  This is called by
// main.main().
func Execute() {
	err := NewRootCommand().Execute()
	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintln(os.Stderr, "iotac:", err)
	os.Exit(2)
}

// initConfig reads the config file and environment, then builds the
// logger.  A missing default config file is not an error.
func (a *app) initConfig(logOut io.Writer) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".iotac")
	}
	a.v.SetEnvPrefix("IOTAC")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	readErr := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if readErr != nil && (a.cfgFile != "" || !errors.As(readErr, &notFound)) {
		return fmt.Errorf("reading config: %w", readErr)
	}

	log, err := newLogger(logOut, a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.log = log
	if readErr == nil {
		a.log.WithField("file", a.v.ConfigFileUsed()).Debug("using config file")
	}
	return nil
}

func newLogger(w io.Writer, level string) (*logrus.Entry, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logrus.NewEntry(logger), nil
}

func (a *app) colorMode() (diagnostic.ColorMode, error) {
	return diagnostic.ParseColorMode(a.v.GetString("color"))
}
