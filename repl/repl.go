// Copyright © 2026 The iota authors

// Package repl implements an interactive shell that type checks iota
// declarations and statements as they are entered.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ergochat/readline"
	"github.com/iotalang/iota/diagnostic"
	"github.com/sirupsen/logrus"
)

type config struct {
	stdin  io.ReadCloser
	stderr io.Writer
	log    *logrus.Entry
	color  diagnostic.ColorMode
	noHist bool
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures the shell.
type Option func(*config)

// WithStdin overrides the input to the shell.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr overrides the output of the shell.
func WithStderr(stderr io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithLogger sets the logger passed to the analyzer.
func WithLogger(log *logrus.Entry) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithColor sets the color mode for diagnostics.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithoutHistory disables the history file.
func WithoutHistory() Option {
	return func(c *config) {
		c.noHist = true
	}
}

// Run reads lines until end of input or :quit, checking each complete
// entry.  cont is the prompt shown while an entry is incomplete.
func Run(prompt, cont string, opts ...Option) error {
	cfg := newConfig(opts...)
	out := cfg.stderr
	if out == nil {
		out = os.Stderr
	}
	session := NewSession(cfg.log, cfg.color)

	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{session: session},
	}
	if !cfg.noHist {
		rlCfg.HistoryFile = historyPath()
		ensureHistoryFilePermissions(rlCfg.HistoryFile)
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	for {
		if session.Pending() {
			rl.SetPrompt(cont)
		} else {
			rl.SetPrompt(prompt)
		}
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			session.Cancel()
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("repl: %w", err)
		}
		if err := session.Eval(out, line); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("repl: %w", err)
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".iota_history")
}

// ensureHistoryFilePermissions creates the history file if needed and
// restricts it to the owner.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // path is under the user's home
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}
