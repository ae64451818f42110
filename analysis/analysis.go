// Copyright © 2026 The iota authors

// Package analysis implements semantic analysis for iota programs.
//
// The analyzer resolves every identifier against a chain of lexical scopes,
// assigns a type to every expression, and enforces the declaration, typing,
// and control-flow rules of the language.  Analysis is fail-fast: the walk
// stops at the first violation and reports it as an *Error.  On success the
// tree's expression nodes carry their resolved types.
//
// A tree must be analyzed at most once.
package analysis

import (
	"io"

	"github.com/iotalang/iota/ast"
	"github.com/sirupsen/logrus"
)

// Config controls the behavior of the analyzer.
type Config struct {
	// Logger receives debug records for pass boundaries and function
	// analysis.  A nil Logger discards them.
	Logger *logrus.Entry

	// Profiler, when non-nil, is notified around the whole run and around
	// each analyzed function.
	Profiler Profiler
}

// Profiler observes the analysis of named regions.  Start is called when a
// region begins and the returned function when it ends.
type Profiler interface {
	Start(name string) (stop func())
}

type nopProfiler struct{}

func (nopProfiler) Start(string) func() { return func() {} }

// Result holds the output of a successful analysis.
type Result struct {
	// Globals is the program scope.  Its Children are the scopes of every
	// function and nested block, in source order.
	Globals *Scope

	// Symbols lists every declared symbol in declaration order.
	Symbols []*Symbol

	// References lists every resolved use of a symbol in walk order.
	References []*Reference
}

// Reference is a resolved use of a symbol.
type Reference struct {
	Name   string
	Pos    ast.Pos
	Symbol *Symbol
	Assign bool // target of an assignment rather than a read
}

// Analyze performs semantic analysis of prog.  It returns the first semantic
// error found, which is always an *Error.
func Analyze(prog *ast.Program, cfg *Config) (*Result, error) {
	items := make([]ast.Item, len(prog.Decls))
	for i, d := range prog.Decls {
		items[i] = d
	}
	return AnalyzeItems(items, cfg)
}

// AnalyzeItems analyzes items as the top level of a program that also admits
// statements, the form typed at the interactive prompt.  Top-level functions
// are registered before any item is analyzed, exactly as in Analyze.
// Statements run in the global scope outside of any function, so a return
// statement among items is a ReturnOutsideFunction error.
func AnalyzeItems(items []ast.Item, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	a := newAnalyzer(cfg)
	if err := a.run(items); err != nil {
		a.log.WithField("error", err.Error()).Debug("analysis failed")
		return nil, err
	}
	a.log.WithField("symbols", len(a.result.Symbols)).Debug("analysis complete")
	return a.result, nil
}

func newAnalyzer(cfg *Config) *analyzer {
	log := cfg.Logger
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		log = logrus.NewEntry(logger)
	}
	prof := cfg.Profiler
	if prof == nil {
		prof = nopProfiler{}
	}
	root := NewScope(ScopeGlobal, nil, nil)
	return &analyzer{
		log:    log,
		prof:   prof,
		result: &Result{Globals: root},
		st:     state{scope: root},
	}
}
