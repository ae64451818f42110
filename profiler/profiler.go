// Copyright © 2026 The iota authors

// Package profiler records analysis runs as trace spans.  Each annotator
// implements analysis.Profiler: the analyzer opens a span named "analyze"
// for the whole run and one named "func <name>" for every function body.
package profiler

import (
	"errors"
	"strings"

	"github.com/iotalang/iota/analysis"
)

// SkipFilter reports whether the span with the given name is dropped.
type SkipFilter func(name string) bool

// Labeler returns the span label for name.  An empty label keeps name.
type Labeler func(name string) string

// Option configures an annotator.
type Option func(*profiler)

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skip SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skip
	}
}

// WithLabeler sets the function that names spans.
func WithLabeler(label Labeler) Option {
	return func(p *profiler) {
		p.labeler = label
	}
}

// FunctionsOnly drops the span for the whole run and keeps one span per
// function body.
func FunctionsOnly() Option {
	return WithSkipFilter(func(name string) bool {
		return !strings.HasPrefix(name, "func ")
	})
}

// profiler holds the state shared by the annotators.
type profiler struct {
	enabled    bool
	skipFilter SkipFilter
	labeler    Labeler
}

var _ analysis.Profiler = &profiler{}

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

// IsEnabled reports whether spans are being recorded.
func (p *profiler) IsEnabled() bool {
	return p.enabled
}

// Enable starts recording spans.
func (p *profiler) Enable() error {
	if p.enabled {
		return errors.New("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Start(string) func() {
	return func() {}
}

func (p *profiler) skipTrace(name string) bool {
	return !p.enabled || p.skipFilter != nil && p.skipFilter(name)
}

func (p *profiler) label(name string) string {
	if p.labeler == nil {
		return name
	}
	if l := p.labeler(name); l != "" {
		return l
	}
	return name
}

// funcName returns the function name of a "func <name>" span and "" for
// other spans.
func funcName(name string) string {
	if fn, ok := strings.CutPrefix(name, "func "); ok {
		return fn
	}
	return ""
}
