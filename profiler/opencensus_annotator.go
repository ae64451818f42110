// Copyright © 2026 The iota authors

package profiler

import (
	"context"
	"errors"

	"github.com/golang-collections/collections/stack"
	"github.com/iotalang/iota/analysis"
	"go.opencensus.io/trace"
)

var _ analysis.Profiler = &OpenCensusAnnotator{}

// OpenCensusAnnotator records spans with the opencensus tracer.
type OpenCensusAnnotator struct {
	profiler
	File           string
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       *stack.Stack
}

// NewOpenCensusAnnotator returns an annotator whose spans are children of
// the span in parentContext.
func NewOpenCensusAnnotator(parentContext context.Context, file string, opts ...Option) *OpenCensusAnnotator {
	p := &OpenCensusAnnotator{
		File:           file,
		currentContext: parentContext,
		contexts:       stack.New(),
	}
	p.profiler.applyConfigs(opts...)
	return p
}

// Enable starts recording spans.
func (p *OpenCensusAnnotator) Enable() error {
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

// Complete ends every span left open by an interrupted run.
func (p *OpenCensusAnnotator) Complete() error {
	for p.contexts.Len() > 0 {
		p.end()
	}
	return nil
}

// Start opens a span and returns the function that closes it.
func (p *OpenCensusAnnotator) Start(name string) func() {
	if p.skipTrace(name) {
		return func() {}
	}
	p.contexts.Push(p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, p.label(name))
	attrs := []trace.Attribute{trace.StringAttribute("file", p.File)}
	if fn := funcName(name); fn != "" {
		attrs = append(attrs, trace.StringAttribute("function", fn))
	}
	p.currentSpan.AddAttributes(attrs...)
	depth := p.contexts.Len()
	return func() {
		// A stop may arrive after Complete has already unwound the stack.
		if p.contexts.Len() == depth {
			p.end()
		}
	}
}

func (p *OpenCensusAnnotator) end() {
	p.currentSpan.End()
	p.currentContext = p.contexts.Pop().(context.Context)
	p.currentSpan = trace.FromContext(p.currentContext)
}
