// Copyright © 2026 The iota authors

package profiler

import (
	"context"
	"errors"

	"github.com/iotalang/iota/analysis"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
const ContextOpenTelemetryTracerKey contextKey = "otelParentTracer"

var _ analysis.Profiler = &OpenTelemetryAnnotator{}

// OpenTelemetryAnnotator records spans with the global otel tracer provider.
type OpenTelemetryAnnotator struct {
	profiler
	File           string
	rootContext    context.Context
	currentContext context.Context
	currentSpan    trace.Span
}

// NewOpenTelemetryAnnotator returns an annotator whose spans are children of
// the span in parentContext.  file is attached to every span.
func NewOpenTelemetryAnnotator(parentContext context.Context, file string, opts ...Option) *OpenTelemetryAnnotator {
	p := &OpenTelemetryAnnotator{
		File:           file,
		rootContext:    parentContext,
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

// Enable starts recording spans.
func (p *OpenTelemetryAnnotator) Enable() error {
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opentelemetry")
	}
	return p.profiler.Enable()
}

// Complete ends the innermost span left open by an interrupted run.
func (p *OpenTelemetryAnnotator) Complete() error {
	if p.currentSpan != nil && p.currentContext != p.rootContext {
		p.currentSpan.End()
		p.currentContext = p.rootContext
		p.currentSpan = trace.SpanFromContext(p.rootContext)
	}
	return nil
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "iota"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

// Start opens a span and returns the function that closes it.
func (p *OpenTelemetryAnnotator) Start(name string) func() {
	if p.skipTrace(name) {
		return func() {}
	}
	oldContext := p.currentContext
	p.currentContext, p.currentSpan = contextTracer(p.currentContext).Start(p.currentContext, p.label(name))
	p.addCodeAttributes(name)
	return func() {
		p.currentSpan.End()
		p.currentContext = oldContext
		p.currentSpan = trace.SpanFromContext(p.currentContext)
	}
}

func (p *OpenTelemetryAnnotator) addCodeAttributes(name string) {
	attrs := []attribute.KeyValue{
		semconv.CodeNamespace("iota"),
	}
	if fn := funcName(name); fn != "" {
		attrs = append(attrs, semconv.CodeFunction(fn))
	}
	if p.File != "" {
		attrs = append(attrs, semconv.CodeFilepath(p.File))
	}
	p.currentSpan.SetAttributes(attrs...)
}
