// Copyright © 2026 The iota authors

package profiler_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/parser"
	"github.com/iotalang/iota/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	octrace "go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const testSource = `
func f() {}
func g(): int {
	return 1;
}
`

func analyze(t *testing.T, prof analysis.Profiler) {
	t.Helper()
	prog, err := parser.Parse("test.iota", []byte(testSource))
	require.NoError(t, err)
	_, err = analysis.Analyze(prog, &analysis.Config{Profiler: prof})
	require.NoError(t, err)
}

func otelExporter(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	t.Cleanup(func() {
		assert.NoError(t, tp.Shutdown(context.Background()), "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)
	return exporter
}

func TestOpenTelemetryAnnotator(t *testing.T) {
	exporter := otelExporter(t)

	p := profiler.NewOpenTelemetryAnnotator(context.Background(), "test.iota")
	require.NoError(t, p.Enable())
	analyze(t, p)
	require.NoError(t, p.Complete())

	spans := exporter.GetSpans()
	require.Len(t, spans, 3)
	assert.Equal(t, "func f", spans[0].Name)
	assert.Equal(t, "func g", spans[1].Name)
	assert.Equal(t, "analyze", spans[2].Name)

	root := spans[2].SpanContext.SpanID()
	assert.Equal(t, root, spans[0].Parent.SpanID())
	assert.Equal(t, root, spans[1].Parent.SpanID())
	assert.False(t, spans[2].Parent.IsValid())

	assert.Contains(t, spans[0].Attributes, semconv.CodeFunction("f"))
	assert.Contains(t, spans[0].Attributes, semconv.CodeFilepath("test.iota"))
	assert.Contains(t, spans[2].Attributes, semconv.CodeNamespace("iota"))
}

func TestOpenTelemetryAnnotator_Options(t *testing.T) {
	exporter := otelExporter(t)

	p := profiler.NewOpenTelemetryAnnotator(context.Background(), "",
		profiler.FunctionsOnly(),
		profiler.WithLabeler(strings.ToUpper))
	require.NoError(t, p.Enable())
	analyze(t, p)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "FUNC F", spans[0].Name)
	assert.Equal(t, "FUNC G", spans[1].Name)
	assert.False(t, spans[0].Parent.IsValid())
}

func TestOpenTelemetryAnnotator_Disabled(t *testing.T) {
	exporter := otelExporter(t)

	p := profiler.NewOpenTelemetryAnnotator(context.Background(), "test.iota")
	assert.False(t, p.IsEnabled())
	analyze(t, p)
	assert.Empty(t, exporter.GetSpans())
}

func TestOpenTelemetryAnnotator_Enable(t *testing.T) {
	p := profiler.NewOpenTelemetryAnnotator(context.Background(), "")
	require.NoError(t, p.Enable())
	assert.True(t, p.IsEnabled())
	assert.Error(t, p.Enable())

	var ctx context.Context
	assert.Error(t, profiler.NewOpenTelemetryAnnotator(ctx, "").Enable())
}

func TestOpenTelemetryAnnotator_Complete(t *testing.T) {
	exporter := otelExporter(t)

	p := profiler.NewOpenTelemetryAnnotator(context.Background(), "")
	require.NoError(t, p.Enable())
	p.Start("analyze")
	require.NoError(t, p.Complete())
	require.NoError(t, p.Complete())
	assert.Len(t, exporter.GetSpans(), 1)
}

type spanCollector struct {
	mu    sync.Mutex
	spans []*octrace.SpanData
}

func (c *spanCollector) ExportSpan(sd *octrace.SpanData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spans = append(c.spans, sd)
}

func (c *spanCollector) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var names []string
	for _, sd := range c.spans {
		names = append(names, sd.Name)
	}
	return names
}

func openCensusCollector(t *testing.T) *spanCollector {
	t.Helper()
	octrace.ApplyConfig(octrace.Config{DefaultSampler: octrace.AlwaysSample()})
	c := &spanCollector{}
	octrace.RegisterExporter(c)
	t.Cleanup(func() { octrace.UnregisterExporter(c) })
	return c
}

func TestOpenCensusAnnotator(t *testing.T) {
	c := openCensusCollector(t)

	p := profiler.NewOpenCensusAnnotator(context.Background(), "test.iota")
	require.NoError(t, p.Enable())
	analyze(t, p)
	require.NoError(t, p.Complete())

	require.Equal(t, []string{"func f", "func g", "analyze"}, c.names())
	root := c.spans[2].SpanID
	assert.Equal(t, root, c.spans[0].ParentSpanID)
	assert.Equal(t, root, c.spans[1].ParentSpanID)
	assert.Equal(t, "g", c.spans[1].Attributes["function"])
	assert.Equal(t, "test.iota", c.spans[2].Attributes["file"])
	assert.NotContains(t, c.spans[2].Attributes, "function")
}

func TestOpenCensusAnnotator_Complete(t *testing.T) {
	c := openCensusCollector(t)

	p := profiler.NewOpenCensusAnnotator(context.Background(), "")
	require.NoError(t, p.Enable())
	stopRun := p.Start("analyze")
	stopFunc := p.Start("func f")
	require.NoError(t, p.Complete())
	assert.Equal(t, []string{"func f", "analyze"}, c.names())

	// Late stops are ignored.
	stopFunc()
	stopRun()
	assert.Len(t, c.names(), 2)
}

func TestOpenCensusAnnotator_Skip(t *testing.T) {
	c := openCensusCollector(t)

	p := profiler.NewOpenCensusAnnotator(context.Background(), "",
		profiler.WithSkipFilter(func(name string) bool { return name == "func g" }))
	require.NoError(t, p.Enable())
	analyze(t, p)
	assert.Equal(t, []string{"func f", "analyze"}, c.names())
}
