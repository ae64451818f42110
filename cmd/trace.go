// Copyright © 2026 The iota authors

package cmd

import (
	"context"
	"fmt"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/profiler"
	"github.com/sirupsen/logrus"
	octrace "go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	traceNone       = "none"
	traceOtel       = "otel"
	traceOpenCensus = "opencensus"
)

// tracing owns the span pipeline for one command run.  Finished spans are
// written to the log at info level.
type tracing struct {
	mode     string
	ctx      context.Context
	log      *logrus.Entry
	exporter spanLogger
	provider *sdktrace.TracerProvider
}

func startTracing(ctx context.Context, mode string, log *logrus.Entry) (*tracing, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	t := &tracing{mode: mode, ctx: ctx, log: log, exporter: spanLogger{log: log}}
	switch mode {
	case "", traceNone:
		t.mode = traceNone
	case traceOtel:
		t.provider = sdktrace.NewTracerProvider(sdktrace.WithSyncer(t.exporter))
		otel.SetTracerProvider(t.provider)
	case traceOpenCensus:
		octrace.RegisterExporter(t.exporter)
		octrace.ApplyConfig(octrace.Config{DefaultSampler: octrace.AlwaysSample()})
	default:
		return nil, fmt.Errorf("invalid trace mode %q (want none, otel or opencensus)", mode)
	}
	return t, nil
}

// profiler returns the profiler for analyzing file and the function to call
// when the analysis is over.  The profiler is nil when tracing is off.
func (t *tracing) profiler(file string) (analysis.Profiler, func()) {
	switch t.mode {
	case traceOtel:
		ann := profiler.NewOpenTelemetryAnnotator(t.ctx, file)
		if err := ann.Enable(); err != nil {
			t.log.WithError(err).Warn("tracing disabled")
			return nil, func() {}
		}
		return ann, func() { _ = ann.Complete() }
	case traceOpenCensus:
		ann := profiler.NewOpenCensusAnnotator(t.ctx, file)
		if err := ann.Enable(); err != nil {
			t.log.WithError(err).Warn("tracing disabled")
			return nil, func() {}
		}
		return ann, func() { _ = ann.Complete() }
	}
	return nil, func() {}
}

func (t *tracing) Close() {
	switch t.mode {
	case traceOtel:
		if err := t.provider.Shutdown(t.ctx); err != nil {
			t.log.WithError(err).Warn("trace shutdown")
		}
	case traceOpenCensus:
		octrace.UnregisterExporter(t.exporter)
	}
}

// spanLogger exports spans from both tracing libraries to the log.
type spanLogger struct {
	log *logrus.Entry
}

var (
	_ sdktrace.SpanExporter = spanLogger{}
	_ octrace.Exporter      = spanLogger{}
)

func (l spanLogger) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		l.log.WithFields(logrus.Fields{
			"span":     s.Name(),
			"duration": s.EndTime().Sub(s.StartTime()),
		}).Info("span finished")
	}
	return nil
}

func (spanLogger) Shutdown(context.Context) error {
	return nil
}

func (l spanLogger) ExportSpan(s *octrace.SpanData) {
	l.log.WithFields(logrus.Fields{
		"span":     s.Name,
		"duration": s.EndTime.Sub(s.StartTime),
	}).Info("span finished")
}
