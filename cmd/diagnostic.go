// Copyright © 2026 The iota authors

package cmd

import (
	"io"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/diagnostic"
	"github.com/iotalang/iota/lint"
	"github.com/iotalang/iota/parser"
)

const renderWidth = 100

func (a *app) newRenderer(inputs []input) (*diagnostic.Renderer, error) {
	mode, err := a.colorMode()
	if err != nil {
		return nil, err
	}
	return &diagnostic.Renderer{
		Color:        mode,
		Width:        renderWidth,
		SourceReader: sourceReader(inputs),
	}, nil
}

// analyze parses and analyzes one input with the command's logger and
// tracing.  The error is a *parser.Error or an *analysis.Error.
func (a *app) analyze(in input, tr *tracing) (*ast.Program, *analysis.Result, error) {
	prog, err := parser.Parse(in.name, in.src)
	if err != nil {
		return nil, nil, err
	}
	cfg, done := a.analysisConfig(in, tr)
	defer done()
	res, err := analysis.Analyze(prog, cfg)
	return prog, res, err
}

// analysisConfig returns the analysis configuration for in and the function
// to call once the analysis has returned.
func (a *app) analysisConfig(in input, tr *tracing) (*analysis.Config, func()) {
	prof, done := tr.profiler(in.name)
	return &analysis.Config{
		Logger:   a.log.WithField("file", in.name),
		Profiler: prof,
	}, done
}

// renderError renders a syntax or semantic error for in.
func renderError(w io.Writer, r *diagnostic.Renderer, in input, err error) {
	_ = r.Render(w, diagnostic.FromError(in.name, err))
}

// lintDiagToDiagnostic converts a lint.Diagnostic to a diagnostic.Diagnostic.
func lintDiagToDiagnostic(ld lint.Diagnostic) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Code:     ld.Analyzer,
		Message:  ld.Message,
	}
	switch ld.Severity {
	case lint.SeverityError:
		d.Severity = diagnostic.SeverityError
	case lint.SeverityInfo:
		d.Severity = diagnostic.SeverityNote
	}
	if ld.Pos.Line > 0 {
		d.Spans = append(d.Spans, diagnostic.Span{
			File: ld.Pos.File,
			Line: ld.Pos.Line,
			Col:  ld.Pos.Col,
		})
	}
	d.Notes = append(d.Notes, ld.Notes...)
	d.Notes = append(d.Notes, "to suppress: add \"// nolint:"+ld.Analyzer+"\" as a comment on this line")
	return d
}
