// Copyright © 2026 The iota authors

package lsp

import (
	"strings"
	"time"

	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/diagnostic"
	"github.com/iotalang/iota/lint"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	debounceDelay = 300 * time.Millisecond

	sourceAnalyzer = "iota"
	sourceLint     = "iota-lint"
)

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	doc := s.docs.Open(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		params.TextDocument.Text,
	)
	s.analyzeAndPublish(doc)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	doc := s.docs.Change(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		content,
	)

	// Debounce: delay analysis to avoid thrashing during rapid edits.
	s.debounceMu.Lock()
	if t, ok := s.debounce[doc.URI]; ok {
		t.Stop()
	}
	s.debounce[doc.URI] = time.AfterFunc(debounceDelay, func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.WithField("uri", doc.URI).Errorf("analysis panic: %v", r)
			}
		}()
		if d := s.docs.Get(doc.URI); d != nil {
			s.analyzeAndPublish(d)
		}
	})
	s.debounceMu.Unlock()
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	s.cancelDebounce(params.TextDocument.URI)
	if doc := s.docs.Get(params.TextDocument.URI); doc != nil {
		s.analyzeAndPublish(doc)
	}
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.cancelDebounce(params.TextDocument.URI)

	// Clear diagnostics for the closed file.
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})

	s.docs.Close(params.TextDocument.URI)
	return nil
}

func (s *Server) cancelDebounce(uri string) {
	s.debounceMu.Lock()
	if t, ok := s.debounce[uri]; ok {
		t.Stop()
		delete(s.debounce, uri)
	}
	s.debounceMu.Unlock()
}

// analyzeAndPublish analyzes and lints a document and publishes the
// resulting diagnostics to the client.  A document with a syntax or
// semantic error is not linted.
func (s *Server) analyzeAndPublish(doc *Document) {
	s.ensureAnalysis(doc)

	doc.mu.Lock()
	content := doc.Content
	items := doc.items
	result := doc.analysis
	docErr := doc.err
	uri := doc.URI
	doc.mu.Unlock()

	path := uriToPath(uri)
	diags := []protocol.Diagnostic{}
	if docErr != nil {
		diags = append(diags, convertError(content, diagnostic.FromError(path, docErr)))
	} else if result != nil {
		lintDiags, err := s.linter.Run(items, result, []byte(content), path)
		if err != nil {
			s.log.WithError(err).Warn("lint failed")
		}
		for _, d := range lintDiags {
			diags = append(diags, convertLintDiagnostic(content, d))
		}
	}
	s.log.WithField("uri", uri).WithField("count", len(diags)).Debug("publishing diagnostics")

	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// convertError converts a syntax or semantic error diagnostic to an LSP
// diagnostic covering the token at its position.
func convertError(content string, d diagnostic.Diagnostic) protocol.Diagnostic {
	var r protocol.Range
	if len(d.Spans) > 0 && d.Spans[0].Line > 0 {
		pos := ast.Pos{Line: d.Spans[0].Line, Col: d.Spans[0].Col}
		r = iotaToLSPRange(pos, tokenWidth(content, pos))
	}
	return protocol.Diagnostic{
		Range:    r,
		Severity: severity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: d.Code},
		Source:   strPtr(sourceAnalyzer),
		Message:  d.Message,
	}
}

// convertLintDiagnostic converts a lint.Diagnostic to an LSP Diagnostic.
func convertLintDiagnostic(content string, d lint.Diagnostic) protocol.Diagnostic {
	pos := ast.Pos{Line: d.Pos.Line, Col: d.Pos.Col}
	msg := d.Message
	if len(d.Notes) > 0 {
		msg += "\n" + strings.Join(d.Notes, "\n")
	}
	return protocol.Diagnostic{
		Range:    iotaToLSPRange(pos, tokenWidth(content, pos)),
		Severity: severity(mapLintSeverity(d.Severity)),
		Source:   strPtr(sourceLint),
		Code:     &protocol.IntegerOrString{Value: d.Analyzer},
		Message:  msg,
	}
}

func mapLintSeverity(sev lint.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case lint.SeverityError:
		return protocol.DiagnosticSeverityError
	case lint.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityWarning
	}
}

func severity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func strPtr(s string) *string {
	return &s
}
