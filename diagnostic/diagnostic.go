// Copyright © 2026 The iota authors

// Package diagnostic renders Rust-style annotated errors and warnings for
// iotac output.
package diagnostic

import (
	"errors"
	"fmt"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/parser"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = auto-detect from source)
	Label  string // text shown under the underline
}

// Diagnostic is a single error, warning, or note with optional source
// annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	// Code is shown in brackets after the severity, e.g. error[E0004].
	Code    string
	Message string
	Spans   []Span
	Notes   []string
}

// FromError converts an error returned by the parser or the analyzer into
// a diagnostic located in file.  Other errors become a plain error
// diagnostic without spans.
func FromError(file string, err error) Diagnostic {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return Diagnostic{
			Severity: SeverityError,
			Code:     "syntax",
			Message:  perr.Msg,
			Spans:    []Span{{File: file, Line: perr.Line, Col: perr.Col}},
		}
	}
	var aerr *analysis.Error
	if errors.As(err, &aerr) {
		d := Diagnostic{
			Severity: SeverityError,
			Code:     aerr.Kind.Code(),
			Message:  aerr.Message(),
			Notes: []string{
				fmt.Sprintf("run `iotac explain %s` for more about %s", aerr.Kind.Code(), aerr.Kind),
			},
		}
		if aerr.Pos.IsValid() {
			d.Spans = []Span{{File: file, Line: aerr.Pos.Line, Col: aerr.Pos.Col, Label: label(aerr)}}
		} else {
			d.Spans = []Span{{File: file}}
		}
		return d
	}
	return Diagnostic{Severity: SeverityError, Message: err.Error()}
}

// label is the short text shown under the underlined source.
func label(err *analysis.Error) string {
	switch c := err.Context.(type) {
	case analysis.TypeMismatchContext:
		if err.Kind == analysis.ReturnTypeMismatch {
			return "returned here"
		}
		return "this has type " + c.Actual.String()
	case analysis.SignatureContext:
		if n := len(c.Actual); n > 0 {
			return "this has type " + c.Actual[n-1].String()
		}
	case analysis.ArgCountContext:
		return fmt.Sprintf("called with %d", c.Actual)
	case analysis.OperationContext:
		return fmt.Sprintf("operands are %s and %s", c.Left, c.Right)
	case analysis.ActualTypeContext:
		return "this has type " + c.Actual.String()
	}
	switch err.Kind {
	case analysis.MissingReturn:
		return "declared here"
	case analysis.UnreachableCode:
		return "never executed"
	}
	return ""
}
