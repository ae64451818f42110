// Copyright © 2026 The iota authors

// Package lint provides warnings for iota programs that analyze cleanly.
//
// The linter is modeled after go vet: each check is an independent Analyzer
// that receives the parsed items and the analysis result and reports
// diagnostics.  The framework handles parsing, semantic analysis, running
// analyzers, suppression comments, and formatting output.
package lint

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/astutil"
	"github.com/iotalang/iota/parser"
)

// Severity indicates the severity level of a lint diagnostic.
type Severity int

const (
	severityUnset Severity = iota // unexported zero sentinel for default detection
	SeverityError
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as a JSON string.
// An unset severity (zero value) is marshaled as "warning".
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		return json.Marshal("warning")
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}

// Analyzer defines a single lint check.
type Analyzer struct {
	// Name is a short identifier for this check (e.g. "shadow").
	Name string

	// Doc is a human-readable description. The first line is a short summary.
	Doc string

	// Severity is the default severity for diagnostics from this analyzer.
	Severity Severity

	// Run executes the check. It should call pass.Report() for each finding.
	Run func(pass *Pass) error
}

// Pass provides context to a running analyzer.
type Pass struct {
	Analyzer *Analyzer
	Filename string

	// Items are the top-level items of the file.
	Items []ast.Item

	// Semantics is the result of analyzing Items.
	Semantics *analysis.Result

	diagnostics []Diagnostic
}

// Report records a diagnostic finding.
func (p *Pass) Report(d Diagnostic) {
	d.Analyzer = p.Analyzer.Name
	if d.Severity == severityUnset {
		d.Severity = p.Analyzer.Severity
	}
	p.diagnostics = append(p.diagnostics, d)
}

// Reportf is a convenience for reporting a diagnostic at a position.
func (p *Pass) Reportf(pos ast.Pos, format string, args ...interface{}) {
	p.Report(Diagnostic{
		Pos:     Position{Line: pos.Line, Col: pos.Col},
		Message: fmt.Sprintf(format, args...),
	})
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Pos      Position `json:"pos"`
	Message  string   `json:"message"`
	Analyzer string   `json:"analyzer"`
	Severity Severity `json:"severity"`
	Notes    []string `json:"notes,omitempty"`
}

// Position identifies a location in source code.
type Position struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col,omitempty"`
}

// String returns the position in file:line:col format.
func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// String returns the diagnostic in go vet style: file:line:col: message
// (analyzer) with optional note lines appended.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s (%s)", d.Pos, d.Message, d.Analyzer)
	for _, n := range d.Notes {
		s += "\n  = note: " + n
	}
	return s
}

// Linter runs a set of analyzers over source files.
type Linter struct {
	Analyzers []*Analyzer
}

// LintFile parses and analyzes source, then runs every analyzer over the
// result.  A syntax or semantic error is returned as an error wrapping the
// *parser.Error or *analysis.Error; no lint checks run in that case.
func (l *Linter) LintFile(source []byte, filename string, cfg *analysis.Config) ([]Diagnostic, error) {
	prog, err := parser.Parse(filename, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	result, err := analysis.Analyze(prog, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return l.Run(astutil.Items(prog), result, source, filename)
}

// Run applies the analyzers to items that were already analyzed into
// result.  source is scanned for suppression comments and may be nil.
func (l *Linter) Run(items []ast.Item, result *analysis.Result, source []byte, filename string) ([]Diagnostic, error) {
	var all []Diagnostic
	for _, analyzer := range l.Analyzers {
		pass := &Pass{
			Analyzer:  analyzer,
			Filename:  filename,
			Items:     items,
			Semantics: result,
		}
		if err := analyzer.Run(pass); err != nil {
			return nil, fmt.Errorf("%s: analyzer %s: %w", filename, analyzer.Name, err)
		}
		for i := range pass.diagnostics {
			if pass.diagnostics[i].Pos.File == "" {
				pass.diagnostics[i].Pos.File = filename
			}
		}
		all = append(all, pass.diagnostics...)
	}

	all = filterSuppressed(all, nolintLines(source))

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].Pos, all[j].Pos
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return all[i].Analyzer < all[j].Analyzer
	})
	return all, nil
}

// nolintLines maps line numbers to their nolint directive: "" suppresses
// every analyzer, otherwise a comma-separated list of analyzer names.
func nolintLines(source []byte) map[int]string {
	lines := make(map[int]string)
	scanner := bufio.NewScanner(bytes.NewReader(source))
	for n := 1; scanner.Scan(); n++ {
		_, comment, ok := strings.Cut(scanner.Text(), "//")
		if !ok {
			continue
		}
		text := strings.TrimSpace(comment)
		if !strings.HasPrefix(text, "nolint") {
			continue
		}
		rest := strings.TrimPrefix(text, "nolint")
		switch {
		case rest == "":
			lines[n] = ""
		case strings.HasPrefix(rest, ":"):
			lines[n] = strings.TrimPrefix(rest, ":")
		}
	}
	return lines
}

func filterSuppressed(diags []Diagnostic, nolint map[int]string) []Diagnostic {
	var filtered []Diagnostic
	for _, d := range diags {
		directive, ok := nolint[d.Pos.Line]
		if !ok {
			filtered = append(filtered, d)
			continue
		}
		if directive == "" {
			continue
		}
		suppressed := false
		for _, name := range strings.Split(directive, ",") {
			if strings.TrimSpace(name) == d.Analyzer {
				suppressed = true
				break
			}
		}
		if !suppressed {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// FormatText writes diagnostics in go vet text format.
func FormatText(w io.Writer, diags []Diagnostic) error {
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	if diags == nil {
		diags = []Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}
