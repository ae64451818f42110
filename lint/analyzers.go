// Copyright © 2026 The iota authors

package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/astutil"
)

// AnalyzerShadow warns when a declaration hides a name from an enclosing
// scope.
var AnalyzerShadow = &Analyzer{
	Name:     "shadow",
	Doc:      "Warn when a declaration hides a variable or function from an enclosing scope.\n\nShadowing is legal, but an assignment meant for the outer variable silently updates the inner one instead.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) error {
		WalkScopes(pass.Semantics.Globals, func(s *analysis.Scope) {
			if s.Parent == nil {
				return
			}
			for _, sym := range SortedSymbols(s) {
				outer := s.Parent.Lookup(sym.Name)
				if outer == nil || !visibleAt(outer, sym.Source) {
					continue
				}
				pass.Report(Diagnostic{
					Pos:     Position{Line: sym.Source.Line, Col: sym.Source.Col},
					Message: fmt.Sprintf("declaration of '%s' shadows %s", sym.Name, outer.Describe()),
					Notes: []string{
						fmt.Sprintf("'%s' is first declared at %d:%d", outer.Name, outer.Source.Line, outer.Source.Col),
					},
				})
			}
		})
		return nil
	},
}

// AnalyzerUnusedVariable warns about local variables and constants that are
// never read.
var AnalyzerUnusedVariable = &Analyzer{
	Name:     "unused-variable",
	Doc:      "Warn about local variables and constants that are never read.\n\nAssigning to a variable does not count as a use. Parameters and globals are not checked.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) error {
		reads := ReadCounts(pass.Semantics)
		for _, sym := range pass.Semantics.Symbols {
			if sym.Kind != analysis.SymVariable || sym.Param {
				continue
			}
			if sym.Scope == nil || sym.Scope.Kind == analysis.ScopeGlobal {
				continue
			}
			if reads[sym] > 0 {
				continue
			}
			what := "variable"
			if sym.Constant {
				what = "constant"
			}
			pass.Reportf(sym.Source, "unused %s: %s", what, sym.Name)
		}
		return nil
	},
}

// AnalyzerUnusedFunction warns about nested functions that are never
// called.  Top-level functions may be entry points and are not checked.
var AnalyzerUnusedFunction = &Analyzer{
	Name:     "unused-function",
	Doc:      "Warn about nested functions that are never called.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) error {
		reads := ReadCounts(pass.Semantics)
		for _, sym := range pass.Semantics.Symbols {
			if sym.Kind != analysis.SymFunction || sym.Scope == nil || sym.Scope.Kind == analysis.ScopeGlobal {
				continue
			}
			if reads[sym] == 0 {
				pass.Reportf(sym.Source, "unused function: %s", sym.Name)
			}
		}
		return nil
	},
}

// AnalyzerConstantCondition warns when an if or while tests a literal.
var AnalyzerConstantCondition = &Analyzer{
	Name:     "constant-condition",
	Doc:      "Warn when the condition of an if or while is a bool literal.\n\nAn if on a literal always takes the same branch and a while on false never runs its body. while (true) is allowed.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) error {
		astutil.Walk(pass.Items, func(node ast.Node, _ ast.Node, _ int) bool {
			switch n := node.(type) {
			case *ast.IfStmt:
				if lit, ok := n.Cond.(*ast.BoolLit); ok {
					branch := "then"
					if !lit.Value {
						branch = "else"
					}
					pass.Report(Diagnostic{
						Pos:     Position{Line: lit.Pos.Line, Col: lit.Pos.Col},
						Message: fmt.Sprintf("condition is always %t", lit.Value),
						Notes:   []string{fmt.Sprintf("only the %s branch can run", branch)},
					})
				}
			case *ast.WhileStmt:
				if lit, ok := n.Cond.(*ast.BoolLit); ok && !lit.Value {
					pass.Reportf(lit.Pos, "loop condition is always false")
				}
			}
			return true
		})
		return nil
	},
}

// AnalyzerSelfAssign warns about assignments of a variable to itself.
var AnalyzerSelfAssign = &Analyzer{
	Name:     "self-assign",
	Doc:      "Warn about assignments of a variable to itself, which have no effect.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) error {
		astutil.Walk(pass.Items, func(node ast.Node, _ ast.Node, _ int) bool {
			if n, ok := node.(*ast.AssignStmt); ok {
				if id, ok := n.Value.(*ast.Ident); ok && id.Name == n.Name {
					pass.Reportf(n.Pos, "self-assignment of %s", n.Name)
				}
			}
			return true
		})
		return nil
	},
}

// DefaultAnalyzers returns the built-in set of lint checks.
func DefaultAnalyzers() []*Analyzer {
	return []*Analyzer{
		AnalyzerShadow,
		AnalyzerUnusedVariable,
		AnalyzerUnusedFunction,
		AnalyzerConstantCondition,
		AnalyzerSelfAssign,
	}
}

// Select returns the default analyzers named in names, in default order.
// An empty list selects every analyzer.
func Select(names []string) ([]*Analyzer, error) {
	if len(names) == 0 {
		return DefaultAnalyzers(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = true
	}
	var selected []*Analyzer
	for _, a := range DefaultAnalyzers() {
		if want[a.Name] {
			selected = append(selected, a)
			delete(want, a.Name)
		}
	}
	if len(want) > 0 {
		var unknown []string
		for n := range want {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown lint check: %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(AnalyzerNames(), ", "))
	}
	return selected, nil
}

// AnalyzerNames returns a sorted list of all default analyzer names.
func AnalyzerNames() []string {
	analyzers := DefaultAnalyzers()
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// AnalyzerDoc returns a formatted documentation string for all analyzers.
func AnalyzerDoc() string {
	var b strings.Builder
	for _, a := range DefaultAnalyzers() {
		fmt.Fprintf(&b, "  %s\n", a.Name)
		lines := strings.Split(a.Doc, "\n")
		fmt.Fprintf(&b, "    %s\n\n", lines[0])
	}
	return b.String()
}
