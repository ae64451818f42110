// Copyright © 2026 The iota authors

package lint

import (
	"sort"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/ast"
)

// WalkScopes calls fn for s and every scope nested in it, parents first.
func WalkScopes(s *analysis.Scope, fn func(*analysis.Scope)) {
	if s == nil {
		return
	}
	fn(s)
	for _, child := range s.Children {
		WalkScopes(child, fn)
	}
}

// SortedSymbols returns the symbols declared directly in s in source order.
func SortedSymbols(s *analysis.Scope) []*analysis.Symbol {
	syms := make([]*analysis.Symbol, 0, len(s.Symbols))
	for _, sym := range s.Symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return before(syms[i].Source, syms[j].Source)
	})
	return syms
}

// ReadCounts returns the number of times each symbol is read.  Assignment
// targets are not reads.
func ReadCounts(res *analysis.Result) map[*analysis.Symbol]int {
	counts := make(map[*analysis.Symbol]int)
	for _, ref := range res.References {
		if !ref.Assign {
			counts[ref.Symbol]++
		}
	}
	return counts
}

func before(a, b ast.Pos) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Col < b.Col
}

// visibleAt reports whether outer is visible at pos.  Top-level functions
// are visible everywhere; everything else only after its declaration.
func visibleAt(outer *analysis.Symbol, pos ast.Pos) bool {
	if outer.Kind == analysis.SymFunction && outer.Scope != nil && outer.Scope.Kind == analysis.ScopeGlobal {
		return true
	}
	return before(outer.Source, pos)
}
