// Copyright © 2026 The iota authors

package lsp

import (
	"sort"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/lint"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDocumentSymbol returns the global declarations of a document.
// Functions carry their parameters, locals and nested functions as
// children.
func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	s.ensureAnalysis(doc)

	doc.mu.Lock()
	defer doc.mu.Unlock()
	if doc.analysis == nil {
		return nil, nil
	}
	return documentSymbols(doc.Content, lint.SortedSymbols(doc.analysis.Globals)), nil
}

func documentSymbols(content string, syms []*analysis.Symbol) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, sym := range syms {
		name := declNamePos(content, sym)
		detail := sym.Describe()
		ds := protocol.DocumentSymbol{
			Name:   sym.Name,
			Detail: &detail,
			Kind:   mapSymbolKind(sym),
			Range: protocol.Range{
				Start: iotaToLSPPosition(sym.Source),
				End:   iotaToLSPRange(name, len(sym.Name)).End,
			},
			SelectionRange: iotaToLSPRange(name, len(sym.Name)),
		}
		if sym.Kind == analysis.SymFunction {
			if fn := functionScope(sym); fn != nil {
				ds.Children = documentSymbols(content, localSymbols(fn))
			}
		}
		symbols = append(symbols, ds)
	}
	return symbols
}

// functionScope returns the body scope of the function declared by sym.
func functionScope(sym *analysis.Symbol) *analysis.Scope {
	if sym.Scope == nil {
		return nil
	}
	for _, child := range sym.Scope.Children {
		if child.Kind == analysis.ScopeFunction && child.Node != nil && child.Node.Position() == sym.Source {
			return child
		}
	}
	return nil
}

// localSymbols returns the symbols declared in fn and its nested blocks,
// stopping at nested functions, in source order.
func localSymbols(fn *analysis.Scope) []*analysis.Symbol {
	var syms []*analysis.Symbol
	var collect func(*analysis.Scope)
	collect = func(s *analysis.Scope) {
		for _, sym := range s.Symbols {
			syms = append(syms, sym)
		}
		for _, child := range s.Children {
			if child.Kind != analysis.ScopeFunction {
				collect(child)
			}
		}
	}
	collect(fn)
	sort.Slice(syms, func(i, j int) bool {
		a, b := syms[i].Source, syms[j].Source
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
	return syms
}
