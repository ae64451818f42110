// Copyright © 2026 The iota authors

package lsp

import (
	"strings"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/lint"
	"github.com/iotalang/iota/parser"
	"github.com/iotalang/iota/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentCompletion offers keywords, type names and global symbols
// that start with the word under the cursor.  Globals come from the last
// successful analysis of the document.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	s.ensureAnalysis(doc)

	doc.mu.Lock()
	defer doc.mu.Unlock()
	prefix := prefixAtPosition(doc.Content, int(params.Position.Line), int(params.Position.Character))

	items := []protocol.CompletionItem{}
	add := func(label string, kind protocol.CompletionItemKind, detail string) {
		if !strings.HasPrefix(label, prefix) {
			return
		}
		item := protocol.CompletionItem{Label: label, Kind: &kind}
		if detail != "" {
			item.Detail = &detail
		}
		items = append(items, item)
	}

	for _, kw := range parser.Keywords() {
		add(kw, protocol.CompletionItemKindKeyword, "")
	}
	for _, t := range types.All {
		if t != types.Untyped {
			add(t.String(), protocol.CompletionItemKindClass, "")
		}
	}
	if doc.analysis != nil {
		for _, sym := range lint.SortedSymbols(doc.analysis.Globals) {
			add(sym.Name, mapCompletionItemKind(sym), sym.Describe())
		}
	}
	return items, nil
}

func mapCompletionItemKind(sym *analysis.Symbol) protocol.CompletionItemKind {
	switch {
	case sym.Kind == analysis.SymFunction:
		return protocol.CompletionItemKindFunction
	case sym.Constant:
		return protocol.CompletionItemKindConstant
	default:
		return protocol.CompletionItemKindVariable
	}
}

// prefixAtPosition returns the part of the identifier before the cursor.
func prefixAtPosition(content string, line, col int) string {
	ln := lineAt(content, line+1)
	if col < 0 || col > len(ln) {
		return ""
	}
	start := col
	for start > 0 && isIdentChar(ln[start-1]) {
		start--
	}
	return ln[start:col]
}
