// Copyright © 2026 The iota authors

package lsp

import (
	"fmt"
	"strings"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	s.ensureAnalysis(doc)

	doc.mu.Lock()
	defer doc.mu.Unlock()
	line, col := int(params.Position.Line), int(params.Position.Character)
	var content string
	if sym, _ := symbolAtPosition(doc, line, col); sym != nil {
		content = buildHoverContent(sym)
	} else if t, ok := types.Parse(wordAtPosition(doc.Content, line, col)); ok {
		content = fmt.Sprintf("```iota\n%s\n```\n\nBuilt-in type", t)
	}
	if content == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
	}, nil
}

// buildHoverContent builds Markdown hover text for a symbol: its
// declaration and where it was declared.
func buildHoverContent(sym *analysis.Symbol) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "```iota\n%s\n```", sym.Describe())
	if sym.Scope != nil && sym.Scope.Kind != analysis.ScopeGlobal {
		fmt.Fprintf(&sb, "\n\n*Local to %s scope, declared on line %d*", sym.Scope.Kind, sym.Source.Line)
	} else {
		fmt.Fprintf(&sb, "\n\n*Declared on line %d*", sym.Source.Line)
	}
	return sb.String()
}
