// Copyright © 2026 The iota authors

package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentReferences lists the uses of the symbol under the cursor,
// assignments included, in the order analysis resolved them.
func (s *Server) textDocumentReferences(_ *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	s.ensureAnalysis(doc)

	doc.mu.Lock()
	defer doc.mu.Unlock()
	sym, _ := symbolAtPosition(doc, int(params.Position.Line), int(params.Position.Character))
	if sym == nil {
		return nil, nil
	}

	uri := params.TextDocument.URI
	var locs []protocol.Location
	if params.Context.IncludeDeclaration {
		locs = append(locs, protocol.Location{
			URI:   uri,
			Range: iotaToLSPRange(declNamePos(doc.Content, sym), len(sym.Name)),
		})
	}
	for _, ref := range doc.analysis.References {
		if ref.Symbol != sym {
			continue
		}
		locs = append(locs, protocol.Location{
			URI:   uri,
			Range: iotaToLSPRange(ref.Pos, len(ref.Name)),
		})
	}
	return locs, nil
}
