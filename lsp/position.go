// Copyright © 2026 The iota authors

package lsp

import (
	"strings"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/ast"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// iotaToLSPPosition converts a 1-based iota position to a 0-based LSP
// position.
func iotaToLSPPosition(pos ast.Pos) protocol.Position {
	line := pos.Line
	col := pos.Col
	if line > 0 {
		line--
	}
	if col > 0 {
		col--
	}
	return protocol.Position{
		Line:      safeUint(line),
		Character: safeUint(col),
	}
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}

// iotaToLSPRange returns the single-line range of width characters starting
// at pos.
func iotaToLSPRange(pos ast.Pos, width int) protocol.Range {
	start := iotaToLSPPosition(pos)
	return protocol.Range{
		Start: start,
		End: protocol.Position{
			Line:      start.Line,
			Character: start.Character + safeUint(width),
		},
	}
}

// lineAt returns the text of the 1-based line n, or "" when out of range.
func lineAt(content string, n int) string {
	lines := strings.Split(content, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[n-1], "\r")
}

// tokenWidth returns the width of the token starting at pos: the length of
// the identifier or number there, or 1 for anything else.
func tokenWidth(content string, pos ast.Pos) int {
	ln := lineAt(content, pos.Line)
	start := pos.Col - 1
	if start < 0 || start >= len(ln) {
		return 1
	}
	end := start
	for end < len(ln) && isIdentChar(ln[end]) {
		end++
	}
	if end == start {
		return 1
	}
	return end - start
}

// declNamePos returns the position of the name in a symbol's declaration.
// Variable, constant and function symbols record the position of their
// keyword; the name follows it on the same line.
func declNamePos(content string, sym *analysis.Symbol) ast.Pos {
	if sym.Param {
		return sym.Source
	}
	keyword := "var"
	switch {
	case sym.Kind == analysis.SymFunction:
		keyword = "func"
	case sym.Constant:
		keyword = "const"
	}
	ln := lineAt(content, sym.Source.Line)
	start := sym.Source.Col - 1 + len(keyword)
	if start < 0 || start > len(ln) {
		return sym.Source
	}
	rest := ln[start:]
	trimmed := strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(trimmed, sym.Name) {
		return sym.Source
	}
	return ast.Pos{Line: sym.Source.Line, Col: start + len(rest) - len(trimmed) + 1}
}

// symbolAtPosition finds the analysis symbol at the given 0-based LSP
// position.  It returns both the symbol and the specific reference that was
// hit, if any.  Callers hold doc.mu.
func symbolAtPosition(doc *Document, line, col int) (*analysis.Symbol, *analysis.Reference) {
	if doc == nil || doc.analysis == nil {
		return nil, nil
	}
	pos := ast.Pos{Line: line + 1, Col: col + 1}

	// References first: they point to specific usage sites.
	for _, ref := range doc.analysis.References {
		if posContains(ref.Pos, ref.Name, pos) {
			return ref.Symbol, ref
		}
	}
	for _, sym := range doc.analysis.Symbols {
		if posContains(declNamePos(doc.Content, sym), sym.Name, pos) {
			return sym, nil
		}
	}
	return nil, nil
}

// posContains reports whether pos falls within name written at start.
func posContains(start ast.Pos, name string, pos ast.Pos) bool {
	if !start.IsValid() || start.Line != pos.Line {
		return false
	}
	return pos.Col >= start.Col && pos.Col < start.Col+len(name)
}

// wordAtPosition extracts the identifier at the given 0-based LSP position.
// The cursor can be inside or at the end of a word.
func wordAtPosition(content string, line, col int) string {
	ln := lineAt(content, line+1)
	if col < 0 || col > len(ln) {
		return ""
	}
	start := col
	for start > 0 && isIdentChar(ln[start-1]) {
		start--
	}
	end := col
	for end < len(ln) && isIdentChar(ln[end]) {
		end++
	}
	return ln[start:end]
}

func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func mapSymbolKind(sym *analysis.Symbol) protocol.SymbolKind {
	switch {
	case sym.Kind == analysis.SymFunction:
		return protocol.SymbolKindFunction
	case sym.Constant:
		return protocol.SymbolKindConstant
	default:
		return protocol.SymbolKindVariable
	}
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

// pathToURI converts a filesystem path to a file:// URI.
func pathToURI(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return path
}
