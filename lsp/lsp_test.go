// Copyright © 2026 The iota authors

package lsp

import (
	"testing"
	"time"

	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/sematest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const testURI = "file:///test.iota"

// testSource declares a global, a function with parameters and a local,
// and a function that uses both.
const testSource = "var total: int = 0;\n" +
	"func add(a: int, b: int): int {\n" +
	"\tvar sum: int = a + b;\n" +
	"\treturn sum;\n" +
	"}\n" +
	"func main() {\n" +
	"\ttotal = add(1, 2);\n" +
	"\tprint(total);\n" +
	"}\n"

func testServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	return New(append([]Option{WithLogger(sematest.NewEntry(t))}, opts...)...)
}

func openDoc(s *Server, uri, content string) *Document {
	return s.docs.Open(uri, 1, content)
}

// mockContext returns a minimal glsp.Context for testing.
func mockContext() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {},
	}
}

// capturingContext returns a context that captures published diagnostics.
func capturingContext() (*glsp.Context, *[]*protocol.PublishDiagnosticsParams) {
	var captured []*protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				captured = append(captured, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
	return ctx, &captured
}

// channelContext delivers published diagnostics on a channel, for
// notifications sent from timer goroutines.
func channelContext() (*glsp.Context, <-chan *protocol.PublishDiagnosticsParams) {
	ch := make(chan *protocol.PublishDiagnosticsParams, 8)
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				ch <- params.(*protocol.PublishDiagnosticsParams)
			}
		},
	}
	return ctx, ch
}

func didOpen(t *testing.T, s *Server, ctx *glsp.Context, text string) {
	t.Helper()
	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        testURI,
			LanguageID: "iota",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
}

func docPosition(line, char protocol.UInteger) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Position:     protocol.Position{Line: line, Character: char},
	}
}

func lspRange(line, start, end protocol.UInteger) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: end},
	}
}

// --- Position conversion tests ---

func TestPositionConversion(t *testing.T) {
	t.Run("1-based to 0-based", func(t *testing.T) {
		pos := iotaToLSPPosition(ast.Pos{Line: 1, Col: 1})
		assert.Equal(t, protocol.UInteger(0), pos.Line)
		assert.Equal(t, protocol.UInteger(0), pos.Character)
	})
	t.Run("multi-digit", func(t *testing.T) {
		pos := iotaToLSPPosition(ast.Pos{Line: 5, Col: 10})
		assert.Equal(t, protocol.UInteger(4), pos.Line)
		assert.Equal(t, protocol.UInteger(9), pos.Character)
	})
	t.Run("zero values clamp", func(t *testing.T) {
		pos := iotaToLSPPosition(ast.Pos{})
		assert.Equal(t, protocol.UInteger(0), pos.Line)
		assert.Equal(t, protocol.UInteger(0), pos.Character)
	})
}

func TestPositionRange(t *testing.T) {
	r := iotaToLSPRange(ast.Pos{Line: 3, Col: 5}, 4)
	assert.Equal(t, lspRange(2, 4, 8), r)
}

func TestSafeUint(t *testing.T) {
	assert.Equal(t, protocol.UInteger(0), safeUint(-3))
	assert.Equal(t, protocol.UInteger(7), safeUint(7))
}

func TestTokenWidth(t *testing.T) {
	content := "var total: int = 0;\n\tprint(total);"
	assert.Equal(t, 3, tokenWidth(content, ast.Pos{Line: 1, Col: 1}))
	assert.Equal(t, 5, tokenWidth(content, ast.Pos{Line: 1, Col: 5}))
	assert.Equal(t, 1, tokenWidth(content, ast.Pos{Line: 1, Col: 10}))
	assert.Equal(t, 5, tokenWidth(content, ast.Pos{Line: 2, Col: 8}))
	assert.Equal(t, 1, tokenWidth(content, ast.Pos{Line: 9, Col: 1}))
}

func TestWordAtPosition(t *testing.T) {
	content := "var total: int\n\tprint(x)"
	tests := []struct {
		line, col int
		want      string
	}{
		{0, 6, "total"},
		{0, 4, "total"},
		{0, 3, "var"},
		{0, 9, "total"},
		{0, 10, ""},
		{1, 7, "x"},
		{1, 1, "print"},
		{5, 0, ""},
		{0, 99, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wordAtPosition(content, tt.line, tt.col), "line %d col %d", tt.line, tt.col)
	}
}

func TestDeclNamePos(t *testing.T) {
	s := testServer(t)
	doc := openDoc(s, testURI, testSource)
	s.ensureAnalysis(doc)
	require.NoError(t, doc.err)

	want := map[string]ast.Pos{
		"total": {Line: 1, Col: 5},
		"add":   {Line: 2, Col: 6},
		"a":     {Line: 2, Col: 10},
		"b":     {Line: 2, Col: 18},
		"sum":   {Line: 3, Col: 6},
		"main":  {Line: 6, Col: 6},
	}
	for _, sym := range doc.analysis.Symbols {
		assert.Equal(t, want[sym.Name], declNamePos(doc.Content, sym), sym.Name)
	}
}

func TestURIConversion(t *testing.T) {
	assert.Equal(t, "/src/main.iota", uriToPath("file:///src/main.iota"))
	assert.Equal(t, "untitled:1", uriToPath("untitled:1"))
	assert.Equal(t, "file:///src/main.iota", pathToURI("/src/main.iota"))
	assert.Equal(t, "main.iota", pathToURI("main.iota"))
}

// --- Document store tests ---

func TestDocumentStore(t *testing.T) {
	store := NewDocumentStore()

	doc := store.Open(testURI, 1, "var x: int;")
	require.NotNil(t, doc)
	assert.Equal(t, int32(1), doc.Version)
	assert.Same(t, doc, store.Get(testURI))

	doc.fresh = true
	changed := store.Change(testURI, 2, "var y: int;")
	assert.Same(t, doc, changed)
	assert.Equal(t, int32(2), changed.Version)
	assert.Equal(t, "var y: int;", changed.Content)
	assert.False(t, changed.fresh, "change should invalidate analysis")

	store.Close(testURI)
	assert.Nil(t, store.Get(testURI))

	// Change of an unknown document creates it.
	created := store.Change("file:///other.iota", 3, "")
	assert.Same(t, created, store.Get("file:///other.iota"))
}

func TestDocumentAnalyze(t *testing.T) {
	s := testServer(t)

	doc := openDoc(s, testURI, testSource)
	s.ensureAnalysis(doc)
	assert.NoError(t, doc.err)
	assert.Len(t, doc.items, 3)
	require.NotNil(t, doc.analysis)
	assert.Len(t, doc.analysis.Symbols, 6)

	doc = openDoc(s, testURI, "var x: int = ;")
	s.ensureAnalysis(doc)
	assert.Error(t, doc.err)
	assert.Nil(t, doc.items)
	assert.Nil(t, doc.analysis)

	doc = openDoc(s, testURI, "var x: int = y;")
	s.ensureAnalysis(doc)
	assert.Error(t, doc.err)
	assert.Len(t, doc.items, 1)
	assert.Nil(t, doc.analysis)
}

// --- Diagnostics tests ---

func TestDiagnosticsOnOpen_ValidCode(t *testing.T) {
	s := testServer(t)
	ctx, captured := capturingContext()

	didOpen(t, s, ctx, testSource)
	require.Len(t, *captured, 1)
	pub := (*captured)[0]
	assert.Equal(t, testURI, pub.URI)
	assert.NotNil(t, pub.Diagnostics)
	assert.Empty(t, pub.Diagnostics)
}

func TestDiagnosticsOnSyntaxError(t *testing.T) {
	s := testServer(t)
	ctx, captured := capturingContext()

	didOpen(t, s, ctx, "var x: int = ;")
	require.Len(t, *captured, 1)
	diags := (*captured)[0].Diagnostics
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, sourceAnalyzer, *d.Source)
	assert.Equal(t, "syntax", d.Code.Value)
	assert.Contains(t, d.Message, "expected")
	assert.Equal(t, protocol.UInteger(0), d.Range.Start.Line)
}

func TestDiagnosticsOnSemanticError(t *testing.T) {
	s := testServer(t)
	ctx, captured := capturingContext()

	didOpen(t, s, ctx, "func f() {\n\tprint(missing);\n}\n")
	require.Len(t, *captured, 1)
	diags := (*captured)[0].Diagnostics
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, "E0006", d.Code.Value)
	assert.Contains(t, d.Message, "missing")
	assert.Equal(t, lspRange(1, 7, 14), d.Range)
}

func TestDiagnosticsIncludeLintWarnings(t *testing.T) {
	s := testServer(t)
	ctx, captured := capturingContext()

	didOpen(t, s, ctx, "func main() {\n\tvar unused: int = 1;\n}\n")
	require.Len(t, *captured, 1)
	diags := (*captured)[0].Diagnostics
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, sourceLint, *d.Source)
	assert.Equal(t, "unused-variable", d.Code.Value)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *d.Severity)
	assert.Equal(t, "unused variable: unused", d.Message)
	assert.Equal(t, lspRange(1, 1, 4), d.Range)
}

func TestDiagnosticsWithoutAnalyzers(t *testing.T) {
	s := testServer(t, WithAnalyzers(nil))
	ctx, captured := capturingContext()

	didOpen(t, s, ctx, "func main() {\n\tvar unused: int = 1;\n}\n")
	require.Len(t, *captured, 1)
	assert.Empty(t, (*captured)[0].Diagnostics)
}

func TestDiagnosticsOnClose_Cleared(t *testing.T) {
	s := testServer(t)
	openCtx, _ := capturingContext()
	didOpen(t, s, openCtx, "var x: int = ;")

	closeCtx, closeCaptured := capturingContext()
	s.captureNotify(closeCtx)
	err := s.textDocumentDidClose(closeCtx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.Len(t, *closeCaptured, 1)
	assert.Empty(t, (*closeCaptured)[0].Diagnostics, "close should clear diagnostics")
	assert.Nil(t, s.docs.Get(testURI), "document should be removed from store")
}

func TestDiagnosticsOnSave_Immediate(t *testing.T) {
	s := testServer(t)
	ctx, captured := capturingContext()
	didOpen(t, s, ctx, testSource)

	before := len(*captured)
	err := s.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	assert.Greater(t, len(*captured), before, "save should trigger immediate diagnostics publish")
}

func TestDiagnosticsOnChange_Debounced(t *testing.T) {
	s := testServer(t)
	ctx, published := channelContext()
	didOpen(t, s, ctx, testSource)
	first := <-published
	assert.Empty(t, first.Diagnostics)

	err := s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "var x: int = true + 1;"},
		},
	})
	require.NoError(t, err)

	select {
	case pub := <-published:
		require.Len(t, pub.Diagnostics, 1)
		assert.Equal(t, "E0013", pub.Diagnostics[0].Code.Value)
	case <-time.After(5 * time.Second):
		t.Fatal("no diagnostics published after change")
	}
}

// --- Navigation tests ---

func TestHoverOnReference(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, testSource)

	hover, err := s.textDocumentHover(mockContext(), &protocol.HoverParams{
		TextDocumentPositionParams: docPosition(6, 10),
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content := hover.Contents.(protocol.MarkupContent)
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	assert.Contains(t, content.Value, "func add(int, int): int")
	assert.Contains(t, content.Value, "Declared on line 2")
}

func TestHoverOnDeclaration(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, testSource)

	hover, err := s.textDocumentHover(mockContext(), &protocol.HoverParams{
		TextDocumentPositionParams: docPosition(2, 6),
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	value := hover.Contents.(protocol.MarkupContent).Value
	assert.Contains(t, value, "var sum: int")
	assert.Contains(t, value, "Local to function scope")

	hover, err = s.textDocumentHover(mockContext(), &protocol.HoverParams{
		TextDocumentPositionParams: docPosition(1, 9),
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents.(protocol.MarkupContent).Value, "param a: int")
}

func TestHoverOnTypeName(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, testSource)

	hover, err := s.textDocumentHover(mockContext(), &protocol.HoverParams{
		TextDocumentPositionParams: docPosition(0, 12),
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents.(protocol.MarkupContent).Value, "Built-in type")
}

func TestHoverOnEmpty(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, testSource)

	hover, err := s.textDocumentHover(mockContext(), &protocol.HoverParams{
		TextDocumentPositionParams: docPosition(4, 0),
	})
	require.NoError(t, err)
	assert.Nil(t, hover)

	hover, err = s.textDocumentHover(mockContext(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///unknown.iota"},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestDefinition(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, testSource)

	result, err := s.textDocumentDefinition(mockContext(), &protocol.DefinitionParams{
		TextDocumentPositionParams: docPosition(7, 8),
	})
	require.NoError(t, err)
	loc, ok := result.(protocol.Location)
	require.True(t, ok, "definition should be a Location, got %T", result)
	assert.Equal(t, testURI, loc.URI)
	assert.Equal(t, lspRange(0, 4, 9), loc.Range)

	result, err = s.textDocumentDefinition(mockContext(), &protocol.DefinitionParams{
		TextDocumentPositionParams: docPosition(3, 9),
	})
	require.NoError(t, err)
	assert.Equal(t, lspRange(2, 5, 8), result.(protocol.Location).Range)
}

func TestDefinitionNothingUnderCursor(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, testSource)

	result, err := s.textDocumentDefinition(mockContext(), &protocol.DefinitionParams{
		TextDocumentPositionParams: docPosition(4, 0),
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReferences(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, testSource)

	locs, err := s.textDocumentReferences(mockContext(), &protocol.ReferenceParams{
		TextDocumentPositionParams: docPosition(0, 5),
		Context:                    protocol.ReferenceContext{IncludeDeclaration: true},
	})
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, lspRange(0, 4, 9), locs[0].Range)
	assert.Equal(t, lspRange(6, 1, 6), locs[1].Range)
	assert.Equal(t, lspRange(7, 7, 12), locs[2].Range)
}

func TestReferencesExcludeDeclaration(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, testSource)

	locs, err := s.textDocumentReferences(mockContext(), &protocol.ReferenceParams{
		TextDocumentPositionParams: docPosition(1, 17),
		Context:                    protocol.ReferenceContext{IncludeDeclaration: false},
	})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, lspRange(2, 20, 21), locs[0].Range)
}

func TestDocumentSymbols(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, testSource)

	result, err := s.textDocumentDocumentSymbol(mockContext(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok, "expected []DocumentSymbol, got %T", result)
	require.Len(t, symbols, 3)

	names := make([]string, len(symbols))
	for i, sym := range symbols {
		names[i] = sym.Name
	}
	assert.Equal(t, []string{"total", "add", "main"}, names)

	add := symbols[1]
	assert.Equal(t, protocol.SymbolKindFunction, add.Kind)
	assert.Equal(t, "func add(int, int): int", *add.Detail)
	assert.Equal(t, lspRange(1, 5, 8), add.SelectionRange)
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, add.Range.Start)

	var children []string
	for _, c := range add.Children {
		children = append(children, c.Name)
	}
	assert.Equal(t, []string{"a", "b", "sum"}, children)
	assert.Empty(t, symbols[2].Children)
	assert.Equal(t, protocol.SymbolKindVariable, symbols[0].Kind)
}

func TestDocumentSymbolsNestedFunction(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, "func outer() {\n\tconst k: int = 1;\n\tfunc inner(): int { return k; }\n\tprint(inner());\n}\n")

	result, err := s.textDocumentDocumentSymbol(mockContext(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	symbols := result.([]protocol.DocumentSymbol)
	require.Len(t, symbols, 1)
	require.Len(t, symbols[0].Children, 2)
	assert.Equal(t, "k", symbols[0].Children[0].Name)
	assert.Equal(t, protocol.SymbolKindConstant, symbols[0].Children[0].Kind)
	assert.Equal(t, "inner", symbols[0].Children[1].Name)
	assert.Equal(t, lspRange(2, 6, 11), symbols[0].Children[1].SelectionRange)
}

func TestDocumentSymbolsAnalysisError(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, "var x: int = ;")

	result, err := s.textDocumentDocumentSymbol(mockContext(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func completionLabels(t *testing.T, result any) []string {
	t.Helper()
	items, ok := result.([]protocol.CompletionItem)
	require.True(t, ok, "completion result should be []CompletionItem, got %T", result)
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

func TestCompletion(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, testSource)

	result, err := s.textDocumentCompletion(mockContext(), &protocol.CompletionParams{
		TextDocumentPositionParams: docPosition(6, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"total"}, completionLabels(t, result))

	result, err = s.textDocumentCompletion(mockContext(), &protocol.CompletionParams{
		TextDocumentPositionParams: docPosition(4, 0),
	})
	require.NoError(t, err)
	labels := completionLabels(t, result)
	assert.Len(t, labels, 16)
	assert.Contains(t, labels, "while")
	assert.Contains(t, labels, "float")
	assert.Contains(t, labels, "add")
	assert.NotContains(t, labels, "untyped")
}

func TestCompletionWithoutAnalysis(t *testing.T) {
	s := testServer(t)
	openDoc(s, testURI, "func main() {\n\twh\n}\n")

	result, err := s.textDocumentCompletion(mockContext(), &protocol.CompletionParams{
		TextDocumentPositionParams: docPosition(1, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"while"}, completionLabels(t, result))
}

// --- Lifecycle tests ---

func TestExitHandler(t *testing.T) {
	s := testServer(t)
	var exitCode int
	var exitCalled bool
	s.exitFn = func(code int) {
		exitCode = code
		exitCalled = true
	}

	err := s.exit(mockContext())
	require.NoError(t, err)
	assert.True(t, exitCalled, "exit handler should call exitFn")
	assert.Equal(t, 0, exitCode, "exit should call with code 0")
}

func TestInitializeLifecycle(t *testing.T) {
	s := testServer(t)

	rootURI := "file:///workspace"
	result, err := s.initialize(mockContext(), &protocol.InitializeParams{
		RootURI: &rootURI,
	})
	require.NoError(t, err)

	initResult, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	require.NotNil(t, initResult.ServerInfo)
	assert.Equal(t, serverName, initResult.ServerInfo.Name)
	assert.Equal(t, "/workspace", s.rootPath)
	assert.NotNil(t, initResult.Capabilities.HoverProvider)
	assert.NotNil(t, initResult.Capabilities.DocumentSymbolProvider)

	require.NoError(t, s.setTrace(mockContext(), &protocol.SetTraceParams{}))
	require.NoError(t, s.shutdown(mockContext()))
}

func TestShutdownCancelsPendingAnalysis(t *testing.T) {
	s := testServer(t)
	ctx, published := channelContext()
	didOpen(t, s, ctx, testSource)
	<-published

	err := s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "var x: int = ;"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, s.shutdown(ctx))

	select {
	case <-published:
		t.Fatal("diagnostics published after shutdown")
	case <-time.After(2 * debounceDelay):
	}
}
