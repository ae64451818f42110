// Copyright © 2026 The iota authors

package lsp

import (
	"sync"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/astutil"
	"github.com/iotalang/iota/parser"
)

// Document represents an open text document tracked by the LSP server.
type Document struct {
	mu      sync.Mutex
	URI     string
	Version int32
	Content string

	// fresh is set once items, analysis and err reflect Content.
	fresh    bool
	items    []ast.Item
	analysis *analysis.Result
	err      error // *parser.Error or *analysis.Error
}

// analyze parses and analyzes the content.  A syntax error leaves items
// nil; a semantic error keeps the items but no analysis result.  Callers
// hold d.mu.
func (d *Document) analyze(cfg *analysis.Config) {
	d.fresh = true
	d.items, d.analysis, d.err = nil, nil, nil

	prog, err := parser.Parse(uriToPath(d.URI), []byte(d.Content))
	if err != nil {
		d.err = err
		return
	}
	d.items = astutil.Items(prog)
	d.analysis, d.err = analysis.Analyze(prog, cfg)
}

// DocumentStore manages open documents with thread-safe access.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open adds a document to the store.
func (s *DocumentStore) Open(uri string, version int32, content string) *Document {
	doc := &Document{
		URI:     uri,
		Version: version,
		Content: content,
	}
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Change replaces a document's content (full sync).  The analysis is
// rebuilt on next request.
func (s *DocumentStore) Change(uri string, version int32, content string) *Document {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &Document{URI: uri}
		s.docs[uri] = doc
	}
	s.mu.Unlock()

	doc.mu.Lock()
	doc.Version = version
	doc.Content = content
	doc.fresh = false
	doc.mu.Unlock()
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Get retrieves a document by URI. Returns nil if not found.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}
