// Copyright © 2026 The iota authors

package analysis

import "github.com/iotalang/iota/ast"

// ScopeKind classifies the kind of scope.
type ScopeKind int

const (
	ScopeGlobal   ScopeKind = iota // program level
	ScopeFunction                  // function body and parameters
	ScopeThen                      // if branch
	ScopeElse                      // else branch
	ScopeWhile                     // loop body
	ScopeBlock                     // bare braced block
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeThen:
		return "then"
	case ScopeElse:
		return "else"
	case ScopeWhile:
		return "while"
	case ScopeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Scope represents a lexical scope in the source.
type Scope struct {
	Kind     ScopeKind
	Parent   *Scope
	Children []*Scope
	Symbols  map[string]*Symbol
	Node     ast.Node // the node that introduced this scope; nil for global
}

// NewScope creates a new scope of the given kind with the given parent.
func NewScope(kind ScopeKind, parent *Scope, node ast.Node) *Scope {
	s := &Scope{
		Kind:    kind,
		Parent:  parent,
		Symbols: make(map[string]*Symbol),
		Node:    node,
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Declare adds sym to this scope.  It returns false, leaving the scope
// unchanged, if the name is already declared here.  Declarations in parent
// scopes do not conflict.
func (s *Scope) Declare(sym *Symbol) bool {
	if _, ok := s.Symbols[sym.Name]; ok {
		return false
	}
	sym.Scope = s
	s.Symbols[sym.Name] = sym
	return true
}

// Lookup resolves a symbol by walking the parent chain.
// Returns nil if the symbol is not found.
func (s *Scope) Lookup(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.Parent {
		if sym, ok := scope.Symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal resolves a symbol only in this scope (not parents).
func (s *Scope) LookupLocal(name string) *Symbol {
	return s.Symbols[name]
}
