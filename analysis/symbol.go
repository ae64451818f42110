// Copyright © 2026 The iota authors

package analysis

import (
	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/types"
)

// SymbolKind classifies a symbol definition.
type SymbolKind int

const (
	SymVariable SymbolKind = iota // var, const, parameter
	SymFunction                   // func
)

func (k SymbolKind) String() string {
	switch k {
	case SymVariable:
		return "variable"
	case SymFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Symbol represents a declared name in a scope.  A symbol is created when its
// declaration is analyzed and is not modified afterwards.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Type     types.DataType // declared type; the result type for functions
	Constant bool
	Param    bool // function parameter

	// Params and Result describe the signature of a function symbol.
	Params []types.DataType
	Result types.DataType

	Source ast.Pos
	Scope  *Scope
}

func newVariable(d *ast.VarDecl) *Symbol {
	return &Symbol{
		Name:     d.Name,
		Kind:     SymVariable,
		Type:     d.Type,
		Constant: d.Const,
		Source:   d.Pos,
	}
}

func newParameter(p ast.Param) *Symbol {
	return &Symbol{
		Name:   p.Name,
		Kind:   SymVariable,
		Type:   p.Type,
		Param:  true,
		Source: p.Pos,
	}
}

func newFunction(d *ast.FuncDecl) *Symbol {
	return &Symbol{
		Name:   d.Name,
		Kind:   SymFunction,
		Type:   d.Result,
		Params: d.ParamTypes(),
		Result: d.Result,
		Source: d.Pos,
	}
}

// Describe renders the symbol the way it would be declared, e.g.
// "func f(int, float): bool" or "const k: float".
func (s *Symbol) Describe() string {
	switch {
	case s.Kind == SymFunction:
		return "func " + s.Name + ast.Signature(s.Params, s.Result)
	case s.Param:
		return "param " + s.Name + ": " + s.Type.String()
	case s.Constant:
		return "const " + s.Name + ": " + s.Type.String()
	default:
		return "var " + s.Name + ": " + s.Type.String()
	}
}
