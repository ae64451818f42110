// Copyright © 2026 The iota authors

package analysis

import (
	"fmt"

	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/types"
)

// item analyzes one element of a body.  Any item reached after a return on
// the same path is an error.
func (a *analyzer) item(it ast.Item) error {
	if a.st.unreachable {
		return newError(UnreachableCode, NoContext{}, it.Position())
	}
	switch n := it.(type) {
	case *ast.FuncDecl:
		return a.nestedFunc(n)
	case *ast.VarDecl:
		return a.varDecl(n)
	case *ast.PrintStmt:
		_, err := a.expr(n.Value)
		return err
	case *ast.ExprStmt:
		_, err := a.expr(n.X)
		return err
	case *ast.AssignStmt:
		return a.assign(n)
	case *ast.ReturnStmt:
		return a.ret(n)
	case *ast.IfStmt:
		return a.ifStmt(n)
	case *ast.WhileStmt:
		return a.whileStmt(n)
	case *ast.BlockStmt:
		// A bare block always executes, so its end state carries over.
		return a.block(ScopeBlock, n, n.Items)
	default:
		panic(fmt.Sprintf("analysis: unexpected item %T", it))
	}
}

// block analyzes items in a new child scope.  The reachability state at the
// end of the block is left in place for the caller to keep or discard.
func (a *analyzer) block(kind ScopeKind, node ast.Node, items []ast.Item) error {
	parent := a.st.scope
	a.st.scope = NewScope(kind, parent, node)
	for _, it := range items {
		if err := a.item(it); err != nil {
			return err
		}
	}
	a.st.scope = parent
	return nil
}

func (a *analyzer) assign(n *ast.AssignStmt) error {
	sym := a.st.scope.Lookup(n.Name)
	switch {
	case sym == nil:
		return newError(UndeclaredIdentifier, NameContext{Name: n.Name}, n.Pos)
	case sym.Kind == SymFunction:
		return newError(FunctionUsedAsVariable, NameContext{Name: n.Name}, n.Pos)
	case sym.Constant:
		return newError(VarAssignToConstant, NameContext{Name: n.Name}, n.Pos)
	}
	a.reference(n.Name, n.Pos, sym, true)
	typ, err := a.expr(n.Value)
	if err != nil {
		return err
	}
	if !types.IsAssignmentCompatible(sym.Type, typ) {
		return newError(VarAssignTypeMismatch, TypeMismatchContext{
			Name:     n.Name,
			Expected: sym.Type,
			Actual:   typ,
		}, n.Value.Position())
	}
	return nil
}

func (a *analyzer) ret(n *ast.ReturnStmt) error {
	fn := a.st.fn
	if fn == nil {
		return newError(ReturnOutsideFunction, NoContext{}, n.Pos)
	}
	actual := types.Untyped
	pos := n.Pos
	if n.Value != nil {
		typ, err := a.expr(n.Value)
		if err != nil {
			return err
		}
		actual, pos = typ, n.Value.Position()
	}
	if !types.IsAssignmentCompatible(fn.Result, actual) {
		return newError(ReturnTypeMismatch, TypeMismatchContext{
			Name:     fn.Name,
			Expected: fn.Result,
			Actual:   actual,
		}, pos)
	}
	a.st.returned = true
	a.st.unreachable = true
	return nil
}

// condition checks that e has exactly type bool.
func (a *analyzer) condition(e ast.Expr) error {
	typ, err := a.expr(e)
	if err != nil {
		return err
	}
	if typ != types.Bool {
		return newError(ConditionNotBool, ActualTypeContext{Actual: typ}, e.Position())
	}
	return nil
}

func (a *analyzer) ifStmt(n *ast.IfStmt) error {
	if err := a.condition(n.Cond); err != nil {
		return err
	}
	before := a.st.unreachable
	if err := a.block(ScopeThen, n, n.Then); err != nil {
		return err
	}
	thenDead := a.st.unreachable
	a.st.unreachable = before
	if len(n.Else) == 0 {
		return nil
	}
	if err := a.block(ScopeElse, n, n.Else); err != nil {
		return err
	}
	elseDead := a.st.unreachable
	if thenDead && elseDead {
		a.st.unreachable = true
	} else {
		a.st.unreachable = before
	}
	return nil
}

// whileStmt never leaves the state dead: the body may run zero times.
func (a *analyzer) whileStmt(n *ast.WhileStmt) error {
	if err := a.condition(n.Cond); err != nil {
		return err
	}
	before := a.st.unreachable
	if err := a.block(ScopeWhile, n, n.Body); err != nil {
		return err
	}
	a.st.unreachable = before
	return nil
}
