// Copyright © 2026 The iota authors

package analysis

import (
	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/types"
	"github.com/sirupsen/logrus"
)

// analyzer is the internal state for a single analysis run.
type analyzer struct {
	log    *logrus.Entry
	prof   Profiler
	result *Result
	st     state
}

// state is the part of the analyzer saved on entry to a function or block
// and restored on exit.  It is copied by value.
type state struct {
	scope *Scope
	// fn is the function being analyzed, nil at top level.
	fn          *Symbol
	returned    bool
	unreachable bool
}

func (a *analyzer) run(items []ast.Item) error {
	defer a.prof.Start("analyze")()

	// Pass 1: register top-level functions so that bodies can refer to
	// functions declared later in the source.
	a.log.WithField("items", len(items)).Debug("signature pass")
	for _, it := range items {
		fn, ok := it.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if err := a.checkRedeclared(fn.Name, fn.Pos); err != nil {
			return err
		}
		a.define(newFunction(fn))
	}

	// Pass 2: analyze every item in source order.
	a.log.Debug("body pass")
	for _, it := range items {
		if fn, ok := it.(*ast.FuncDecl); ok {
			if err := a.funcBody(fn, a.st.scope.LookupLocal(fn.Name)); err != nil {
				return err
			}
			continue
		}
		if err := a.item(it); err != nil {
			return err
		}
	}
	return nil
}

// checkRedeclared reports whether name may be declared in the current scope.
// The kind of the existing symbol selects the error.
func (a *analyzer) checkRedeclared(name string, pos ast.Pos) error {
	existing := a.st.scope.LookupLocal(name)
	if existing == nil {
		return nil
	}
	if existing.Kind == SymFunction {
		return newError(RedeclaredFunction, NameContext{Name: name}, pos)
	}
	return newError(RedeclaredIdentifier, NameContext{Name: name}, pos)
}

func (a *analyzer) define(sym *Symbol) {
	a.st.scope.Declare(sym)
	a.result.Symbols = append(a.result.Symbols, sym)
}

func (a *analyzer) reference(name string, pos ast.Pos, sym *Symbol, assign bool) {
	a.result.References = append(a.result.References, &Reference{
		Name:   name,
		Pos:    pos,
		Symbol: sym,
		Assign: assign,
	})
}

// funcBody analyzes the parameters and body of fn, whose symbol sym is
// already declared.
func (a *analyzer) funcBody(fn *ast.FuncDecl, sym *Symbol) error {
	defer a.prof.Start("func " + fn.Name)()
	log := a.log.WithField("func", fn.Name)
	log.Debug("analyzing function")

	saved := a.st
	a.st = state{
		scope: NewScope(ScopeFunction, saved.scope, fn),
		fn:    sym,
	}
	for _, p := range fn.Params {
		if err := a.checkRedeclared(p.Name, p.Pos); err != nil {
			return err
		}
		a.define(newParameter(p))
	}
	for _, it := range fn.Body {
		if err := a.item(it); err != nil {
			return err
		}
	}
	if fn.Result != types.Untyped && !pathsReturn(fn.Body) {
		return newError(MissingReturn, NameContext{Name: fn.Name}, fn.Pos)
	}
	log.WithField("returned", a.st.returned).Debug("function complete")
	a.st = saved
	return nil
}

// nestedFunc analyzes a function declared inside a body.  Nested functions
// are not registered ahead of their declaration, so they are visible only to
// their own body and to the items that follow them.
func (a *analyzer) nestedFunc(fn *ast.FuncDecl) error {
	if err := a.checkRedeclared(fn.Name, fn.Pos); err != nil {
		return err
	}
	sym := newFunction(fn)
	a.define(sym)
	return a.funcBody(fn, sym)
}

func (a *analyzer) varDecl(d *ast.VarDecl) error {
	if err := a.checkRedeclared(d.Name, d.Pos); err != nil {
		return err
	}
	if d.Init != nil {
		typ, err := a.expr(d.Init)
		if err != nil {
			return err
		}
		if !types.IsAssignmentCompatible(d.Type, typ) {
			return newError(VarDeclTypeMismatch, TypeMismatchContext{
				Name:     d.Name,
				Expected: d.Type,
				Actual:   typ,
			}, d.Init.Position())
		}
	}
	a.define(newVariable(d))
	return nil
}
