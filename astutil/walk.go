// Copyright © 2026 The iota authors

// Package astutil provides shared syntax tree walking utilities.
//
// These helpers are used by the lint and lsp packages for traversing parsed
// iota programs.
package astutil

import (
	"fmt"

	"github.com/iotalang/iota/ast"
)

// Walk calls fn for every node in the tree, depth-first in source order.
// parent is nil for top-level items.  Returning false from fn skips the
// children of node.
func Walk(items []ast.Item, fn func(node ast.Node, parent ast.Node, depth int) bool) {
	for _, it := range items {
		walkItem(it, nil, 0, fn)
	}
}

// WalkProgram calls Walk over the declarations of prog.
func WalkProgram(prog *ast.Program, fn func(node ast.Node, parent ast.Node, depth int) bool) {
	Walk(Items(prog), fn)
}

// Items returns the declarations of prog as items.
func Items(prog *ast.Program) []ast.Item {
	items := make([]ast.Item, len(prog.Decls))
	for i, d := range prog.Decls {
		items[i] = d
	}
	return items
}

type walkFunc = func(ast.Node, ast.Node, int) bool

func walkItems(items []ast.Item, parent ast.Node, depth int, fn walkFunc) {
	for _, it := range items {
		walkItem(it, parent, depth, fn)
	}
}

func walkItem(it ast.Item, parent ast.Node, depth int, fn walkFunc) {
	if !fn(it, parent, depth) {
		return
	}
	switch n := it.(type) {
	case *ast.FuncDecl:
		walkItems(n.Body, n, depth+1, fn)
	case *ast.VarDecl:
		if n.Init != nil {
			walkExpr(n.Init, n, depth+1, fn)
		}
	case *ast.PrintStmt:
		walkExpr(n.Value, n, depth+1, fn)
	case *ast.IfStmt:
		walkExpr(n.Cond, n, depth+1, fn)
		walkItems(n.Then, n, depth+1, fn)
		walkItems(n.Else, n, depth+1, fn)
	case *ast.WhileStmt:
		walkExpr(n.Cond, n, depth+1, fn)
		walkItems(n.Body, n, depth+1, fn)
	case *ast.AssignStmt:
		walkExpr(n.Value, n, depth+1, fn)
	case *ast.ReturnStmt:
		if n.Value != nil {
			walkExpr(n.Value, n, depth+1, fn)
		}
	case *ast.ExprStmt:
		walkExpr(n.X, n, depth+1, fn)
	case *ast.BlockStmt:
		walkItems(n.Items, n, depth+1, fn)
	default:
		panic(fmt.Sprintf("astutil: unexpected item %T", it))
	}
}

func walkExpr(e ast.Expr, parent ast.Node, depth int, fn walkFunc) {
	if !fn(e, parent, depth) {
		return
	}
	switch n := e.(type) {
	case *ast.Binary:
		walkExpr(n.Left, n, depth+1, fn)
		walkExpr(n.Right, n, depth+1, fn)
	case *ast.Unary:
		walkExpr(n.Operand, n, depth+1, fn)
	case *ast.Call:
		for _, arg := range n.Args {
			walkExpr(arg, n, depth+1, fn)
		}
	}
}

// WalkExprs calls fn for every expression in the tree.
func WalkExprs(items []ast.Item, fn func(e ast.Expr, depth int)) {
	Walk(items, func(node ast.Node, _ ast.Node, depth int) bool {
		if e, ok := node.(ast.Expr); ok {
			fn(e, depth)
		}
		return true
	})
}

// NameAt returns the name under pos and the node that carries it: an
// identifier, a call, an assignment target, or a parameter (reported with
// its function).  The node is nil when no name covers pos.
func NameAt(items []ast.Item, pos ast.Pos) (name string, node ast.Node) {
	Walk(items, func(n ast.Node, _ ast.Node, _ int) bool {
		if node != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.Ident:
			if covers(n.Pos, n.Name, pos) {
				name, node = n.Name, n
			}
		case *ast.Call:
			if covers(n.Pos, n.Name, pos) {
				name, node = n.Name, n
			}
		case *ast.AssignStmt:
			if covers(n.Pos, n.Name, pos) {
				name, node = n.Name, n
			}
		case *ast.FuncDecl:
			for _, p := range n.Params {
				if covers(p.Pos, p.Name, pos) {
					name, node = p.Name, n
				}
			}
		}
		return true
	})
	return name, node
}

func covers(start ast.Pos, name string, pos ast.Pos) bool {
	return start.Line == pos.Line && pos.Col >= start.Col && pos.Col < start.Col+len(name)
}
