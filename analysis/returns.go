// Copyright © 2026 The iota authors

package analysis

import "github.com/iotalang/iota/ast"

// pathsReturn reports whether every path through items ends in a return.
// The check is structural: items must contain a return directly, an if with
// an else whose branches both satisfy pathsReturn, or a bare block that
// does.  Loops never count since their body may not run.
func pathsReturn(items []ast.Item) bool {
	for _, it := range items {
		switch n := it.(type) {
		case *ast.ReturnStmt:
			return true
		case *ast.IfStmt:
			if len(n.Else) > 0 && pathsReturn(n.Then) && pathsReturn(n.Else) {
				return true
			}
		case *ast.BlockStmt:
			if pathsReturn(n.Items) {
				return true
			}
		}
	}
	return false
}
