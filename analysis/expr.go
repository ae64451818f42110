// Copyright © 2026 The iota authors

package analysis

import (
	"fmt"

	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/types"
)

// expr computes the type of e and records it on the node.  Operands and
// arguments are analyzed left to right before the node itself is checked.
func (a *analyzer) expr(e ast.Expr) (types.DataType, error) {
	typ, err := a.exprType(e)
	if err != nil {
		return types.Untyped, err
	}
	e.SetDataType(typ)
	return typ, nil
}

func (a *analyzer) exprType(e ast.Expr) (types.DataType, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return types.Int, nil
	case *ast.FloatLit:
		return types.Float, nil
	case *ast.BoolLit:
		return types.Bool, nil
	case *ast.Ident:
		return a.ident(n)
	case *ast.Binary:
		return a.binary(n)
	case *ast.Unary:
		return a.unary(n)
	case *ast.Call:
		return a.call(n)
	default:
		panic(fmt.Sprintf("analysis: unexpected expression %T", e))
	}
}

func (a *analyzer) ident(n *ast.Ident) (types.DataType, error) {
	sym := a.st.scope.Lookup(n.Name)
	if sym == nil {
		return types.Untyped, newError(UndeclaredIdentifier, NameContext{Name: n.Name}, n.Pos)
	}
	if sym.Kind == SymFunction {
		return types.Untyped, newError(FunctionUsedAsVariable, NameContext{Name: n.Name}, n.Pos)
	}
	a.reference(n.Name, n.Pos, sym, false)
	return sym.Type, nil
}

func (a *analyzer) binary(n *ast.Binary) (types.DataType, error) {
	left, err := a.expr(n.Left)
	if err != nil {
		return types.Untyped, err
	}
	right, err := a.expr(n.Right)
	if err != nil {
		return types.Untyped, err
	}
	invalid := func() error {
		return newError(InvalidBinaryOperation, OperationContext{
			Op:    n.Op,
			Left:  left,
			Right: right,
		}, n.Pos)
	}
	switch {
	case n.Op.IsArithmetic():
		if !types.IsNumeric(left) || !types.IsNumeric(right) {
			return types.Untyped, invalid()
		}
		return types.ArithmeticResult(left, right), nil
	case n.Op.IsOrdering():
		if !types.IsNumeric(left) || !types.IsNumeric(right) {
			return types.Untyped, invalid()
		}
		return types.Bool, nil
	case n.Op.IsEquality():
		// Equality needs identical types; int == float is rejected.
		if left != right {
			return types.Untyped, invalid()
		}
		return types.Bool, nil
	default:
		return types.Untyped, invalid()
	}
}

func (a *analyzer) unary(n *ast.Unary) (types.DataType, error) {
	operand, err := a.expr(n.Operand)
	if err != nil {
		return types.Untyped, err
	}
	if n.Op != ast.OpNeg || !types.IsNumeric(operand) {
		return types.Untyped, newError(InvalidUnaryOperation, ActualTypeContext{Actual: operand}, n.Pos)
	}
	return operand, nil
}

func (a *analyzer) call(n *ast.Call) (types.DataType, error) {
	sym := a.st.scope.Lookup(n.Name)
	if sym == nil {
		return types.Untyped, newError(UndeclaredFunction, NameContext{Name: n.Name}, n.Pos)
	}
	if sym.Kind != SymFunction {
		return types.Untyped, newError(NotAFunction, NameContext{Name: n.Name}, n.Pos)
	}
	if len(n.Args) != len(sym.Params) {
		return types.Untyped, newError(WrongNumberOfArguments, ArgCountContext{
			Function: n.Name,
			Expected: len(sym.Params),
			Actual:   len(n.Args),
		}, n.Pos)
	}
	a.reference(n.Name, n.Pos, sym, false)
	actual := make([]types.DataType, 0, len(n.Args))
	for i, arg := range n.Args {
		typ, err := a.expr(arg)
		if err != nil {
			return types.Untyped, err
		}
		actual = append(actual, typ)
		if !types.IsAssignmentCompatible(sym.Params[i], typ) {
			return types.Untyped, newError(InvalidSignature, SignatureContext{
				Function: n.Name,
				Expected: sym.Params,
				Actual:   actual,
			}, arg.Position())
		}
	}
	return sym.Result, nil
}
