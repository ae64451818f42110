// Copyright © 2026 The iota authors

package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iotalang/iota/types"
)

// Fprint writes an indented dump of prog to w.  Expressions are followed by
// their resolved type, so a dump taken after analysis shows the annotations.
func Fprint(w io.Writer, prog *Program) error {
	p := &printer{w: w}
	p.line(0, "Program")
	for _, d := range prog.Decls {
		p.item(1, d)
	}
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *printer) items(depth int, label string, items []Item) {
	p.line(depth, "%s", label)
	for _, it := range items {
		p.item(depth+1, it)
	}
}

func (p *printer) item(depth int, it Item) {
	switch n := it.(type) {
	case *FuncDecl:
		p.line(depth, "FuncDecl %s%s", n.Name, Signature(n.ParamTypes(), n.Result))
		for _, param := range n.Params {
			p.line(depth+1, "Param %s: %s", param.Name, param.Type)
		}
		p.items(depth+1, "Body", n.Body)
	case *VarDecl:
		kw := "var"
		if n.Const {
			kw = "const"
		}
		p.line(depth, "VarDecl %s %s: %s", kw, n.Name, n.Type)
		if n.Init != nil {
			p.expr(depth+1, n.Init)
		}
	case *PrintStmt:
		p.line(depth, "Print")
		p.expr(depth+1, n.Value)
	case *IfStmt:
		p.line(depth, "If")
		p.expr(depth+1, n.Cond)
		p.items(depth+1, "Then", n.Then)
		if len(n.Else) > 0 {
			p.items(depth+1, "Else", n.Else)
		}
	case *WhileStmt:
		p.line(depth, "While")
		p.expr(depth+1, n.Cond)
		p.items(depth+1, "Body", n.Body)
	case *AssignStmt:
		p.line(depth, "Assign %s", n.Name)
		p.expr(depth+1, n.Value)
	case *ReturnStmt:
		p.line(depth, "Return")
		if n.Value != nil {
			p.expr(depth+1, n.Value)
		}
	case *ExprStmt:
		p.line(depth, "ExprStmt")
		p.expr(depth+1, n.X)
	case *BlockStmt:
		p.items(depth, "Block", n.Items)
	default:
		panic(fmt.Sprintf("ast: unexpected item %T", it))
	}
}

func (p *printer) expr(depth int, e Expr) {
	switch n := e.(type) {
	case *IntLit:
		p.line(depth, "Int %d : %s", n.Value, n.DataType())
	case *FloatLit:
		p.line(depth, "Float %s : %s", strconv.FormatFloat(n.Value, 'g', -1, 64), n.DataType())
	case *BoolLit:
		p.line(depth, "Bool %t : %s", n.Value, n.DataType())
	case *Ident:
		p.line(depth, "Ident %s : %s", n.Name, n.DataType())
	case *Binary:
		p.line(depth, "Binary %s : %s", n.Op, n.DataType())
		p.expr(depth+1, n.Left)
		p.expr(depth+1, n.Right)
	case *Unary:
		p.line(depth, "Unary %s : %s", n.Op, n.DataType())
		p.expr(depth+1, n.Operand)
	case *Call:
		p.line(depth, "Call %s : %s", n.Name, n.DataType())
		for _, arg := range n.Args {
			p.expr(depth+1, arg)
		}
	default:
		panic(fmt.Sprintf("ast: unexpected expression %T", e))
	}
}

// Signature renders a parameter list and result the way they are written in
// source, e.g. "(int, float): bool".  An Untyped result is omitted.
func Signature(params []types.DataType, result types.DataType) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(TypeList(params))
	sb.WriteString(")")
	if result != types.Untyped {
		sb.WriteString(": ")
		sb.WriteString(result.String())
	}
	return sb.String()
}

// TypeList renders ts separated by commas.
func TypeList(ts []types.DataType) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
