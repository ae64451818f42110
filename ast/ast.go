// Copyright © 2026 The iota authors

// Package ast declares the syntax tree consumed by semantic analysis.
//
// Node families are sealed: expressions implement Expr, statements implement
// Stmt, declarations implement Decl, and both statements and declarations
// implement Item, the element type of every body.  Code that dispatches on a
// family uses a type switch over the concrete types declared here.
package ast

import "github.com/iotalang/iota/types"

// Pos is a 1-based source position.  The zero Pos means the node was not
// produced from source text.
type Pos struct {
	Line int
	Col  int
}

// Position returns p.  Nodes embed Pos, so every node has a Position method.
func (p Pos) Position() Pos { return p }

// IsValid reports whether p refers to a source location.
func (p Pos) IsValid() bool { return p.Line > 0 }

// Node is implemented by every syntax tree node.
type Node interface {
	Position() Pos
}

// TypeSlot holds the type analysis resolves for an expression.
type TypeSlot struct {
	typ types.DataType
}

// DataType returns the resolved type, or types.Untyped before analysis.
func (s *TypeSlot) DataType() types.DataType { return s.typ }

// SetDataType records the resolved type.
func (s *TypeSlot) SetDataType(t types.DataType) { s.typ = t }

// Expr is an expression node.
type Expr interface {
	Node
	DataType() types.DataType
	SetDataType(types.DataType)
	exprNode()
}

// Item is anything that may appear in a body: a declaration or a statement.
type Item interface {
	Node
	itemNode()
}

// Decl is a function or variable declaration.
type Decl interface {
	Item
	declNode()
}

// Stmt is a statement.
type Stmt interface {
	Item
	stmtNode()
}

// Op is a unary or binary operator spelling.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpLT  Op = "<"
	OpGT  Op = ">"
	OpLE  Op = "<="
	OpGE  Op = ">="
	OpEQ  Op = "=="
	OpNE  Op = "!="
	OpNeg Op = "-"
)

// IsArithmetic reports whether op is one of + - * /.
func (op Op) IsArithmetic() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// IsOrdering reports whether op is one of < > <= >=.
func (op Op) IsOrdering() bool {
	switch op {
	case OpLT, OpGT, OpLE, OpGE:
		return true
	}
	return false
}

// IsEquality reports whether op is == or !=.
func (op Op) IsEquality() bool {
	return op == OpEQ || op == OpNE
}

// Expressions.

type (
	IntLit struct {
		Pos
		TypeSlot
		Value int64
	}

	FloatLit struct {
		Pos
		TypeSlot
		Value float64
	}

	BoolLit struct {
		Pos
		TypeSlot
		Value bool
	}

	Ident struct {
		Pos
		TypeSlot
		Name string
	}

	Binary struct {
		Pos
		TypeSlot
		Op    Op
		Left  Expr
		Right Expr
	}

	Unary struct {
		Pos
		TypeSlot
		Op      Op
		Operand Expr
	}

	Call struct {
		Pos
		TypeSlot
		Name string
		Args []Expr
	}
)

func (*IntLit) exprNode()   {}
func (*FloatLit) exprNode() {}
func (*BoolLit) exprNode()  {}
func (*Ident) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Unary) exprNode()    {}
func (*Call) exprNode()     {}

// Statements.

type (
	PrintStmt struct {
		Pos
		Value Expr
	}

	// IfStmt has an else branch when Else is non-empty.
	IfStmt struct {
		Pos
		Cond Expr
		Then []Item
		Else []Item
	}

	WhileStmt struct {
		Pos
		Cond Expr
		Body []Item
	}

	AssignStmt struct {
		Pos
		Name  string
		Value Expr
	}

	// ReturnStmt has a nil Value for a bare return.
	ReturnStmt struct {
		Pos
		Value Expr
	}

	// ExprStmt evaluates an expression, typically a call, for its effect.
	ExprStmt struct {
		Pos
		X Expr
	}

	// BlockStmt is a braced item sequence nested directly in a body.
	BlockStmt struct {
		Pos
		Items []Item
	}
)

func (*PrintStmt) itemNode()  {}
func (*IfStmt) itemNode()     {}
func (*WhileStmt) itemNode()  {}
func (*AssignStmt) itemNode() {}
func (*ReturnStmt) itemNode() {}
func (*ExprStmt) itemNode()   {}
func (*BlockStmt) itemNode()  {}

func (*PrintStmt) stmtNode()  {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*AssignStmt) stmtNode() {}
func (*ReturnStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
func (*BlockStmt) stmtNode()  {}

// Declarations.

// Param is a function parameter.
type Param struct {
	Pos
	Name string
	Type types.DataType
}

type (
	// FuncDecl declares a function.  Result is types.Untyped for a function
	// that returns no value.
	FuncDecl struct {
		Pos
		Name   string
		Params []Param
		Result types.DataType
		Body   []Item
	}

	// VarDecl declares a variable, or a constant when Const is set.  Init is
	// nil when the declaration has no initializer.
	VarDecl struct {
		Pos
		Const bool
		Name  string
		Type  types.DataType
		Init  Expr
	}
)

func (*FuncDecl) itemNode() {}
func (*VarDecl) itemNode()  {}
func (*FuncDecl) declNode() {}
func (*VarDecl) declNode()  {}

// ParamTypes returns the declared parameter types in order.
func (f *FuncDecl) ParamTypes() []types.DataType {
	ts := make([]types.DataType, len(f.Params))
	for i, p := range f.Params {
		ts[i] = p.Type
	}
	return ts
}

// Program is the root of a syntax tree.
type Program struct {
	Decls []Decl
}
