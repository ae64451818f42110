// Copyright © 2026 The iota authors

package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse("test.iota", []byte(src))
	require.NoError(t, err)
	return prog
}

func TestParse_Empty(t *testing.T) {
	prog := mustParse(t, "  // nothing here\n")
	assert.Empty(t, prog.Decls)
}

func TestParse_VarDecl(t *testing.T) {
	prog := mustParse(t, "var x: int = 1;\nconst k: float;")
	require.Len(t, prog.Decls, 2)

	x := prog.Decls[0].(*ast.VarDecl)
	assert.False(t, x.Const)
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, types.Int, x.Type)
	require.IsType(t, &ast.IntLit{}, x.Init)
	assert.Equal(t, int64(1), x.Init.(*ast.IntLit).Value)
	assert.Equal(t, ast.Pos{Line: 1, Col: 1}, x.Pos)

	k := prog.Decls[1].(*ast.VarDecl)
	assert.True(t, k.Const)
	assert.Equal(t, types.Float, k.Type)
	assert.Nil(t, k.Init)
	assert.Equal(t, ast.Pos{Line: 2, Col: 1}, k.Pos)
}

func TestParse_FuncDecl(t *testing.T) {
	prog := mustParse(t, `
func add(a: int, b: float): float {
	return a + b;
}
func noop() {}
`)
	require.Len(t, prog.Decls, 2)

	add := prog.Decls[0].(*ast.FuncDecl)
	assert.Equal(t, "add", add.Name)
	assert.Equal(t, []types.DataType{types.Int, types.Float}, add.ParamTypes())
	assert.Equal(t, types.Float, add.Result)
	require.Len(t, add.Body, 1)
	ret := add.Body[0].(*ast.ReturnStmt)
	bin := ret.Value.(*ast.Binary)
	assert.Equal(t, ast.OpAdd, bin.Op)
	assert.Equal(t, ast.Pos{Line: 3, Col: 11}, bin.Pos)

	noop := prog.Decls[1].(*ast.FuncDecl)
	assert.Empty(t, noop.Params)
	assert.Equal(t, types.Untyped, noop.Result)
	assert.Empty(t, noop.Body)
}

func TestParse_Precedence(t *testing.T) {
	prog := mustParse(t, "var b: bool = 1 + 2 * 3 < 4 == true;")
	init := prog.Decls[0].(*ast.VarDecl).Init

	eq := init.(*ast.Binary)
	assert.Equal(t, ast.OpEQ, eq.Op)
	lt := eq.Left.(*ast.Binary)
	assert.Equal(t, ast.OpLT, lt.Op)
	add := lt.Left.(*ast.Binary)
	assert.Equal(t, ast.OpAdd, add.Op)
	mul := add.Right.(*ast.Binary)
	assert.Equal(t, ast.OpMul, mul.Op)
	assert.IsType(t, &ast.BoolLit{}, eq.Right)
}

func TestParse_LeftAssociative(t *testing.T) {
	prog := mustParse(t, "var x: int = 10 - 4 - 3;")
	outer := prog.Decls[0].(*ast.VarDecl).Init.(*ast.Binary)
	inner := outer.Left.(*ast.Binary)
	assert.Equal(t, int64(10), inner.Left.(*ast.IntLit).Value)
	assert.Equal(t, int64(3), outer.Right.(*ast.IntLit).Value)
}

func TestParse_UnaryAndParens(t *testing.T) {
	prog := mustParse(t, "var x: float = -(1.5 * -2);")
	neg := prog.Decls[0].(*ast.VarDecl).Init.(*ast.Unary)
	assert.Equal(t, ast.OpNeg, neg.Op)
	mul := neg.Operand.(*ast.Binary)
	assert.Equal(t, 1.5, mul.Left.(*ast.FloatLit).Value)
	assert.IsType(t, &ast.Unary{}, mul.Right)
}

func TestParse_Statements(t *testing.T) {
	prog := mustParse(t, `
func main() {
	var i: int = 0;
	while (i < 3) {
		print(i);
		i = i + 1;
	}
	if (i == 3) {
		f(i, 2.0);
	} else if (false) {
		return;
	} else {
		{ print(0); }
	}
}
`)
	body := prog.Decls[0].(*ast.FuncDecl).Body
	require.Len(t, body, 3)
	assert.IsType(t, &ast.VarDecl{}, body[0])

	loop := body[1].(*ast.WhileStmt)
	require.Len(t, loop.Body, 2)
	assert.IsType(t, &ast.PrintStmt{}, loop.Body[0])
	assign := loop.Body[1].(*ast.AssignStmt)
	assert.Equal(t, "i", assign.Name)

	ifs := body[2].(*ast.IfStmt)
	call := ifs.Then[0].(*ast.ExprStmt).X.(*ast.Call)
	assert.Equal(t, "f", call.Name)
	assert.Len(t, call.Args, 2)
	require.Len(t, ifs.Else, 1)
	elseIf := ifs.Else[0].(*ast.IfStmt)
	ret := elseIf.Then[0].(*ast.ReturnStmt)
	assert.Nil(t, ret.Value)
	assert.IsType(t, &ast.BlockStmt{}, elseIf.Else[0])
}

func TestParse_KeywordsAreNotIdentifiers(t *testing.T) {
	_, err := Parse("", []byte("var if: int;"))
	require.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		col  int
		msg  string
	}{
		{"missing semicolon", "var x: int = 1\nvar y: int;", 2, 1, "';'"},
		{"bad type", "var x: string;", 1, 8, "type"},
		{"statement at top level", "print(1);", 1, 1, "'func'"},
		{"unclosed block", "func f() {\n\tprint(1);\n", 3, 1, "'}'"},
		{"stray character", "func f() { @ }", 1, 12, "found '@'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.iota", []byte(tt.src))
			require.Error(t, err)
			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "bad.iota", perr.File)
			assert.Equal(t, tt.line, perr.Line, perr.Error())
			assert.Equal(t, tt.col, perr.Col, perr.Error())
			assert.Contains(t, perr.Msg, tt.msg)
			assert.True(t, strings.HasPrefix(err.Error(), "bad.iota:"))
		})
	}
}

func TestParse_IntegerOverflow(t *testing.T) {
	_, err := Parse("", []byte("var x: int = 99999999999999999999;"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestParseItems(t *testing.T) {
	items, err := ParseItems("<repl>", []byte("var x: int = 2; print(x * x); return;"))
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.IsType(t, &ast.VarDecl{}, items[0])
	assert.IsType(t, &ast.PrintStmt{}, items[1])
	assert.IsType(t, &ast.ReturnStmt{}, items[2])
}

func TestParseReader(t *testing.T) {
	prog, err := ParseReader("r.iota", strings.NewReader("func f() {}"))
	require.NoError(t, err)
	assert.Len(t, prog.Decls, 1)
}

func TestStripComments(t *testing.T) {
	in := "a // b\n// c\nd / e"
	out := string(stripComments([]byte(in)))
	assert.Equal(t, len(in), len(out))
	assert.Equal(t, "a     \n    \nd / e", out)
}

func TestError_Incomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"func f() {", true},
		{"var x: int = 1 +", true},
		{"print(", true},
		{"var x: int = ;", false},
		{"func f() { ) }", false},
	}
	for _, tt := range tests {
		_, err := ParseItems("<repl>", []byte(tt.src))
		var perr *Error
		require.True(t, errors.As(err, &perr), "%q: %v", tt.src, err)
		assert.Equal(t, tt.want, perr.Incomplete(), "%q: %s", tt.src, perr.Msg)
	}
}

func TestKeywords(t *testing.T) {
	kws := Keywords()
	assert.Equal(t, []string{"const", "else", "false", "func", "if", "print", "return", "true", "var", "while"}, kws)
	for _, kw := range kws {
		_, err := Parse("test.iota", []byte("var "+kw+": int;"))
		assert.Error(t, err, kw)
	}
}
