// Copyright © 2026 The iota authors

package analysis

import (
	"fmt"
	"testing"

	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/types"
	"github.com/stretchr/testify/assert"
)

func TestErrorKind_Codes(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 18)
	seen := make(map[string]bool)
	for i, k := range kinds {
		assert.Equal(t, fmt.Sprintf("E%04d", i+1), k.Code())
		assert.NotEqual(t, "unknown", k.String())
		assert.False(t, seen[k.String()], "duplicate name %s", k)
		seen[k.String()] = true
	}
	assert.Equal(t, "E0004", UnreachableCode.Code())
	assert.Equal(t, "invalid-signature", InvalidSignature.String())
	assert.Equal(t, "unknown", ErrorKind(0).String())
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"missing-return", "E0003", "e0003", " Missing-Return "} {
		k, ok := ParseKind(s)
		assert.True(t, ok, s)
		assert.Equal(t, MissingReturn, k, s)
	}
	_, ok := ParseKind("E0019")
	assert.False(t, ok)
	_, ok = ParseKind("")
	assert.False(t, ok)
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{newError(RedeclaredFunction, NameContext{"f"}, ast.Pos{}), "function 'f' is already declared"},
		{newError(RedeclaredIdentifier, NameContext{"x"}, ast.Pos{}), "identifier 'x' is already declared in this scope"},
		{newError(FunctionUsedAsVariable, NameContext{"f"}, ast.Pos{}), "function 'f' used as a variable"},
		{newError(VarAssignToConstant, NameContext{"k"}, ast.Pos{}), "cannot assign to constant 'k'"},
		{newError(UndeclaredFunction, NameContext{"g"}, ast.Pos{}), "undeclared function 'g'"},
		{newError(NotAFunction, NameContext{"v"}, ast.Pos{}), "'v' is not a function"},
		{newError(ReturnOutsideFunction, NoContext{}, ast.Pos{}), "return statement outside of a function"},
		{newError(VarAssignTypeMismatch, TypeMismatchContext{"x", types.Int, types.Float}, ast.Pos{}),
			"cannot assign a value of type float to 'x' of type int"},
		{newError(ReturnTypeMismatch, TypeMismatchContext{"f", types.Untyped, types.Int}, ast.Pos{}),
			"function 'f' does not return a value, got int"},
		{newError(ReturnTypeMismatch, TypeMismatchContext{"f", types.Bool, types.Float}, ast.Pos{}),
			"function 'f' returns bool, got float"},
		{newError(InvalidUnaryOperation, ActualTypeContext{types.Bool}, ast.Pos{}),
			"invalid operation: unary '-' on bool"},
		{newError(WrongNumberOfArguments, ArgCountContext{"h", 1, 0}, ast.Pos{}),
			"function 'h' expects 1 argument, got 0"},
		{newError(InvalidSignature, SignatureContext{"f", nil, nil}, ast.Pos{}),
			"invalid arguments to 'f': expected (), got ()"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
