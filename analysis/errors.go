// Copyright © 2026 The iota authors

package analysis

import (
	"fmt"
	"strings"

	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/types"
)

// ErrorKind identifies the semantic rule a program violated.
type ErrorKind int

const (
	RedeclaredFunction ErrorKind = iota + 1
	RedeclaredIdentifier
	MissingReturn
	UnreachableCode
	VarDeclTypeMismatch
	UndeclaredIdentifier
	FunctionUsedAsVariable
	VarAssignToConstant
	VarAssignTypeMismatch
	ReturnOutsideFunction
	ReturnTypeMismatch
	ConditionNotBool
	InvalidBinaryOperation
	InvalidUnaryOperation
	UndeclaredFunction
	NotAFunction
	WrongNumberOfArguments
	InvalidSignature
)

var kindNames = [...]string{
	RedeclaredFunction:     "redeclared-function",
	RedeclaredIdentifier:   "redeclared-identifier",
	MissingReturn:          "missing-return",
	UnreachableCode:        "unreachable-code",
	VarDeclTypeMismatch:    "var-decl-type-mismatch",
	UndeclaredIdentifier:   "undeclared-identifier",
	FunctionUsedAsVariable: "function-used-as-variable",
	VarAssignToConstant:    "var-assign-to-constant",
	VarAssignTypeMismatch:  "var-assign-type-mismatch",
	ReturnOutsideFunction:  "return-outside-function",
	ReturnTypeMismatch:     "return-type-mismatch",
	ConditionNotBool:       "condition-not-bool",
	InvalidBinaryOperation: "invalid-binary-operation",
	InvalidUnaryOperation:  "invalid-unary-operation",
	UndeclaredFunction:     "undeclared-function",
	NotAFunction:           "not-a-function",
	WrongNumberOfArguments: "wrong-number-of-arguments",
	InvalidSignature:       "invalid-signature",
}

// Kinds returns every ErrorKind in code order.
func Kinds() []ErrorKind {
	kinds := make([]ErrorKind, 0, len(kindNames)-1)
	for k := RedeclaredFunction; k <= InvalidSignature; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k ErrorKind) valid() bool {
	return k >= RedeclaredFunction && k <= InvalidSignature
}

// String returns the kebab-case name of the kind.
func (k ErrorKind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Code returns the stable diagnostic code of the kind, e.g. "E0004".
func (k ErrorKind) Code() string {
	return fmt.Sprintf("E%04d", int(k))
}

// ParseKind resolves a kind from its name or code, case-insensitively.
func ParseKind(s string) (ErrorKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if s == k.String() || s == strings.ToLower(k.Code()) {
			return k, true
		}
	}
	return 0, false
}

// Context is the kind-specific payload of an Error.  The concrete types are
// the *Context types declared in this package.
type Context interface {
	context()
}

// NoContext is the payload of kinds that need no detail.
type NoContext struct{}

// NameContext names the identifier or function involved.
type NameContext struct {
	Name string
}

// TypeMismatchContext reports a value whose type does not fit the declared
// type of Name.  For ReturnTypeMismatch Name is the enclosing function and an
// Actual of types.Untyped means the return statement had no value.
type TypeMismatchContext struct {
	Name     string
	Expected types.DataType
	Actual   types.DataType
}

// SignatureContext reports a call whose argument types do not fit the
// declared parameter types.  Actual holds the argument types evaluated up to
// and including the first incompatible one.
type SignatureContext struct {
	Function string
	Expected []types.DataType
	Actual   []types.DataType
}

// ArgCountContext reports a call with the wrong number of arguments.
type ArgCountContext struct {
	Function string
	Expected int
	Actual   int
}

// OperationContext reports a binary operator applied to operand types it
// does not accept.
type OperationContext struct {
	Op    ast.Op
	Left  types.DataType
	Right types.DataType
}

// ActualTypeContext reports the offending type of a condition or unary
// operand.
type ActualTypeContext struct {
	Actual types.DataType
}

func (NoContext) context()           {}
func (NameContext) context()         {}
func (TypeMismatchContext) context() {}
func (SignatureContext) context()    {}
func (ArgCountContext) context()     {}
func (OperationContext) context()    {}
func (ActualTypeContext) context()   {}

// Error is a semantic error.  Analysis stops at the first one.
type Error struct {
	Kind    ErrorKind
	Context Context
	// Pos is the position of the node being analyzed when the error was
	// found.  It is the zero Pos for trees built without positions.
	Pos ast.Pos
}

func newError(kind ErrorKind, ctx Context, pos ast.Pos) *Error {
	return &Error{Kind: kind, Context: ctx, Pos: pos}
}

func (e *Error) Error() string {
	return e.Message()
}

// Message renders the error without its kind or position.
func (e *Error) Message() string {
	switch c := e.Context.(type) {
	case NameContext:
		return nameMessage(e.Kind, c.Name)
	case TypeMismatchContext:
		return mismatchMessage(e.Kind, c)
	case SignatureContext:
		return fmt.Sprintf("invalid arguments to '%s': expected (%s), got (%s)",
			c.Function, ast.TypeList(c.Expected), ast.TypeList(c.Actual))
	case ArgCountContext:
		return fmt.Sprintf("function '%s' expects %d %s, got %d",
			c.Function, c.Expected, plural(c.Expected, "argument"), c.Actual)
	case OperationContext:
		return fmt.Sprintf("invalid operation: %s %s %s", c.Left, c.Op, c.Right)
	case ActualTypeContext:
		if e.Kind == InvalidUnaryOperation {
			return fmt.Sprintf("invalid operation: unary '-' on %s", c.Actual)
		}
		return fmt.Sprintf("condition must be bool, got %s", c.Actual)
	}
	switch e.Kind {
	case UnreachableCode:
		return "unreachable code"
	case ReturnOutsideFunction:
		return "return statement outside of a function"
	}
	return e.Kind.String()
}

func nameMessage(kind ErrorKind, name string) string {
	switch kind {
	case RedeclaredFunction:
		return fmt.Sprintf("function '%s' is already declared", name)
	case RedeclaredIdentifier:
		return fmt.Sprintf("identifier '%s' is already declared in this scope", name)
	case MissingReturn:
		return fmt.Sprintf("function '%s' does not return a value on every path", name)
	case UndeclaredIdentifier:
		return fmt.Sprintf("undeclared identifier '%s'", name)
	case FunctionUsedAsVariable:
		return fmt.Sprintf("function '%s' used as a variable", name)
	case VarAssignToConstant:
		return fmt.Sprintf("cannot assign to constant '%s'", name)
	case UndeclaredFunction:
		return fmt.Sprintf("undeclared function '%s'", name)
	case NotAFunction:
		return fmt.Sprintf("'%s' is not a function", name)
	}
	return fmt.Sprintf("%s: '%s'", kind, name)
}

func mismatchMessage(kind ErrorKind, c TypeMismatchContext) string {
	switch kind {
	case VarDeclTypeMismatch:
		return fmt.Sprintf("cannot initialize '%s' of type %s with a value of type %s",
			c.Name, c.Expected, c.Actual)
	case VarAssignTypeMismatch:
		return fmt.Sprintf("cannot assign a value of type %s to '%s' of type %s",
			c.Actual, c.Name, c.Expected)
	case ReturnTypeMismatch:
		switch {
		case c.Actual == types.Untyped:
			return fmt.Sprintf("function '%s' must return a value of type %s", c.Name, c.Expected)
		case c.Expected == types.Untyped:
			return fmt.Sprintf("function '%s' does not return a value, got %s", c.Name, c.Actual)
		}
		return fmt.Sprintf("function '%s' returns %s, got %s", c.Name, c.Expected, c.Actual)
	}
	return fmt.Sprintf("%s: '%s' expected %s, got %s", kind, c.Name, c.Expected, c.Actual)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
