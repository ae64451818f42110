// Copyright © 2026 The iota authors

// Package types defines the iota type domain and the rules that relate its
// members: assignment compatibility, numeric classification, and the result
// type of arithmetic.
package types

// DataType is one of the four iota types.  The zero value is Untyped, which
// is both the "no value" return type of a function and the placeholder held
// by an expression before analysis assigns it a type.
type DataType int

const (
	Untyped DataType = iota
	Int
	Float
	Bool
)

// All lists every DataType in declaration order.
var All = []DataType{Untyped, Int, Float, Bool}

func (t DataType) String() string {
	switch t {
	case Untyped:
		return "untyped"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Parse maps a source type name to its DataType.  Only "int", "float" and
// "bool" are spellable in source; Untyped has no spelling.
func Parse(name string) (DataType, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "bool":
		return Bool, true
	default:
		return Untyped, false
	}
}

// compatible lists the only non-identity pairs for which a value of the
// source type may be stored where the target type is declared.  The table is
// deliberately not derived from a numeric ordering: Int->Float widens, Bool
// and Int are tolerated in both directions, and nothing ever narrows Float.
var compatible = map[[2]DataType]bool{
	{Bool, Int}:  true,
	{Float, Int}: true,
	{Int, Bool}:  true,
}

// IsAssignmentCompatible reports whether a value of type source may be
// assigned, passed, or returned where type target is expected.  The relation
// is neither symmetric nor transitive.
func IsAssignmentCompatible(target, source DataType) bool {
	if target == source {
		return true
	}
	return compatible[[2]DataType{target, source}]
}

// IsNumeric reports whether t takes part in arithmetic and ordering.
func IsNumeric(t DataType) bool {
	return t == Int || t == Float
}

// IsComparable reports whether t is a value type.
func IsComparable(t DataType) bool {
	return t == Int || t == Float || t == Bool
}

// ArithmeticResult returns the type of l op r for an arithmetic operator
// applied to two numeric operands.
func ArithmeticResult(l, r DataType) DataType {
	if l == Float || r == Float {
		return Float
	}
	return Int
}
