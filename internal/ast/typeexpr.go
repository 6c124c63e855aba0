package ast

import (
	"fmt"
	"strings"

	"github.com/flux-lang/flux/internal/position"
)

// NamedType is a dot-qualified type path such as `io.Reader` or `Int32`.
// The `void` and `!void` spellings are single-part named types.
type NamedType struct {
	Span  position.Span
	Parts []string
}

func (t *NamedType) GetSpan() position.Span   { return t.Span }
func (t *NamedType) String() string           { return strings.Join(t.Parts, ".") }
func (t *NamedType) Accept(v TypeVisitor) any { return v.VisitNamedType(t) }
func (t *NamedType) typeNode()                {}

// ArrayType is `element[size]`; a nil Size is the unsized form `element[]`.
type ArrayType struct {
	Span    position.Span
	Element Type
	Size    Expression
}

func (t *ArrayType) GetSpan() position.Span   { return t.Span }
func (t *ArrayType) Accept(v TypeVisitor) any { return v.VisitArrayType(t) }
func (t *ArrayType) typeNode()                {}

func (t *ArrayType) String() string {
	if t.Size == nil {
		return t.Element.String() + "[]"
	}
	return t.Element.String() + "[" + t.Size.String() + "]"
}

// PointerType is `pointee*`, optionally qualified `pointee const*` or
// `pointee volatile*`.
type PointerType struct {
	Span     position.Span
	Pointee  Type
	Const    bool
	Volatile bool
}

func (t *PointerType) GetSpan() position.Span   { return t.Span }
func (t *PointerType) Accept(v TypeVisitor) any { return v.VisitPointerType(t) }
func (t *PointerType) typeNode()                {}

func (t *PointerType) String() string {
	out := t.Pointee.String()
	if t.Const {
		out += " const"
	}
	if t.Volatile {
		out += " volatile"
	}
	return out + "*"
}

// FunctionType is `(T, T, ...) -> R`.
type FunctionType struct {
	Span   position.Span
	Params []Type
	Return Type
}

func (t *FunctionType) GetSpan() position.Span   { return t.Span }
func (t *FunctionType) Accept(v TypeVisitor) any { return v.VisitFunctionType(t) }
func (t *FunctionType) typeNode()                {}

func (t *FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Return.String()
}

// DataType is the machine type `signed|unsigned data{bits}`, optionally
// with `align{expr}` and a trailing `volatile`.
type DataType struct {
	Span     position.Span
	Bits     int
	Signed   bool
	Align    Expression
	Volatile bool
}

func (t *DataType) GetSpan() position.Span   { return t.Span }
func (t *DataType) Accept(v TypeVisitor) any { return v.VisitDataType(t) }
func (t *DataType) typeNode()                {}

func (t *DataType) String() string {
	sign := "unsigned"
	if t.Signed {
		sign = "signed"
	}
	out := fmt.Sprintf("%s data{%d}", sign, t.Bits)
	if t.Align != nil {
		out += " align{" + t.Align.String() + "}"
	}
	if t.Volatile {
		out += " volatile"
	}
	return out
}

// GenericType is a named type applied to type arguments: `Vec<Int32>`.
type GenericType struct {
	Span position.Span
	Path []string
	Args []Type
}

func (t *GenericType) GetSpan() position.Span   { return t.Span }
func (t *GenericType) Accept(v TypeVisitor) any { return v.VisitGenericType(t) }
func (t *GenericType) typeNode()                {}

func (t *GenericType) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return strings.Join(t.Path, ".") + "<" + strings.Join(parts, ", ") + ">"
}
