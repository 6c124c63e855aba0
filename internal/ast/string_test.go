package ast

import "testing"

func TestNodeStrings(t *testing.T) {
	one := &Literal{Value: int64(1), Raw: "1"}
	x := &Variable{Name: "x"}
	intType := &NamedType{Parts: []string{"int"}}

	tests := []struct {
		name string
		node Node
		want string
	}{
		{"binary nesting", &Binary{
			Operator: "+",
			Left:     one,
			Right: &Binary{
				Operator: "*",
				Left:     &Literal{Value: int64(2), Raw: "2"},
				Right:    &Literal{Value: int64(3), Raw: "3"},
			},
		}, "(1 + (2 * 3))"},
		{"prefix unary", &Unary{Operator: "-", Operand: x}, "(-x)"},
		{"word unary", &Unary{Operator: "not", Operand: x}, "(not x)"},
		{"postfix unary", &Unary{Operator: "++", Operand: x, Postfix: true}, "(x++)"},
		{"group", &Group{Inner: x}, "(x)"},
		{"cast", &Cast{Value: x, Target: &NamedType{Parts: []string{"float"}}}, "(x : float)"},
		{"ternary", &Ternary{Cond: x, Then: one, Else: &Literal{Value: int64(0), Raw: "0"}}, "(x ? 1 : 0)"},
		{"member chain", &MemberGet{Object: &MemberGet{Object: x, Name: "a"}, Name: "b"}, "x.a.b"},
		{"member set", &MemberSet{Object: x, Name: "a", Value: one}, "(x.a = 1)"},
		{"call", &Call{Callee: x, Args: []Expression{one, &Variable{Name: "y"}}}, "x(1, y)"},
		{"subscript", &Subscript{Target: x, Index: one}, "x[1]"},
		{"array literal", &ArrayLiteral{Elements: []Expression{one}}, "[1]"},
		{"dict literal", &DictLiteral{Entries: []DictEntry{
			{Key: &Literal{Value: "k", Raw: `"k"`}, Value: one},
		}}, `{"k": 1}`},
		{"interpolated", &InterpolatedString{Parts: []InterpPart{
			{Text: "n="},
			{Expr: x},
		}}, `"n={x}"`},
		{"assign", &Assign{Target: x, Operator: "+=", Value: one}, "(x += 1)"},
		{"sizeof", &SizeOf{Target: intType}, "sizeof(int)"},
		{"typeof", &TypeOf{Operand: x}, "typeof(x)"},
		{"generic op", &GenericOp{Left: x, Operator: "+", Right: one}, "op<x + 1>"},
		{"address of", &AddressOf{Operand: x}, "(@x)"},
		{"dereference", &Dereference{Operand: x}, "(*x)"},
		{"scope path", &ScopePath{Parts: []string{"A", "B"}}, "A::B"},

		{"named type", &NamedType{Parts: []string{"core", "Vec"}}, "core.Vec"},
		{"array type", &ArrayType{Element: intType, Size: &Literal{Value: int64(4), Raw: "4"}}, "int[4]"},
		{"unsized array type", &ArrayType{Element: intType}, "int[]"},
		{"pointer type", &PointerType{Pointee: &NamedType{Parts: []string{"u8"}}, Const: true}, "u8 const*"},
		{"function type", &FunctionType{
			Params: []Type{intType, intType},
			Return: &NamedType{Parts: []string{"bool"}},
		}, "(int, int) -> bool"},
		{"data type", &DataType{Bits: 32, Signed: true}, "signed data{32}"},
		{"data type aligned", &DataType{Bits: 64, Align: &Literal{Value: int64(8), Raw: "8"}, Volatile: true},
			"unsigned data{64} align{8} volatile"},
		{"generic type", &GenericType{Path: []string{"Vec"}, Args: []Type{&NamedType{Parts: []string{"T"}}}}, "Vec<T>"},

		{"import alias", &ImportDecl{Path: []string{"core", "io"}, Alias: "io"}, "import core.io as io;"},
		{"using", &UsingDecl{Path: []string{"core"}}, "using core;"},
		{"const var decl", &VarDecl{Name: "x", Type: intType, Init: one, Const: true}, "const x: int = 1;"},
		{"data alias", &DataAliasDecl{Name: "byte", Bits: 8}, "unsigned data{8} byte;"},
		{"function prototype", &FunctionDecl{
			Name:      "f",
			Params:    []Param{{Name: "a", Type: intType}},
			Return:    intType,
			Prototype: true,
		}, "def f(a: int) -> int;"},
		{"operator prototype", &OperatorDecl{
			Symbol:    "+",
			Params:    []Param{{Name: "a", Type: intType}},
			Prototype: true,
		}, "operator(a: int)[+];"},
		{"template decl", &TemplateDecl{
			Params: []TemplateParam{{Name: "T"}},
			Inner:  &FunctionDecl{Name: "f", Prototype: true},
		}, "template <T> def f();"},
		{"forward object", &ObjectDecl{Name: "Widget", Forward: true}, "object Widget;"},
		{"class with bases", &ObjectDecl{Name: "Panel", Class: true, Bases: []string{"Widget", "Sized"}},
			"class Panel <Widget, Sized> { ... }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
