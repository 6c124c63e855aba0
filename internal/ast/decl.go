package ast

import (
	"fmt"
	"strings"

	"github.com/flux-lang/flux/internal/position"
)

// Param is one function or operator parameter.
type Param struct {
	Span position.Span
	Name string
	Type Type
}

func (p Param) String() string {
	if p.Type == nil {
		return p.Name
	}
	return p.Name + ": " + p.Type.String()
}

// FunctionDecl is `def name(params) -> return? body` or the prototype form
// ending in `;`.
type FunctionDecl struct {
	Span      position.Span
	Name      string
	Params    []Param
	Return    Type
	Body      *Block
	Prototype bool
}

func (d *FunctionDecl) GetSpan() position.Span   { return d.Span }
func (d *FunctionDecl) Accept(v DeclVisitor) any { return v.VisitFunctionDecl(d) }
func (d *FunctionDecl) declNode()                {}

func (d *FunctionDecl) String() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.String()
	}
	out := "def " + d.Name + "(" + strings.Join(parts, ", ") + ")"
	if d.Return != nil {
		out += " -> " + d.Return.String()
	}
	if d.Prototype {
		return out + ";"
	}
	return out + " { ... }"
}

// VarDecl is a variable declaration: `name: type? (= init)?;`, optionally
// const/volatile qualified. A type annotation with no initializer is the
// `name: type;` form.
type VarDecl struct {
	Span     position.Span
	Name     string
	Type     Type
	Init     Expression
	Const    bool
	Volatile bool
}

func (d *VarDecl) GetSpan() position.Span   { return d.Span }
func (d *VarDecl) Accept(v DeclVisitor) any { return v.VisitVarDecl(d) }
func (d *VarDecl) declNode()                {}

func (d *VarDecl) String() string {
	out := ""
	if d.Const {
		out += "const "
	}
	if d.Volatile {
		out += "volatile "
	}
	out += d.Name
	if d.Type != nil {
		out += ": " + d.Type.String()
	}
	if d.Init != nil {
		out += " = " + d.Init.String()
	}
	return out + ";"
}

// TemplateParam is one template parameter: a bare type parameter when Type
// is nil, a named value parameter otherwise.
type TemplateParam struct {
	Span position.Span
	Name string
	Type Type
}

func (p TemplateParam) String() string {
	if p.Type == nil {
		return p.Name
	}
	return p.Name + ": " + p.Type.String()
}

// ObjectDecl is an `object` or `class` declaration: inheritance list,
// optional `{!...}` exclusion list, members, and the forward/template
// flags. Class records which keyword introduced it.
type ObjectDecl struct {
	Span           position.Span
	Name           string
	Class          bool
	Bases          []string
	Excluded       []string
	TemplateParams []TemplateParam
	Members        []Declaration
	Forward        bool
	Template       bool
}

func (d *ObjectDecl) GetSpan() position.Span   { return d.Span }
func (d *ObjectDecl) Accept(v DeclVisitor) any { return v.VisitObjectDecl(d) }
func (d *ObjectDecl) declNode()                {}

func (d *ObjectDecl) String() string {
	kw := "object"
	if d.Class {
		kw = "class"
	}
	out := kw + " " + d.Name
	if len(d.Bases) > 0 {
		out += " <" + strings.Join(d.Bases, ", ") + ">"
	}
	if d.Forward {
		return out + ";"
	}
	return out + " { ... }"
}

// Field is one struct field.
type Field struct {
	Span     position.Span
	Name     string
	Type     Type
	Align    Expression
	Volatile bool
}

// StructDecl is `struct Name { fields }`.
type StructDecl struct {
	Span   position.Span
	Name   string
	Fields []Field
}

func (d *StructDecl) GetSpan() position.Span   { return d.Span }
func (d *StructDecl) String() string           { return "struct " + d.Name + " { ... }" }
func (d *StructDecl) Accept(v DeclVisitor) any { return v.VisitStructDecl(d) }
func (d *StructDecl) declNode()                {}

// NamespaceDecl is `namespace Name { declarations }`.
type NamespaceDecl struct {
	Span  position.Span
	Name  string
	Decls []Declaration
}

func (d *NamespaceDecl) GetSpan() position.Span   { return d.Span }
func (d *NamespaceDecl) String() string           { return "namespace " + d.Name + " { ... }" }
func (d *NamespaceDecl) Accept(v DeclVisitor) any { return v.VisitNamespaceDecl(d) }
func (d *NamespaceDecl) declNode()                {}

// ImportDecl is `import path.to.module (as alias)?;`.
type ImportDecl struct {
	Span  position.Span
	Path  []string
	Alias string
}

func (d *ImportDecl) GetSpan() position.Span   { return d.Span }
func (d *ImportDecl) Accept(v DeclVisitor) any { return v.VisitImportDecl(d) }
func (d *ImportDecl) declNode()                {}

func (d *ImportDecl) String() string {
	out := "import " + strings.Join(d.Path, ".")
	if d.Alias != "" {
		out += " as " + d.Alias
	}
	return out + ";"
}

// UsingDecl is `using path;`.
type UsingDecl struct {
	Span position.Span
	Path []string
}

func (d *UsingDecl) GetSpan() position.Span   { return d.Span }
func (d *UsingDecl) String() string           { return "using " + strings.Join(d.Path, ".") + ";" }
func (d *UsingDecl) Accept(v DeclVisitor) any { return v.VisitUsingDecl(d) }
func (d *UsingDecl) declNode()                {}

// OperatorDecl is `operator(params)[symbol] -> return body` or its
// prototype form.
type OperatorDecl struct {
	Span      position.Span
	Symbol    string
	Params    []Param
	Return    Type
	Body      *Block
	Prototype bool
}

func (d *OperatorDecl) GetSpan() position.Span   { return d.Span }
func (d *OperatorDecl) Accept(v DeclVisitor) any { return v.VisitOperatorDecl(d) }
func (d *OperatorDecl) declNode()                {}

func (d *OperatorDecl) String() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.String()
	}
	out := "operator(" + strings.Join(parts, ", ") + ")[" + d.Symbol + "]"
	if d.Return != nil {
		out += " -> " + d.Return.String()
	}
	if d.Prototype {
		return out + ";"
	}
	return out + " { ... }"
}

// DataAliasDecl names a machine type: `signed|unsigned data{bits} name;`.
type DataAliasDecl struct {
	Span     position.Span
	Name     string
	Bits     int
	Signed   bool
	Volatile bool
}

func (d *DataAliasDecl) GetSpan() position.Span   { return d.Span }
func (d *DataAliasDecl) Accept(v DeclVisitor) any { return v.VisitDataAliasDecl(d) }
func (d *DataAliasDecl) declNode()                {}

func (d *DataAliasDecl) String() string {
	sign := "unsigned"
	if d.Signed {
		sign = "signed"
	}
	out := ""
	if d.Volatile {
		out = "volatile "
	}
	return out + fmt.Sprintf("%s data{%d} %s;", sign, d.Bits, d.Name)
}

// EnumMember is one enum member with an optional explicit value.
type EnumMember struct {
	Span  position.Span
	Name  string
	Value Expression
}

// EnumDecl is `enum Name { members };`.
type EnumDecl struct {
	Span    position.Span
	Name    string
	Members []EnumMember
}

func (d *EnumDecl) GetSpan() position.Span   { return d.Span }
func (d *EnumDecl) Accept(v DeclVisitor) any { return v.VisitEnumDecl(d) }
func (d *EnumDecl) declNode()                {}

func (d *EnumDecl) String() string {
	parts := make([]string, len(d.Members))
	for i, m := range d.Members {
		parts[i] = m.Name
		if m.Value != nil {
			parts[i] += " = " + m.Value.String()
		}
	}
	return "enum " + d.Name + " { " + strings.Join(parts, ", ") + " }"
}

// TemplateDecl parameterizes exactly one inner declaration.
type TemplateDecl struct {
	Span   position.Span
	Params []TemplateParam
	Inner  Declaration
}

func (d *TemplateDecl) GetSpan() position.Span   { return d.Span }
func (d *TemplateDecl) Accept(v DeclVisitor) any { return v.VisitTemplateDecl(d) }
func (d *TemplateDecl) declNode()                {}

func (d *TemplateDecl) String() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.String()
	}
	return "template <" + strings.Join(parts, ", ") + "> " + d.Inner.String()
}

// AsmDecl is an opaque `asm { ... }` block; Code is the raw instruction
// text.
type AsmDecl struct {
	Span position.Span
	Code string
}

func (d *AsmDecl) GetSpan() position.Span   { return d.Span }
func (d *AsmDecl) String() string           { return "asm { ... }" }
func (d *AsmDecl) Accept(v DeclVisitor) any { return v.VisitAsmDecl(d) }
func (d *AsmDecl) declNode()                {}

// SectionDecl places one declaration into a linker section:
// `section("name") attribute decl address<expr>?`.
type SectionDecl struct {
	Span      position.Span
	Name      string
	Attribute string
	Decl      Declaration
	Address   Expression
}

func (d *SectionDecl) GetSpan() position.Span   { return d.Span }
func (d *SectionDecl) Accept(v DeclVisitor) any { return v.VisitSectionDecl(d) }
func (d *SectionDecl) declNode()                {}

func (d *SectionDecl) String() string {
	out := fmt.Sprintf("section(%q) %s %s", d.Name, d.Attribute, d.Decl.String())
	if d.Address != nil {
		out += " address<" + d.Address.String() + ">"
	}
	return out
}
