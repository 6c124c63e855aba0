package parser

import (
	"testing"

	"github.com/flux-lang/flux/internal/ast"
	"github.com/flux-lang/flux/internal/diagnostics"
)

func TestFunctionDeclarations(t *testing.T) {
	prog := mustParse(t, `
def add(a: int, b: int) -> int { return a + b; }
def log(msg);
def tick() { }
`)
	if len(prog.Declarations) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(prog.Declarations))
	}

	add, ok := prog.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected FunctionDecl, got %T", prog.Declarations[0])
	}
	if add.Name != "add" || len(add.Params) != 2 {
		t.Errorf("wrong function header: %s", add)
	}
	if add.Params[0].Name != "a" || add.Params[0].Type.String() != "int" {
		t.Errorf("wrong first parameter: %s", add.Params[0])
	}
	if add.Return == nil || add.Return.String() != "int" {
		t.Errorf("wrong return type: %v", add.Return)
	}
	if add.Prototype || add.Body == nil {
		t.Errorf("expected full definition with body")
	}

	proto := prog.Declarations[1].(*ast.FunctionDecl)
	if !proto.Prototype || proto.Body != nil {
		t.Errorf("expected prototype without body")
	}
	if len(proto.Params) != 1 || proto.Params[0].Type != nil {
		t.Errorf("expected one untyped parameter, got %v", proto.Params)
	}

	tick := prog.Declarations[2].(*ast.FunctionDecl)
	if len(tick.Params) != 0 || tick.Return != nil {
		t.Errorf("expected empty signature: %s", tick)
	}
}

func TestObjectDeclaration(t *testing.T) {
	prog := mustParse(t, `
object Counter <Base, Serializable> {
	count: int = 0;
	def bump() { count += 1; }
}
`)
	obj, ok := prog.Declarations[0].(*ast.ObjectDecl)
	if !ok {
		t.Fatalf("expected ObjectDecl, got %T", prog.Declarations[0])
	}
	if obj.Name != "Counter" || obj.Class {
		t.Errorf("wrong object header: %s", obj)
	}
	if len(obj.Bases) != 2 || obj.Bases[0] != "Base" || obj.Bases[1] != "Serializable" {
		t.Errorf("wrong inheritance list: %v", obj.Bases)
	}
	if len(obj.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(obj.Members))
	}
	if _, ok := obj.Members[0].(*ast.VarDecl); !ok {
		t.Errorf("expected field member, got %T", obj.Members[0])
	}
	if _, ok := obj.Members[1].(*ast.FunctionDecl); !ok {
		t.Errorf("expected method member, got %T", obj.Members[1])
	}
}

func TestClassKeyword(t *testing.T) {
	prog := mustParse(t, "class Widget { }")
	obj := prog.Declarations[0].(*ast.ObjectDecl)
	if !obj.Class {
		t.Errorf("expected Class flag for class keyword")
	}
}

func TestObjectForwardDeclaration(t *testing.T) {
	prog := mustParse(t, "object Device; object Device { id: int; }")
	if len(prog.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Declarations))
	}
	fwd := prog.Declarations[0].(*ast.ObjectDecl)
	if !fwd.Forward || len(fwd.Members) != 0 {
		t.Errorf("expected forward declaration, got %s", fwd)
	}
	full := prog.Declarations[1].(*ast.ObjectDecl)
	if full.Forward {
		t.Errorf("expected full declaration")
	}
}

func TestObjectExclusionList(t *testing.T) {
	prog := mustParse(t, "object Derived <Base> {!helper, internalState} { }")
	obj := prog.Declarations[0].(*ast.ObjectDecl)
	if len(obj.Excluded) != 2 || obj.Excluded[0] != "helper" || obj.Excluded[1] != "internalState" {
		t.Errorf("wrong exclusion list: %v", obj.Excluded)
	}
	if len(obj.Bases) != 1 || obj.Bases[0] != "Base" {
		t.Errorf("wrong bases: %v", obj.Bases)
	}
}

func TestObjectTrailingSemicolon(t *testing.T) {
	prog := mustParse(t, "object A { }; object B { }")
	if len(prog.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Declarations))
	}
}

func TestStructFields(t *testing.T) {
	prog := mustParse(t, `
struct Packet {
	volatile flags: u8;
	payload: u8[16] align{4};
}
`)
	st, ok := prog.Declarations[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("expected StructDecl, got %T", prog.Declarations[0])
	}
	if st.Name != "Packet" || len(st.Fields) != 2 {
		t.Fatalf("wrong struct: %s with %d fields", st.Name, len(st.Fields))
	}

	flags := st.Fields[0]
	if !flags.Volatile || flags.Name != "flags" || flags.Type.String() != "u8" {
		t.Errorf("wrong first field: %+v", flags)
	}

	payload := st.Fields[1]
	if payload.Volatile || payload.Align == nil {
		t.Errorf("wrong second field: %+v", payload)
	}
	if got := payload.Align.String(); got != "4" {
		t.Errorf("expected alignment 4, got %s", got)
	}
	if got := payload.Type.String(); got != "u8[16]" {
		t.Errorf("expected u8[16], got %s", got)
	}
}

func TestEnumDeclaration(t *testing.T) {
	prog := mustParse(t, "enum Color { Red, Green = 2, Blue, }")
	en, ok := prog.Declarations[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("expected EnumDecl, got %T", prog.Declarations[0])
	}
	if len(en.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(en.Members))
	}
	if en.Members[0].Name != "Red" || en.Members[0].Value != nil {
		t.Errorf("wrong first member: %+v", en.Members[0])
	}
	if en.Members[1].Value == nil || en.Members[1].Value.String() != "2" {
		t.Errorf("expected Green = 2, got %+v", en.Members[1])
	}
}

func TestNamespaceDeclaration(t *testing.T) {
	prog := mustParse(t, `
namespace core {
	def alloc(n: int) -> rawptr;
	pageSize: int = 4096;
}
`)
	ns, ok := prog.Declarations[0].(*ast.NamespaceDecl)
	if !ok {
		t.Fatalf("expected NamespaceDecl, got %T", prog.Declarations[0])
	}
	if ns.Name != "core" || len(ns.Decls) != 2 {
		t.Fatalf("wrong namespace: %s with %d decls", ns.Name, len(ns.Decls))
	}
}

func TestOperatorDeclarations(t *testing.T) {
	prog := mustParse(t, `
operator(a: Vec, b: Vec)[+] -> Vec { return a; }
operator(a: Vec, b: Vec)[==] -> bool;
`)
	full, ok := prog.Declarations[0].(*ast.OperatorDecl)
	if !ok {
		t.Fatalf("expected OperatorDecl, got %T", prog.Declarations[0])
	}
	if full.Symbol != "+" || len(full.Params) != 2 || full.Prototype {
		t.Errorf("wrong operator: %s", full)
	}
	if full.Return == nil || full.Return.String() != "Vec" {
		t.Errorf("wrong return type: %v", full.Return)
	}

	proto := prog.Declarations[1].(*ast.OperatorDecl)
	if proto.Symbol != "==" || !proto.Prototype || proto.Body != nil {
		t.Errorf("wrong prototype: %s", proto)
	}
}

func TestTemplateFunctionForm(t *testing.T) {
	prog := mustParse(t, "template max(T)(a: T, b: T) -> T { return a; }")
	tpl, ok := prog.Declarations[0].(*ast.TemplateDecl)
	if !ok {
		t.Fatalf("expected TemplateDecl, got %T", prog.Declarations[0])
	}
	if len(tpl.Params) != 1 || tpl.Params[0].Name != "T" {
		t.Errorf("wrong template parameters: %v", tpl.Params)
	}
	fn, ok := tpl.Inner.(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected inner FunctionDecl, got %T", tpl.Inner)
	}
	if fn.Name != "max" || len(fn.Params) != 2 {
		t.Errorf("wrong inner function: %s", fn)
	}
}

func TestTemplateObjectAbsorbsParams(t *testing.T) {
	prog := mustParse(t, "template <T, N: int> object Box { value: T; }")
	obj, ok := prog.Declarations[0].(*ast.ObjectDecl)
	if !ok {
		t.Fatalf("expected ObjectDecl, got %T", prog.Declarations[0])
	}
	if !obj.Template {
		t.Errorf("expected Template flag")
	}
	if len(obj.TemplateParams) != 2 {
		t.Fatalf("expected 2 template parameters, got %d", len(obj.TemplateParams))
	}
	if obj.TemplateParams[0].Name != "T" || obj.TemplateParams[0].Type != nil {
		t.Errorf("wrong type parameter: %+v", obj.TemplateParams[0])
	}
	if obj.TemplateParams[1].Name != "N" || obj.TemplateParams[1].Type == nil {
		t.Errorf("wrong value parameter: %+v", obj.TemplateParams[1])
	}
}

func TestTemplatePrefixFunction(t *testing.T) {
	prog := mustParse(t, "template <T> def identity(x: T) -> T { return x; }")
	tpl, ok := prog.Declarations[0].(*ast.TemplateDecl)
	if !ok {
		t.Fatalf("expected TemplateDecl, got %T", prog.Declarations[0])
	}
	if _, ok := tpl.Inner.(*ast.FunctionDecl); !ok {
		t.Errorf("expected inner FunctionDecl, got %T", tpl.Inner)
	}
}

func TestTemplateWrongInnerStillWraps(t *testing.T) {
	prog, sink := parseFile(t, "template <T> struct Pair { a: T; b: T; }")
	if sink.ErrorCount() != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", sink.ErrorCount(), sink.All())
	}
	if sink.All()[0].Code != diagnostics.ExpectedDeclaration {
		t.Errorf("expected ExpectedDeclaration, got %s", sink.All()[0].Code)
	}
	tpl, ok := prog.Declarations[0].(*ast.TemplateDecl)
	if !ok {
		t.Fatalf("expected TemplateDecl, got %T", prog.Declarations[0])
	}
	if _, ok := tpl.Inner.(*ast.StructDecl); !ok {
		t.Errorf("expected inner StructDecl, got %T", tpl.Inner)
	}
}

func TestDataAliasDeclarations(t *testing.T) {
	prog := mustParse(t, `
unsigned data{8} byte;
signed data{32} i32;
data{16} halfword;
volatile unsigned data{64} mmio;
`)
	if len(prog.Declarations) != 4 {
		t.Fatalf("expected 4 declarations, got %d", len(prog.Declarations))
	}

	tests := []struct {
		name     string
		bits     int
		signed   bool
		volatile bool
	}{
		{"byte", 8, false, false},
		{"i32", 32, true, false},
		{"halfword", 16, false, false},
		{"mmio", 64, false, true},
	}
	for i, tt := range tests {
		alias, ok := prog.Declarations[i].(*ast.DataAliasDecl)
		if !ok {
			t.Fatalf("expected DataAliasDecl at %d, got %T", i, prog.Declarations[i])
		}
		if alias.Name != tt.name || alias.Bits != tt.bits ||
			alias.Signed != tt.signed || alias.Volatile != tt.volatile {
			t.Errorf("wrong alias: %s", alias)
		}
	}
}

func TestAsmDeclaration(t *testing.T) {
	prog := mustParse(t, "asm { mov rax , 1 ; ret }")
	decl, ok := prog.Declarations[0].(*ast.AsmDecl)
	if !ok {
		t.Fatalf("expected AsmDecl, got %T", prog.Declarations[0])
	}
	if decl.Code != "mov rax , 1 ; ret" {
		t.Errorf("wrong asm text: %q", decl.Code)
	}
}

func TestAsmNestedBraces(t *testing.T) {
	prog := mustParse(t, "asm { outer { inner } tail } def after() { }")
	if len(prog.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Declarations))
	}
	decl := prog.Declarations[0].(*ast.AsmDecl)
	if decl.Code != "outer { inner } tail" {
		t.Errorf("wrong asm text: %q", decl.Code)
	}
}

func TestSectionDeclaration(t *testing.T) {
	prog := mustParse(t, `section(".boot") readonly bootFlags: u32 = 1; address<0x1000>;`)
	sec, ok := prog.Declarations[0].(*ast.SectionDecl)
	if !ok {
		t.Fatalf("expected SectionDecl, got %T", prog.Declarations[0])
	}
	if sec.Name != ".boot" || sec.Attribute != "readonly" {
		t.Errorf("wrong section header: %s %s", sec.Name, sec.Attribute)
	}
	if _, ok := sec.Decl.(*ast.VarDecl); !ok {
		t.Errorf("expected inner VarDecl, got %T", sec.Decl)
	}
	if sec.Address == nil || sec.Address.String() != "0x1000" {
		t.Errorf("wrong address pin: %v", sec.Address)
	}
}

func TestSectionWithoutAddress(t *testing.T) {
	prog := mustParse(t, `section(".text") code def boot() { }`)
	sec := prog.Declarations[0].(*ast.SectionDecl)
	if sec.Address != nil {
		t.Errorf("expected no address pin, got %s", sec.Address)
	}
	if _, ok := sec.Decl.(*ast.FunctionDecl); !ok {
		t.Errorf("expected inner FunctionDecl, got %T", sec.Decl)
	}
}

func TestVariableQualifiers(t *testing.T) {
	prog := mustParse(t, "const volatile cfg: u32 = 7;")
	decl := prog.Declarations[0].(*ast.VarDecl)
	if !decl.Const || !decl.Volatile {
		t.Errorf("expected both qualifiers: %s", decl)
	}
}
