package parser

import (
	"testing"

	"github.com/flux-lang/flux/internal/ast"
	"github.com/flux-lang/flux/internal/diagnostics"
	"github.com/flux-lang/flux/internal/lexer"
)

func parseFile(t *testing.T, src string) (*ast.Program, *diagnostics.Sink) {
	t.Helper()
	prog, sink := ParseSource(src, "test.flux")
	if prog == nil {
		t.Fatalf("Parse returned nil program for %q", src)
	}
	return prog, sink
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, sink := parseFile(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %v", src, sink.All())
	}
	return prog
}

func exprFrom(t *testing.T, src string) (ast.Expression, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	p := New(lexer.New(src, "test.flux"), sink)
	return p.parseExpression(), sink
}

func mustExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	expr, sink := exprFrom(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %v", src, sink.All())
	}
	if expr == nil {
		t.Fatalf("nil expression for %q", src)
	}
	return expr
}

// stmtsFrom parses body inside a function so statement productions see a
// realistic context.
func stmtsFrom(t *testing.T, body string) []ast.Statement {
	t.Helper()
	prog := mustParse(t, "def main() { "+body+" }")
	if len(prog.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Declarations))
	}
	fn, ok := prog.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected FunctionDecl, got %T", prog.Declarations[0])
	}
	if fn.Body == nil {
		t.Fatalf("function body missing")
	}
	return fn.Body.Statements
}

func typeFrom(t *testing.T, src string) (ast.Type, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	p := New(lexer.New(src, "test.flux"), sink)
	return p.parseType(), sink
}

func TestParseEmptyInput(t *testing.T) {
	prog := mustParse(t, "")
	if len(prog.Declarations) != 0 {
		t.Errorf("expected no declarations, got %d", len(prog.Declarations))
	}
}

func TestParseImports(t *testing.T) {
	prog := mustParse(t, "import core.io as io;\nusing core.mem;\n")
	if len(prog.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Declarations))
	}

	imp, ok := prog.Declarations[0].(*ast.ImportDecl)
	if !ok {
		t.Fatalf("expected ImportDecl, got %T", prog.Declarations[0])
	}
	if len(imp.Path) != 2 || imp.Path[0] != "core" || imp.Path[1] != "io" {
		t.Errorf("wrong import path: %v", imp.Path)
	}
	if imp.Alias != "io" {
		t.Errorf("expected alias io, got %q", imp.Alias)
	}

	use, ok := prog.Declarations[1].(*ast.UsingDecl)
	if !ok {
		t.Fatalf("expected UsingDecl, got %T", prog.Declarations[1])
	}
	if len(use.Path) != 2 || use.Path[0] != "core" || use.Path[1] != "mem" {
		t.Errorf("wrong using path: %v", use.Path)
	}
}

func TestParseTopLevelVariables(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "typed with initializer",
			input:    "x: int = 1;",
			expected: "x: int = 1;",
		},
		{
			name:     "type annotation only",
			input:    "buffer: u8[64];",
			expected: "buffer: u8[64];",
		},
		{
			name:     "inferred initializer",
			input:    "count = 0;",
			expected: "count = 0;",
		},
		{
			name:     "const qualifier",
			input:    "const limit: int = 8;",
			expected: "const limit: int = 8;",
		},
		{
			name:     "volatile qualifier",
			input:    "volatile status: u32;",
			expected: "volatile status: u32;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.input)
			if len(prog.Declarations) != 1 {
				t.Fatalf("expected 1 declaration, got %d", len(prog.Declarations))
			}
			decl, ok := prog.Declarations[0].(*ast.VarDecl)
			if !ok {
				t.Fatalf("expected VarDecl, got %T", prog.Declarations[0])
			}
			if got := decl.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestParseMultipleDeclarations(t *testing.T) {
	src := `
import core.io;

threshold: int = 10;

def main() -> int {
    return threshold;
}
`
	prog := mustParse(t, src)
	if len(prog.Declarations) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(prog.Declarations))
	}
	if _, ok := prog.Declarations[0].(*ast.ImportDecl); !ok {
		t.Errorf("declaration 0: expected ImportDecl, got %T", prog.Declarations[0])
	}
	if _, ok := prog.Declarations[1].(*ast.VarDecl); !ok {
		t.Errorf("declaration 1: expected VarDecl, got %T", prog.Declarations[1])
	}
	fn, ok := prog.Declarations[2].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("declaration 2: expected FunctionDecl, got %T", prog.Declarations[2])
	}
	if fn.Name != "main" {
		t.Errorf("expected function main, got %q", fn.Name)
	}
}

func TestProgramSpanCoversDeclarations(t *testing.T) {
	prog := mustParse(t, "x: int = 1;\ny: int = 2;\n")
	if len(prog.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Declarations))
	}
	first := prog.Declarations[0].GetSpan()
	last := prog.Declarations[1].GetSpan()
	if prog.Span.Start.Offset > first.Start.Offset {
		t.Errorf("program span starts after first declaration")
	}
	if prog.Span.End.Offset < last.End.Offset {
		t.Errorf("program span ends before last declaration")
	}
	if first.Start.Line != 1 || last.Start.Line != 2 {
		t.Errorf("wrong declaration lines: %d and %d", first.Start.Line, last.Start.Line)
	}
}

func TestParseInterpolatedString(t *testing.T) {
	prog := mustParse(t, `msg = "n={x + 1}!";`)
	decl, ok := prog.Declarations[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected VarDecl, got %T", prog.Declarations[0])
	}
	interp, ok := decl.Init.(*ast.InterpolatedString)
	if !ok {
		t.Fatalf("expected InterpolatedString, got %T", decl.Init)
	}
	if len(interp.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(interp.Parts))
	}
	if interp.Parts[0].Text != "n=" {
		t.Errorf("expected text part %q, got %q", "n=", interp.Parts[0].Text)
	}
	hole := interp.Parts[1].Expr
	if hole == nil {
		t.Fatalf("hole expression missing")
	}
	if got := hole.String(); got != "(x + 1)" {
		t.Errorf("expected (x + 1), got %s", got)
	}
	if interp.Parts[2].Text != "!" {
		t.Errorf("expected text part %q, got %q", "!", interp.Parts[2].Text)
	}
}

func TestInterpolationHoleSpans(t *testing.T) {
	// Column of the hole's first token must point inside the string
	// literal: m s g space = space " n = { x ...
	prog := mustParse(t, `msg = "n={x + 1}!";`)
	decl := prog.Declarations[0].(*ast.VarDecl)
	interp := decl.Init.(*ast.InterpolatedString)
	hole := interp.Parts[1].Expr
	start := hole.GetSpan().Start
	if start.Line != 1 {
		t.Errorf("expected hole on line 1, got %d", start.Line)
	}
	if start.Column != 11 {
		t.Errorf("expected hole at column 11, got %d", start.Column)
	}
}

func TestInterpolationEscapedBraces(t *testing.T) {
	prog := mustParse(t, `msg = "{{x}}={x}";`)
	decl := prog.Declarations[0].(*ast.VarDecl)
	interp := decl.Init.(*ast.InterpolatedString)
	if len(interp.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(interp.Parts))
	}
	if interp.Parts[0].Text != "{x}=" {
		t.Errorf("expected literal braces text %q, got %q", "{x}=", interp.Parts[0].Text)
	}
	if interp.Parts[1].Expr == nil || interp.Parts[1].Expr.String() != "x" {
		t.Errorf("expected hole x, got %v", interp.Parts[1].Expr)
	}
}

func TestParsedTreeClonesClean(t *testing.T) {
	src := `
import core.io;

object Counter {
    value: int = 0;

    def bump(step: int) -> int {
        value += step;
        return value;
    }
}

def main() -> int {
    c: Counter;
    for (i = 0; i < 4; i += 1) {
        c.bump(i);
    }
    return c.value;
}
`
	prog := mustParse(t, src)
	clone := prog.Clone()
	if got, want := ast.Sprint(clone), ast.Sprint(prog); got != want {
		t.Errorf("clone dump differs from original\noriginal:\n%s\nclone:\n%s", want, got)
	}
	clone.Declarations = clone.Declarations[:1]
	if len(prog.Declarations) != 3 {
		t.Errorf("mutating clone affected original: %d declarations", len(prog.Declarations))
	}
}
