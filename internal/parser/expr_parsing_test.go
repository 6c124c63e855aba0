package parser

import (
	"testing"

	"github.com/flux-lang/flux/internal/ast"
	"github.com/flux-lang/flux/internal/diagnostics"
)

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "multiplication over addition",
			input:    "1 + 2 * 3",
			expected: "(1 + (2 * 3))",
		},
		{
			name:     "addition after multiplication",
			input:    "1 * 2 + 3",
			expected: "((1 * 2) + 3)",
		},
		{
			name:     "exponent over multiplication",
			input:    "2 * 3 ** 4",
			expected: "(2 * (3 ** 4))",
		},
		{
			name:     "shift under addition",
			input:    "a + b << c",
			expected: "((a + b) << c)",
		},
		{
			name:     "relational over shift",
			input:    "a << b < c",
			expected: "((a << b) < c)",
		},
		{
			name:     "equality groups relational operands",
			input:    "a < b == c > d",
			expected: "((a < b) == (c > d))",
		},
		{
			name:     "bitwise ladder",
			input:    "a | b ^ c & d",
			expected: "(a | (b ^ (c & d)))",
		},
		{
			name:     "logical and over or",
			input:    "a && b || c",
			expected: "((a && b) || c)",
		},
		{
			name:     "word operators share the symbol tiers",
			input:    "a or b and c",
			expected: "(a or (b and c))",
		},
		{
			name:     "word xor sits at bit xor",
			input:    "a xor b & c",
			expected: "(a xor (b & c))",
		},
		{
			name:     "identity under equality",
			input:    "a == b is c",
			expected: "(a == (b is c))",
		},
		{
			name:     "unary binds over exponent",
			input:    "-x ** 2",
			expected: "((-x) ** 2)",
		},
		{
			name:     "unary not under logical and",
			input:    "not x and y",
			expected: "((not x) and y)",
		},
		{
			name:     "bang under logical or",
			input:    "!a || b",
			expected: "((!a) || b)",
		},
		{
			name:     "tilde under bit and",
			input:    "~a & b",
			expected: "((~a) & b)",
		},
		{
			name:     "dereference under addition",
			input:    "*p + 1",
			expected: "((*p) + 1)",
		},
		{
			name:     "address-of under equality",
			input:    "@x == y",
			expected: "((@x) == y)",
		},
		{
			name:     "grouping overrides precedence",
			input:    "(1 + 2) * 3",
			expected: "(((1 + 2)) * 3)",
		},
		{
			name:     "sizeof is an operand",
			input:    "sizeof(int) + 1",
			expected: "(sizeof(int) + 1)",
		},
		{
			name:     "member chain then postfix",
			input:    "a.b(c)[d]++",
			expected: "(a.b(c)[d]++)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := mustExpr(t, tt.input)
			if got := expr.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestRightAssociativity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "assignment chains to the right",
			input:    "a = b = c",
			expected: "(a = (b = c))",
		},
		{
			name:     "compound assignment chains to the right",
			input:    "a += b -= c",
			expected: "(a += (b -= c))",
		},
		{
			name:     "exponent chains to the right",
			input:    "2 ** 3 ** 2",
			expected: "(2 ** (3 ** 2))",
		},
		{
			name:     "ternary chains to the right",
			input:    "a ? b : c ? d : e",
			expected: "(a ? b : (c ? d : e))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := mustExpr(t, tt.input)
			if got := expr.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}

	t.Run("assignment nests structurally", func(t *testing.T) {
		expr := mustExpr(t, "a = b = c")
		outer, ok := expr.(*ast.Assign)
		if !ok {
			t.Fatalf("expected Assign, got %T", expr)
		}
		if _, ok := outer.Value.(*ast.Assign); !ok {
			t.Errorf("expected nested Assign on the right, got %T", outer.Value)
		}
	})

	t.Run("exponent nests structurally", func(t *testing.T) {
		expr := mustExpr(t, "2 ** 3 ** 2")
		outer, ok := expr.(*ast.Binary)
		if !ok {
			t.Fatalf("expected Binary, got %T", expr)
		}
		right, ok := outer.Right.(*ast.Binary)
		if !ok {
			t.Fatalf("expected Binary on the right, got %T", outer.Right)
		}
		if right.Operator != "**" {
			t.Errorf("expected ** on the right, got %q", right.Operator)
		}
	})
}

func TestCastAndTernary(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple cast",
			input:    "x : float",
			expected: "(x : float)",
		},
		{
			name:     "cast to array type",
			input:    "x : u8[4]",
			expected: "(x : u8[4])",
		},
		{
			name:     "cast binds before ternary",
			input:    "x : Int32 ? 1 : 2",
			expected: "((x : Int32) ? 1 : 2)",
		},
		{
			name:     "cast on ternary result",
			input:    "a ? b : c : Int32",
			expected: "(a ? b : (c : Int32))",
		},
		{
			name:     "cast applies after arithmetic",
			input:    "a + b : float",
			expected: "((a + b) : float)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := mustExpr(t, tt.input)
			if got := expr.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}

	t.Run("ternary condition is the cast node", func(t *testing.T) {
		expr := mustExpr(t, "x : Int32 ? 1 : 2")
		tern, ok := expr.(*ast.Ternary)
		if !ok {
			t.Fatalf("expected Ternary, got %T", expr)
		}
		if _, ok := tern.Cond.(*ast.Cast); !ok {
			t.Errorf("expected Cast condition, got %T", tern.Cond)
		}
	})
}

func TestIdentityOperators(t *testing.T) {
	expr := mustExpr(t, "x is not y")
	bin, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected Binary, got %T", expr)
	}
	if bin.Operator != "is not" {
		t.Errorf("expected operator %q, got %q", "is not", bin.Operator)
	}

	expr = mustExpr(t, "x is y")
	bin, ok = expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected Binary, got %T", expr)
	}
	if bin.Operator != "is" {
		t.Errorf("expected operator %q, got %q", "is", bin.Operator)
	}
}

func TestMemberAssignment(t *testing.T) {
	t.Run("plain assign to member becomes MemberSet", func(t *testing.T) {
		expr := mustExpr(t, "x.a = 1")
		set, ok := expr.(*ast.MemberSet)
		if !ok {
			t.Fatalf("expected MemberSet, got %T", expr)
		}
		if set.Name != "a" {
			t.Errorf("expected member a, got %q", set.Name)
		}
		if got := set.String(); got != "(x.a = 1)" {
			t.Errorf("expected (x.a = 1), got %s", got)
		}
	})

	t.Run("compound member assignment stays Assign", func(t *testing.T) {
		expr := mustExpr(t, "x.a += 1")
		if _, ok := expr.(*ast.Assign); !ok {
			t.Fatalf("expected Assign, got %T", expr)
		}
	})

	t.Run("subscript assignment stays Assign", func(t *testing.T) {
		expr := mustExpr(t, "x[0] = 1")
		if _, ok := expr.(*ast.Assign); !ok {
			t.Fatalf("expected Assign, got %T", expr)
		}
	})
}

func TestPrimaryForms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "array literal",
			input:    "[1, 2, 3]",
			expected: "[1, 2, 3]",
		},
		{
			name:     "empty array literal",
			input:    "[]",
			expected: "[]",
		},
		{
			name:     "dictionary literal",
			input:    `{"k": 1, "j": 2}`,
			expected: `{"k": 1, "j": 2}`,
		},
		{
			name:     "dictionary value may be a ternary",
			input:    `{"k": a ? 1 : 2}`,
			expected: `{"k": (a ? 1 : 2)}`,
		},
		{
			name:     "typeof",
			input:    "typeof(x + 1)",
			expected: "typeof((x + 1))",
		},
		{
			name:     "explicit operator application",
			input:    "op<a + b>",
			expected: "op<a + b>",
		},
		{
			name:     "address expression",
			input:    "address<buf>",
			expected: "(@buf)",
		},
		{
			name:     "this reads as a variable",
			input:    "this.count",
			expected: "this.count",
		},
		{
			name:     "boolean literals",
			input:    "true == false",
			expected: "(true == false)",
		},
		{
			name:     "call with assignment argument",
			input:    "f(a = 1, 2)",
			expected: "f((a = 1), 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := mustExpr(t, tt.input)
			if got := expr.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestGenericOpSymbol(t *testing.T) {
	expr := mustExpr(t, "op<a >> b>")
	gop, ok := expr.(*ast.GenericOp)
	if !ok {
		t.Fatalf("expected GenericOp, got %T", expr)
	}
	if gop.Operator != ">>" {
		t.Errorf("expected operator >>, got %q", gop.Operator)
	}
}

func TestScopePathExpression(t *testing.T) {
	expr, sink := exprFrom(t, "core::mem::copy")
	path, ok := expr.(*ast.ScopePath)
	if !ok {
		t.Fatalf("expected ScopePath, got %T", expr)
	}
	if len(path.Parts) != 3 {
		t.Errorf("expected 3 segments, got %v", path.Parts)
	}
	if got := path.String(); got != "core::mem::copy" {
		t.Errorf("expected core::mem::copy, got %s", got)
	}
	if sink.ErrorCount() != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", sink.ErrorCount(), sink.All())
	}
	if sink.All()[0].Code != diagnostics.UnsupportedConstruct {
		t.Errorf("expected UnsupportedConstruct, got %s", sink.All()[0].Code)
	}
}
