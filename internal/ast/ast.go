// Package ast defines the Flux abstract syntax tree: four closed node
// families (expressions, statements, type expressions, declarations), the
// per-family visitor contracts, deep cloning, and traversal helpers.
//
// Each family is a sum type: an interface with an unexported marker method,
// implemented by a fixed set of variants in this package. Consumers that
// switch over a family can rely on the set being closed. Every node carries
// the source span it was parsed from. Node string fields that came from
// source text are slices of the original buffer, so a tree must not outlive
// the source it was parsed from.
package ast

import (
	"github.com/flux-lang/flux/internal/position"
)

// Node is implemented by every AST node in all four families.
type Node interface {
	GetSpan() position.Span
	String() string
}

// Expression is the expression family marker.
type Expression interface {
	Node
	Accept(v ExprVisitor) any
	Clone() Expression
	exprNode()
}

// Statement is the statement family marker.
type Statement interface {
	Node
	Accept(v StmtVisitor) any
	Clone() Statement
	stmtNode()
}

// Type is the type-expression family marker.
type Type interface {
	Node
	Accept(v TypeVisitor) any
	Clone() Type
	typeNode()
}

// Declaration is the declaration family marker.
type Declaration interface {
	Node
	Accept(v DeclVisitor) any
	Clone() Declaration
	declNode()
}

// Program is the root of ownership: the ordered top-level declarations of
// one source file. It is not a member of any family.
type Program struct {
	Span         position.Span
	Declarations []Declaration
}

func (p *Program) GetSpan() position.Span { return p.Span }

func (p *Program) String() string {
	return "program"
}

// Clone deep-copies the whole tree. The result shares nothing with the
// original except borrowed lexeme text.
func (p *Program) Clone() *Program {
	out := *p
	out.Declarations = cloneDecls(p.Declarations)
	return &out
}

func cloneExprs(in []Expression) []Expression {
	if in == nil {
		return nil
	}
	out := make([]Expression, len(in))
	for i, e := range in {
		if e != nil {
			out[i] = e.Clone()
		}
	}
	return out
}

func cloneStmts(in []Statement) []Statement {
	if in == nil {
		return nil
	}
	out := make([]Statement, len(in))
	for i, s := range in {
		if s != nil {
			out[i] = s.Clone()
		}
	}
	return out
}

func cloneTypes(in []Type) []Type {
	if in == nil {
		return nil
	}
	out := make([]Type, len(in))
	for i, t := range in {
		if t != nil {
			out[i] = t.Clone()
		}
	}
	return out
}

func cloneDecls(in []Declaration) []Declaration {
	if in == nil {
		return nil
	}
	out := make([]Declaration, len(in))
	for i, d := range in {
		if d != nil {
			out[i] = d.Clone()
		}
	}
	return out
}

func cloneExpr(e Expression) Expression {
	if e == nil {
		return nil
	}
	return e.Clone()
}

func cloneStmt(s Statement) Statement {
	if s == nil {
		return nil
	}
	return s.Clone()
}

func cloneType(t Type) Type {
	if t == nil {
		return nil
	}
	return t.Clone()
}

func cloneDecl(d Declaration) Declaration {
	if d == nil {
		return nil
	}
	return d.Clone()
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
