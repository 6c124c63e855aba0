package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flux-lang/flux/internal/position"
)

// Literal is a literal value: integer, float, string, or boolean. Value
// holds the decoded payload (int64, float64, string, bool); Raw keeps the
// source spelling when the literal came from a token.
type Literal struct {
	Span  position.Span
	Value any
	Raw   string
}

func (l *Literal) GetSpan() position.Span   { return l.Span }
func (l *Literal) Accept(v ExprVisitor) any { return v.VisitLiteral(l) }
func (l *Literal) exprNode()                {}

func (l *Literal) String() string {
	if l.Raw != "" {
		return l.Raw
	}
	if s, ok := l.Value.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", l.Value)
}

// Variable is a name reference, including `this`.
type Variable struct {
	Span position.Span
	Name string
}

func (v *Variable) GetSpan() position.Span     { return v.Span }
func (v *Variable) String() string             { return v.Name }
func (v *Variable) Accept(vis ExprVisitor) any { return vis.VisitVariable(v) }
func (v *Variable) exprNode()                  {}

// Unary is a prefix or postfix operator application. Prefix `*` and `@`
// build Dereference and AddressOf instead.
type Unary struct {
	Span     position.Span
	Operator string
	Operand  Expression
	Postfix  bool
}

func (u *Unary) GetSpan() position.Span   { return u.Span }
func (u *Unary) Accept(v ExprVisitor) any { return v.VisitUnary(u) }
func (u *Unary) exprNode()                {}

func (u *Unary) String() string {
	if u.Postfix {
		return "(" + u.Operand.String() + u.Operator + ")"
	}
	if isWordOperator(u.Operator) {
		return "(" + u.Operator + " " + u.Operand.String() + ")"
	}
	return "(" + u.Operator + u.Operand.String() + ")"
}

// Binary is an infix operator application.
type Binary struct {
	Span     position.Span
	Operator string
	Left     Expression
	Right    Expression
}

func (b *Binary) GetSpan() position.Span   { return b.Span }
func (b *Binary) Accept(v ExprVisitor) any { return v.VisitBinary(b) }
func (b *Binary) exprNode()                {}

func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// Group is a parenthesized expression, kept as a node so spans and
// pretty-printing round-trip.
type Group struct {
	Span  position.Span
	Inner Expression
}

func (g *Group) GetSpan() position.Span   { return g.Span }
func (g *Group) String() string           { return "(" + g.Inner.String() + ")" }
func (g *Group) Accept(v ExprVisitor) any { return v.VisitGroup(g) }
func (g *Group) exprNode()                {}

// Call is a function or method invocation.
type Call struct {
	Span   position.Span
	Callee Expression
	Args   []Expression
}

func (c *Call) GetSpan() position.Span   { return c.Span }
func (c *Call) Accept(v ExprVisitor) any { return v.VisitCall(c) }
func (c *Call) exprNode()                {}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// MemberGet reads a member: `object.name`.
type MemberGet struct {
	Span   position.Span
	Object Expression
	Name   string
}

func (m *MemberGet) GetSpan() position.Span   { return m.Span }
func (m *MemberGet) String() string           { return m.Object.String() + "." + m.Name }
func (m *MemberGet) Accept(v ExprVisitor) any { return v.VisitMemberGet(m) }
func (m *MemberGet) exprNode()                {}

// MemberSet writes a member: `object.name = value`. Produced when a plain
// assignment's target parsed as a MemberGet.
type MemberSet struct {
	Span   position.Span
	Object Expression
	Name   string
	Value  Expression
}

func (m *MemberSet) GetSpan() position.Span   { return m.Span }
func (m *MemberSet) Accept(v ExprVisitor) any { return v.VisitMemberSet(m) }
func (m *MemberSet) exprNode()                {}

func (m *MemberSet) String() string {
	return "(" + m.Object.String() + "." + m.Name + " = " + m.Value.String() + ")"
}

// ArrayLiteral is `[e, e, ...]`.
type ArrayLiteral struct {
	Span     position.Span
	Elements []Expression
}

func (a *ArrayLiteral) GetSpan() position.Span   { return a.Span }
func (a *ArrayLiteral) Accept(v ExprVisitor) any { return v.VisitArrayLiteral(a) }
func (a *ArrayLiteral) exprNode()                {}

func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictEntry is one ordered key/value pair of a DictLiteral.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictLiteral is `{k: v, ...}` with insertion order preserved.
type DictLiteral struct {
	Span    position.Span
	Entries []DictEntry
}

func (d *DictLiteral) GetSpan() position.Span   { return d.Span }
func (d *DictLiteral) Accept(v ExprVisitor) any { return v.VisitDictLiteral(d) }
func (d *DictLiteral) exprNode()                {}

func (d *DictLiteral) String() string {
	parts := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Subscript is an index access: `target[index]`.
type Subscript struct {
	Span   position.Span
	Target Expression
	Index  Expression
}

func (s *Subscript) GetSpan() position.Span   { return s.Span }
func (s *Subscript) String() string           { return s.Target.String() + "[" + s.Index.String() + "]" }
func (s *Subscript) Accept(v ExprVisitor) any { return v.VisitSubscript(s) }
func (s *Subscript) exprNode()                {}

// Ternary is `cond ? then : else`, right-associative.
type Ternary struct {
	Span position.Span
	Cond Expression
	Then Expression
	Else Expression
}

func (t *Ternary) GetSpan() position.Span   { return t.Span }
func (t *Ternary) Accept(v ExprVisitor) any { return v.VisitTernary(t) }
func (t *Ternary) exprNode()                {}

func (t *Ternary) String() string {
	return "(" + t.Cond.String() + " ? " + t.Then.String() + " : " + t.Else.String() + ")"
}

// InterpPart is one segment of an interpolated string: either literal text
// (Expr nil) or an embedded expression.
type InterpPart struct {
	Text string
	Expr Expression
}

// InterpolatedString is a string literal with `{expr}` holes, stored as
// alternating text and expression parts.
type InterpolatedString struct {
	Span  position.Span
	Parts []InterpPart
}

func (s *InterpolatedString) GetSpan() position.Span   { return s.Span }
func (s *InterpolatedString) Accept(v ExprVisitor) any { return v.VisitInterpolatedString(s) }
func (s *InterpolatedString) exprNode()                {}

func (s *InterpolatedString) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range s.Parts {
		if p.Expr != nil {
			b.WriteByte('{')
			b.WriteString(p.Expr.String())
			b.WriteByte('}')
		} else {
			b.WriteString(p.Text)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Cast is `value : type`.
type Cast struct {
	Span   position.Span
	Value  Expression
	Target Type
}

func (c *Cast) GetSpan() position.Span   { return c.Span }
func (c *Cast) String() string           { return "(" + c.Value.String() + " : " + c.Target.String() + ")" }
func (c *Cast) Accept(v ExprVisitor) any { return v.VisitCast(c) }
func (c *Cast) exprNode()                {}

// Assign is an assignment expression, plain or compound, right-associative.
type Assign struct {
	Span     position.Span
	Target   Expression
	Operator string
	Value    Expression
}

func (a *Assign) GetSpan() position.Span   { return a.Span }
func (a *Assign) Accept(v ExprVisitor) any { return v.VisitAssign(a) }
func (a *Assign) exprNode()                {}

func (a *Assign) String() string {
	return "(" + a.Target.String() + " " + a.Operator + " " + a.Value.String() + ")"
}

// SizeOf is `sizeof(type)`.
type SizeOf struct {
	Span   position.Span
	Target Type
}

func (s *SizeOf) GetSpan() position.Span   { return s.Span }
func (s *SizeOf) String() string           { return "sizeof(" + s.Target.String() + ")" }
func (s *SizeOf) Accept(v ExprVisitor) any { return v.VisitSizeOf(s) }
func (s *SizeOf) exprNode()                {}

// TypeOf is `typeof(expr)`.
type TypeOf struct {
	Span    position.Span
	Operand Expression
}

func (t *TypeOf) GetSpan() position.Span   { return t.Span }
func (t *TypeOf) String() string           { return "typeof(" + t.Operand.String() + ")" }
func (t *TypeOf) Accept(v ExprVisitor) any { return v.VisitTypeOf(t) }
func (t *TypeOf) exprNode()                {}

// GenericOp is the explicit operator form `op<left SYMBOL right>`.
type GenericOp struct {
	Span     position.Span
	Left     Expression
	Operator string
	Right    Expression
}

func (g *GenericOp) GetSpan() position.Span   { return g.Span }
func (g *GenericOp) Accept(v ExprVisitor) any { return v.VisitGenericOp(g) }
func (g *GenericOp) exprNode()                {}

func (g *GenericOp) String() string {
	return "op<" + g.Left.String() + " " + g.Operator + " " + g.Right.String() + ">"
}

// AddressOf is `@operand` or `address<operand>`.
type AddressOf struct {
	Span    position.Span
	Operand Expression
}

func (a *AddressOf) GetSpan() position.Span   { return a.Span }
func (a *AddressOf) String() string           { return "(@" + a.Operand.String() + ")" }
func (a *AddressOf) Accept(v ExprVisitor) any { return v.VisitAddressOf(a) }
func (a *AddressOf) exprNode()                {}

// Dereference is prefix `*operand`.
type Dereference struct {
	Span    position.Span
	Operand Expression
}

func (d *Dereference) GetSpan() position.Span   { return d.Span }
func (d *Dereference) String() string           { return "(*" + d.Operand.String() + ")" }
func (d *Dereference) Accept(v ExprVisitor) any { return v.VisitDereference(d) }
func (d *Dereference) exprNode()                {}

// ScopePath is a `::`-qualified path. The parser flags it as unsupported
// but still builds the node so tooling sees the structure.
type ScopePath struct {
	Span  position.Span
	Parts []string
}

func (s *ScopePath) GetSpan() position.Span   { return s.Span }
func (s *ScopePath) String() string           { return strings.Join(s.Parts, "::") }
func (s *ScopePath) Accept(v ExprVisitor) any { return v.VisitScopePath(s) }
func (s *ScopePath) exprNode()                {}

func isWordOperator(op string) bool {
	for _, r := range op {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return len(op) > 0
}
