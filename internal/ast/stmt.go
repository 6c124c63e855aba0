package ast

import (
	"strings"

	"github.com/flux-lang/flux/internal/position"
)

// ExpressionStmt is an expression in statement position.
type ExpressionStmt struct {
	Span position.Span
	Expr Expression
}

func (s *ExpressionStmt) GetSpan() position.Span   { return s.Span }
func (s *ExpressionStmt) String() string           { return s.Expr.String() + ";" }
func (s *ExpressionStmt) Accept(v StmtVisitor) any { return v.VisitExpressionStmt(s) }
func (s *ExpressionStmt) stmtNode()                {}

// Block is `{ stmt* }`.
type Block struct {
	Span       position.Span
	Statements []Statement
}

func (b *Block) GetSpan() position.Span   { return b.Span }
func (b *Block) Accept(v StmtVisitor) any { return v.VisitBlock(b) }
func (b *Block) stmtNode()                {}

func (b *Block) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// VarStmt is a variable declaration in statement position.
type VarStmt struct {
	Span position.Span
	Decl *VarDecl
}

func (s *VarStmt) GetSpan() position.Span   { return s.Span }
func (s *VarStmt) String() string           { return s.Decl.String() }
func (s *VarStmt) Accept(v StmtVisitor) any { return v.VisitVarStmt(s) }
func (s *VarStmt) stmtNode()                {}

// If is `if (cond) then else?`.
type If struct {
	Span position.Span
	Cond Expression
	Then Statement
	Else Statement
}

func (s *If) GetSpan() position.Span   { return s.Span }
func (s *If) Accept(v StmtVisitor) any { return v.VisitIf(s) }
func (s *If) stmtNode()                {}

func (s *If) String() string {
	out := "if (" + s.Cond.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// While is `while (cond) body`.
type While struct {
	Span position.Span
	Cond Expression
	Body Statement
}

func (s *While) GetSpan() position.Span   { return s.Span }
func (s *While) String() string           { return "while (" + s.Cond.String() + ") " + s.Body.String() }
func (s *While) Accept(v StmtVisitor) any { return v.VisitWhile(s) }
func (s *While) stmtNode()                {}

// DoWhile is `do body while (cond);`. The parser desugars the construct
// into a block plus a while loop; this variant exists for tools that build
// or transform trees directly.
type DoWhile struct {
	Span position.Span
	Body Statement
	Cond Expression
}

func (s *DoWhile) GetSpan() position.Span { return s.Span }
func (s *DoWhile) String() string {
	return "do " + s.Body.String() + " while (" + s.Cond.String() + ");"
}
func (s *DoWhile) Accept(v StmtVisitor) any { return v.VisitDoWhile(s) }
func (s *DoWhile) stmtNode()                {}

// For is the C-style three-clause loop; every clause is optional.
type For struct {
	Span   position.Span
	Init   Statement
	Cond   Expression
	Update Expression
	Body   Statement
}

func (s *For) GetSpan() position.Span   { return s.Span }
func (s *For) Accept(v StmtVisitor) any { return v.VisitFor(s) }
func (s *For) stmtNode()                {}

func (s *For) String() string {
	init, cond, update := "", "", ""
	if s.Init != nil {
		init = strings.TrimSuffix(s.Init.String(), ";")
	}
	if s.Cond != nil {
		cond = s.Cond.String()
	}
	if s.Update != nil {
		update = s.Update.String()
	}
	return "for (" + init + "; " + cond + "; " + update + ") " + s.Body.String()
}

// ForIn is `for (value in iterable)` or `for (key, value in iterable)`.
type ForIn struct {
	Span     position.Span
	Key      *Variable
	Value    *Variable
	Iterable Expression
	Body     Statement
}

func (s *ForIn) GetSpan() position.Span   { return s.Span }
func (s *ForIn) Accept(v StmtVisitor) any { return v.VisitForIn(s) }
func (s *ForIn) stmtNode()                {}

func (s *ForIn) String() string {
	head := s.Value.String()
	if s.Key != nil {
		head = s.Key.String() + ", " + head
	}
	return "for (" + head + " in " + s.Iterable.String() + ") " + s.Body.String()
}

// Return is `return expr?;`.
type Return struct {
	Span  position.Span
	Value Expression
}

func (s *Return) GetSpan() position.Span   { return s.Span }
func (s *Return) Accept(v StmtVisitor) any { return v.VisitReturn(s) }
func (s *Return) stmtNode()                {}

func (s *Return) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// Break is `break;`.
type Break struct {
	Span position.Span
}

func (s *Break) GetSpan() position.Span   { return s.Span }
func (s *Break) String() string           { return "break;" }
func (s *Break) Accept(v StmtVisitor) any { return v.VisitBreak(s) }
func (s *Break) stmtNode()                {}

// Continue is `continue;`.
type Continue struct {
	Span position.Span
}

func (s *Continue) GetSpan() position.Span   { return s.Span }
func (s *Continue) String() string           { return "continue;" }
func (s *Continue) Accept(v StmtVisitor) any { return v.VisitContinue(s) }
func (s *Continue) stmtNode()                {}

// Throw is `throw (expr)? block?;` with both the thrown value and the
// associated block optional.
type Throw struct {
	Span  position.Span
	Value Expression
	Body  *Block
}

func (s *Throw) GetSpan() position.Span   { return s.Span }
func (s *Throw) Accept(v StmtVisitor) any { return v.VisitThrow(s) }
func (s *Throw) stmtNode()                {}

func (s *Throw) String() string {
	out := "throw"
	if s.Value != nil {
		out += "(" + s.Value.String() + ")"
	}
	if s.Body != nil {
		out += " " + s.Body.String()
		return out
	}
	return out + ";"
}

// CatchClause is one catch arm of a TryCatch; the exception binding and
// its type are optional together or separately.
type CatchClause struct {
	Span position.Span
	Var  *Variable
	Type Type
	Body *Block
}

// TryCatch is `try block catch...` with at least one catch clause on
// well-formed input.
type TryCatch struct {
	Span    position.Span
	Try     *Block
	Catches []CatchClause
}

func (s *TryCatch) GetSpan() position.Span   { return s.Span }
func (s *TryCatch) Accept(v StmtVisitor) any { return v.VisitTryCatch(s) }
func (s *TryCatch) stmtNode()                {}

func (s *TryCatch) String() string {
	out := "try " + s.Try.String()
	for _, c := range s.Catches {
		out += " catch"
		if c.Var != nil {
			out += " (" + c.Var.String()
			if c.Type != nil {
				out += ": " + c.Type.String()
			}
			out += ")"
		}
		out += " " + c.Body.String()
	}
	return out
}

// SwitchCase is one `case (value) { body }` clause.
type SwitchCase struct {
	Span  position.Span
	Value Expression
	Body  *Block
}

// Switch is `switch (value) { case... default? }`. Default holds the body
// of the at-most-one default clause.
type Switch struct {
	Span    position.Span
	Value   Expression
	Cases   []SwitchCase
	Default *Block
}

func (s *Switch) GetSpan() position.Span   { return s.Span }
func (s *Switch) Accept(v StmtVisitor) any { return v.VisitSwitch(s) }
func (s *Switch) stmtNode()                {}

func (s *Switch) String() string {
	out := "switch (" + s.Value.String() + ") {"
	for _, c := range s.Cases {
		out += " case (" + c.Value.String() + ") " + c.Body.String()
	}
	if s.Default != nil {
		out += " default " + s.Default.String()
	}
	return out + " }"
}

// Assert is `assert(cond, message?);`. The parser desugars asserts into an
// if/throw pair; the variant exists for tools that build trees directly.
type Assert struct {
	Span    position.Span
	Cond    Expression
	Message Expression
}

func (s *Assert) GetSpan() position.Span   { return s.Span }
func (s *Assert) Accept(v StmtVisitor) any { return v.VisitAssert(s) }
func (s *Assert) stmtNode()                {}

func (s *Assert) String() string {
	if s.Message == nil {
		return "assert(" + s.Cond.String() + ");"
	}
	return "assert(" + s.Cond.String() + ", " + s.Message.String() + ");"
}

// DeclStmt wraps a declaration appearing in statement position.
type DeclStmt struct {
	Span position.Span
	Decl Declaration
}

func (s *DeclStmt) GetSpan() position.Span   { return s.Span }
func (s *DeclStmt) String() string           { return s.Decl.String() }
func (s *DeclStmt) Accept(v StmtVisitor) any { return v.VisitDeclStmt(s) }
func (s *DeclStmt) stmtNode()                {}
