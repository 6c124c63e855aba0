package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of the tree rooted at n to w, one node
// per line. It is the debugging view used by `flux parse`.
func Fprint(w io.Writer, n Node) error {
	p := &printer{w: w}
	p.node(n)
	return p.err
}

// Sprint returns the Fprint dump as a string.
func Sprint(n Node) string {
	var sb strings.Builder
	Fprint(&sb, n)
	return sb.String()
}

// printer implements all four visitor interfaces; dispatch runs through
// each node's Accept so the dump doubles as a traversal of the visitor
// contract.
type printer struct {
	w     io.Writer
	depth int
	err   error
}

var (
	_ ExprVisitor = (*printer)(nil)
	_ StmtVisitor = (*printer)(nil)
	_ TypeVisitor = (*printer)(nil)
	_ DeclVisitor = (*printer)(nil)
)

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	indent := strings.Repeat("  ", p.depth)
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", indent, fmt.Sprintf(format, args...))
}

func (p *printer) node(n Node) {
	if n == nil {
		return
	}
	switch n := n.(type) {
	case *Program:
		p.line("Program")
		p.depth++
		for _, d := range n.Declarations {
			p.node(d)
		}
		p.depth--
	case Expression:
		n.Accept(p)
	case Statement:
		n.Accept(p)
	case Type:
		n.Accept(p)
	case Declaration:
		n.Accept(p)
	default:
		p.line("%T", n)
	}
}

func (p *printer) child(n Node) {
	p.depth++
	p.node(n)
	p.depth--
}

func (p *printer) children(label string, ns ...Node) {
	all := true
	for _, n := range ns {
		if n != nil {
			all = false
			break
		}
	}
	if all {
		return
	}
	p.line("%s", label)
	p.depth++
	for _, n := range ns {
		p.node(n)
	}
	p.depth--
}

func (p *printer) VisitLiteral(n *Literal) any {
	p.line("Literal %s", n.String())
	return nil
}

func (p *printer) VisitVariable(n *Variable) any {
	p.line("Variable %s", n.Name)
	return nil
}

func (p *printer) VisitUnary(n *Unary) any {
	if n.Postfix {
		p.line("Unary postfix %q", n.Operator)
	} else {
		p.line("Unary %q", n.Operator)
	}
	p.child(n.Operand)
	return nil
}

func (p *printer) VisitBinary(n *Binary) any {
	p.line("Binary %q", n.Operator)
	p.child(n.Left)
	p.child(n.Right)
	return nil
}

func (p *printer) VisitGroup(n *Group) any {
	p.line("Group")
	p.child(n.Inner)
	return nil
}

func (p *printer) VisitCall(n *Call) any {
	p.line("Call")
	p.child(n.Callee)
	for _, a := range n.Args {
		p.child(a)
	}
	return nil
}

func (p *printer) VisitMemberGet(n *MemberGet) any {
	p.line("MemberGet .%s", n.Name)
	p.child(n.Object)
	return nil
}

func (p *printer) VisitMemberSet(n *MemberSet) any {
	p.line("MemberSet .%s", n.Name)
	p.child(n.Object)
	p.child(n.Value)
	return nil
}

func (p *printer) VisitArrayLiteral(n *ArrayLiteral) any {
	p.line("ArrayLiteral")
	for _, e := range n.Elements {
		p.child(e)
	}
	return nil
}

func (p *printer) VisitDictLiteral(n *DictLiteral) any {
	p.line("DictLiteral")
	p.depth++
	for _, e := range n.Entries {
		p.line("Entry")
		p.child(e.Key)
		p.child(e.Value)
	}
	p.depth--
	return nil
}

func (p *printer) VisitSubscript(n *Subscript) any {
	p.line("Subscript")
	p.child(n.Target)
	p.child(n.Index)
	return nil
}

func (p *printer) VisitTernary(n *Ternary) any {
	p.line("Ternary")
	p.child(n.Cond)
	p.child(n.Then)
	p.child(n.Else)
	return nil
}

func (p *printer) VisitInterpolatedString(n *InterpolatedString) any {
	p.line("InterpolatedString")
	p.depth++
	for _, part := range n.Parts {
		if part.Expr != nil {
			p.line("Hole")
			p.child(part.Expr)
		} else {
			p.line("Text %q", part.Text)
		}
	}
	p.depth--
	return nil
}

func (p *printer) VisitCast(n *Cast) any {
	p.line("Cast")
	p.child(n.Value)
	p.child(n.Target)
	return nil
}

func (p *printer) VisitAssign(n *Assign) any {
	p.line("Assign %q", n.Operator)
	p.child(n.Target)
	p.child(n.Value)
	return nil
}

func (p *printer) VisitSizeOf(n *SizeOf) any {
	p.line("SizeOf")
	p.child(n.Target)
	return nil
}

func (p *printer) VisitTypeOf(n *TypeOf) any {
	p.line("TypeOf")
	p.child(n.Operand)
	return nil
}

func (p *printer) VisitGenericOp(n *GenericOp) any {
	p.line("GenericOp %q", n.Operator)
	p.child(n.Left)
	p.child(n.Right)
	return nil
}

func (p *printer) VisitAddressOf(n *AddressOf) any {
	p.line("AddressOf")
	p.child(n.Operand)
	return nil
}

func (p *printer) VisitDereference(n *Dereference) any {
	p.line("Dereference")
	p.child(n.Operand)
	return nil
}

func (p *printer) VisitScopePath(n *ScopePath) any {
	p.line("ScopePath %s", strings.Join(n.Parts, "::"))
	return nil
}

func (p *printer) VisitExpressionStmt(n *ExpressionStmt) any {
	p.line("ExpressionStmt")
	p.child(n.Expr)
	return nil
}

func (p *printer) VisitBlock(n *Block) any {
	p.line("Block")
	for _, s := range n.Statements {
		p.child(s)
	}
	return nil
}

func (p *printer) VisitVarStmt(n *VarStmt) any {
	p.line("VarStmt")
	if n.Decl != nil {
		p.child(n.Decl)
	}
	return nil
}

func (p *printer) VisitIf(n *If) any {
	p.line("If")
	p.child(n.Cond)
	p.child(n.Then)
	if n.Else != nil {
		p.depth++
		p.children("Else", n.Else)
		p.depth--
	}
	return nil
}

func (p *printer) VisitWhile(n *While) any {
	p.line("While")
	p.child(n.Cond)
	p.child(n.Body)
	return nil
}

func (p *printer) VisitDoWhile(n *DoWhile) any {
	p.line("DoWhile")
	p.child(n.Body)
	p.child(n.Cond)
	return nil
}

func (p *printer) VisitFor(n *For) any {
	p.line("For")
	p.child(n.Init)
	p.child(n.Cond)
	p.child(n.Update)
	p.child(n.Body)
	return nil
}

func (p *printer) VisitForIn(n *ForIn) any {
	p.line("ForIn")
	if n.Key != nil {
		p.child(n.Key)
	}
	if n.Value != nil {
		p.child(n.Value)
	}
	p.child(n.Iterable)
	p.child(n.Body)
	return nil
}

func (p *printer) VisitReturn(n *Return) any {
	p.line("Return")
	p.child(n.Value)
	return nil
}

func (p *printer) VisitBreak(n *Break) any {
	p.line("Break")
	return nil
}

func (p *printer) VisitContinue(n *Continue) any {
	p.line("Continue")
	return nil
}

func (p *printer) VisitThrow(n *Throw) any {
	p.line("Throw")
	p.child(n.Value)
	if n.Body != nil {
		p.child(n.Body)
	}
	return nil
}

func (p *printer) VisitTryCatch(n *TryCatch) any {
	p.line("TryCatch")
	if n.Try != nil {
		p.child(n.Try)
	}
	p.depth++
	for _, c := range n.Catches {
		p.line("Catch")
		if c.Var != nil {
			p.child(c.Var)
		}
		if c.Type != nil {
			p.child(c.Type)
		}
		if c.Body != nil {
			p.child(c.Body)
		}
	}
	p.depth--
	return nil
}

func (p *printer) VisitSwitch(n *Switch) any {
	p.line("Switch")
	p.child(n.Value)
	p.depth++
	for _, c := range n.Cases {
		p.line("Case")
		p.child(c.Value)
		if c.Body != nil {
			p.child(c.Body)
		}
	}
	if n.Default != nil {
		p.children("Default", n.Default)
	}
	p.depth--
	return nil
}

func (p *printer) VisitAssert(n *Assert) any {
	p.line("Assert")
	p.child(n.Cond)
	p.child(n.Message)
	return nil
}

func (p *printer) VisitDeclStmt(n *DeclStmt) any {
	p.line("DeclStmt")
	p.child(n.Decl)
	return nil
}

func (p *printer) VisitNamedType(n *NamedType) any {
	p.line("NamedType %s", n.String())
	return nil
}

func (p *printer) VisitArrayType(n *ArrayType) any {
	p.line("ArrayType")
	p.child(n.Element)
	p.child(n.Size)
	return nil
}

func (p *printer) VisitPointerType(n *PointerType) any {
	head := "PointerType"
	if q := qualifierPrefix(n.Const, n.Volatile); q != "" {
		head += " " + strings.TrimSpace(q)
	}
	p.line("%s", head)
	p.child(n.Pointee)
	return nil
}

func (p *printer) VisitFunctionType(n *FunctionType) any {
	p.line("FunctionType")
	for _, t := range n.Params {
		p.child(t)
	}
	if n.Return != nil {
		p.depth++
		p.children("Return", n.Return)
		p.depth--
	}
	return nil
}

func (p *printer) VisitDataType(n *DataType) any {
	sign := "unsigned"
	if n.Signed {
		sign = "signed"
	}
	head := fmt.Sprintf("DataType %s %d", sign, n.Bits)
	if n.Volatile {
		head += " volatile"
	}
	p.line("%s", head)
	p.child(n.Align)
	return nil
}

func (p *printer) VisitGenericType(n *GenericType) any {
	p.line("GenericType %s", strings.Join(n.Path, "."))
	for _, a := range n.Args {
		p.child(a)
	}
	return nil
}

func (p *printer) VisitFunctionDecl(n *FunctionDecl) any {
	head := "FunctionDecl " + n.Name
	if n.Prototype {
		head += " prototype"
	}
	p.line("%s", head)
	p.depth++
	for _, param := range n.Params {
		p.line("Param %s", param.String())
		if param.Type != nil {
			p.child(param.Type)
		}
	}
	if n.Return != nil {
		p.children("Return", n.Return)
	}
	p.depth--
	if n.Body != nil {
		p.child(n.Body)
	}
	return nil
}

func (p *printer) VisitVarDecl(n *VarDecl) any {
	p.line("VarDecl %s%s", qualifierPrefix(n.Const, n.Volatile), n.Name)
	p.child(n.Type)
	p.child(n.Init)
	return nil
}

func (p *printer) VisitObjectDecl(n *ObjectDecl) any {
	kw := "ObjectDecl"
	if n.Class {
		kw = "ClassDecl"
	}
	head := kw + " " + n.Name
	if n.Forward {
		head += " forward"
	}
	if n.Template {
		head += " template"
	}
	p.line("%s", head)
	p.depth++
	if len(n.Bases) > 0 {
		p.line("Bases %s", strings.Join(n.Bases, ", "))
	}
	if len(n.Excluded) > 0 {
		p.line("Excluded %s", strings.Join(n.Excluded, ", "))
	}
	for _, tp := range n.TemplateParams {
		p.line("TemplateParam %s", tp.String())
	}
	for _, m := range n.Members {
		p.node(m)
	}
	p.depth--
	return nil
}

func (p *printer) VisitStructDecl(n *StructDecl) any {
	p.line("StructDecl %s", n.Name)
	p.depth++
	for _, f := range n.Fields {
		head := "Field " + f.Name
		if f.Volatile {
			head = "Field volatile " + f.Name
		}
		p.line("%s", head)
		p.child(f.Type)
		p.child(f.Align)
	}
	p.depth--
	return nil
}

func (p *printer) VisitNamespaceDecl(n *NamespaceDecl) any {
	p.line("NamespaceDecl %s", n.Name)
	for _, d := range n.Decls {
		p.child(d)
	}
	return nil
}

func (p *printer) VisitImportDecl(n *ImportDecl) any {
	if n.Alias != "" {
		p.line("ImportDecl %s as %s", strings.Join(n.Path, "."), n.Alias)
	} else {
		p.line("ImportDecl %s", strings.Join(n.Path, "."))
	}
	return nil
}

func (p *printer) VisitUsingDecl(n *UsingDecl) any {
	p.line("UsingDecl %s", strings.Join(n.Path, "."))
	return nil
}

func (p *printer) VisitOperatorDecl(n *OperatorDecl) any {
	head := "OperatorDecl [" + n.Symbol + "]"
	if n.Prototype {
		head += " prototype"
	}
	p.line("%s", head)
	p.depth++
	for _, param := range n.Params {
		p.line("Param %s", param.String())
		if param.Type != nil {
			p.child(param.Type)
		}
	}
	if n.Return != nil {
		p.children("Return", n.Return)
	}
	p.depth--
	if n.Body != nil {
		p.child(n.Body)
	}
	return nil
}

func (p *printer) VisitDataAliasDecl(n *DataAliasDecl) any {
	p.line("DataAliasDecl %s", strings.TrimSuffix(n.String(), ";"))
	return nil
}

func (p *printer) VisitEnumDecl(n *EnumDecl) any {
	p.line("EnumDecl %s", n.Name)
	p.depth++
	for _, m := range n.Members {
		p.line("Member %s", m.Name)
		p.child(m.Value)
	}
	p.depth--
	return nil
}

func (p *printer) VisitTemplateDecl(n *TemplateDecl) any {
	p.line("TemplateDecl")
	p.depth++
	for _, tp := range n.Params {
		p.line("TemplateParam %s", tp.String())
	}
	p.depth--
	p.child(n.Inner)
	return nil
}

func (p *printer) VisitAsmDecl(n *AsmDecl) any {
	p.line("AsmDecl %q", n.Code)
	return nil
}

func (p *printer) VisitSectionDecl(n *SectionDecl) any {
	p.line("SectionDecl %q %s", n.Name, n.Attribute)
	p.child(n.Decl)
	if n.Address != nil {
		p.depth++
		p.children("Address", n.Address)
		p.depth--
	}
	return nil
}

func qualifierPrefix(constQ, volatileQ bool) string {
	out := ""
	if constQ {
		out += "const "
	}
	if volatileQ {
		out += "volatile "
	}
	return out
}
