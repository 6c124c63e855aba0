package ast

// Clone implementations for every node variant. Each follows the same
// shape: shallow-copy the value, then replace child nodes and slices with
// deep copies. Scalar fields and spans ride along with the shallow copy.

func (n *Literal) Clone() Expression {
	out := *n
	return &out
}

func (n *Variable) Clone() Expression {
	out := *n
	return &out
}

func (n *Unary) Clone() Expression {
	out := *n
	out.Operand = cloneExpr(n.Operand)
	return &out
}

func (n *Binary) Clone() Expression {
	out := *n
	out.Left = cloneExpr(n.Left)
	out.Right = cloneExpr(n.Right)
	return &out
}

func (n *Group) Clone() Expression {
	out := *n
	out.Inner = cloneExpr(n.Inner)
	return &out
}

func (n *Call) Clone() Expression {
	out := *n
	out.Callee = cloneExpr(n.Callee)
	out.Args = cloneExprs(n.Args)
	return &out
}

func (n *MemberGet) Clone() Expression {
	out := *n
	out.Object = cloneExpr(n.Object)
	return &out
}

func (n *MemberSet) Clone() Expression {
	out := *n
	out.Object = cloneExpr(n.Object)
	out.Value = cloneExpr(n.Value)
	return &out
}

func (n *ArrayLiteral) Clone() Expression {
	out := *n
	out.Elements = cloneExprs(n.Elements)
	return &out
}

func (n *DictLiteral) Clone() Expression {
	out := *n
	if n.Entries != nil {
		out.Entries = make([]DictEntry, len(n.Entries))
		for i, e := range n.Entries {
			out.Entries[i] = DictEntry{Key: cloneExpr(e.Key), Value: cloneExpr(e.Value)}
		}
	}
	return &out
}

func (n *Subscript) Clone() Expression {
	out := *n
	out.Target = cloneExpr(n.Target)
	out.Index = cloneExpr(n.Index)
	return &out
}

func (n *Ternary) Clone() Expression {
	out := *n
	out.Cond = cloneExpr(n.Cond)
	out.Then = cloneExpr(n.Then)
	out.Else = cloneExpr(n.Else)
	return &out
}

func (n *InterpolatedString) Clone() Expression {
	out := *n
	if n.Parts != nil {
		out.Parts = make([]InterpPart, len(n.Parts))
		for i, p := range n.Parts {
			out.Parts[i] = InterpPart{Text: p.Text, Expr: cloneExpr(p.Expr)}
		}
	}
	return &out
}

func (n *Cast) Clone() Expression {
	out := *n
	out.Value = cloneExpr(n.Value)
	out.Target = cloneType(n.Target)
	return &out
}

func (n *Assign) Clone() Expression {
	out := *n
	out.Target = cloneExpr(n.Target)
	out.Value = cloneExpr(n.Value)
	return &out
}

func (n *SizeOf) Clone() Expression {
	out := *n
	out.Target = cloneType(n.Target)
	return &out
}

func (n *TypeOf) Clone() Expression {
	out := *n
	out.Operand = cloneExpr(n.Operand)
	return &out
}

func (n *GenericOp) Clone() Expression {
	out := *n
	out.Left = cloneExpr(n.Left)
	out.Right = cloneExpr(n.Right)
	return &out
}

func (n *AddressOf) Clone() Expression {
	out := *n
	out.Operand = cloneExpr(n.Operand)
	return &out
}

func (n *Dereference) Clone() Expression {
	out := *n
	out.Operand = cloneExpr(n.Operand)
	return &out
}

func (n *ScopePath) Clone() Expression {
	out := *n
	out.Parts = cloneStrings(n.Parts)
	return &out
}

func (n *ExpressionStmt) Clone() Statement {
	out := *n
	out.Expr = cloneExpr(n.Expr)
	return &out
}

func (n *Block) Clone() Statement {
	return cloneBlock(n)
}

func (n *VarStmt) Clone() Statement {
	out := *n
	out.Decl = cloneVarDecl(n.Decl)
	return &out
}

func (n *If) Clone() Statement {
	out := *n
	out.Cond = cloneExpr(n.Cond)
	out.Then = cloneStmt(n.Then)
	out.Else = cloneStmt(n.Else)
	return &out
}

func (n *While) Clone() Statement {
	out := *n
	out.Cond = cloneExpr(n.Cond)
	out.Body = cloneStmt(n.Body)
	return &out
}

func (n *DoWhile) Clone() Statement {
	out := *n
	out.Body = cloneStmt(n.Body)
	out.Cond = cloneExpr(n.Cond)
	return &out
}

func (n *For) Clone() Statement {
	out := *n
	out.Init = cloneStmt(n.Init)
	out.Cond = cloneExpr(n.Cond)
	out.Update = cloneExpr(n.Update)
	out.Body = cloneStmt(n.Body)
	return &out
}

func (n *ForIn) Clone() Statement {
	out := *n
	out.Key = cloneVariable(n.Key)
	out.Value = cloneVariable(n.Value)
	out.Iterable = cloneExpr(n.Iterable)
	out.Body = cloneStmt(n.Body)
	return &out
}

func (n *Return) Clone() Statement {
	out := *n
	out.Value = cloneExpr(n.Value)
	return &out
}

func (n *Break) Clone() Statement {
	out := *n
	return &out
}

func (n *Continue) Clone() Statement {
	out := *n
	return &out
}

func (n *Throw) Clone() Statement {
	out := *n
	out.Value = cloneExpr(n.Value)
	out.Body = cloneBlock(n.Body)
	return &out
}

func (n *TryCatch) Clone() Statement {
	out := *n
	out.Try = cloneBlock(n.Try)
	if n.Catches != nil {
		out.Catches = make([]CatchClause, len(n.Catches))
		for i, c := range n.Catches {
			out.Catches[i] = CatchClause{
				Span: c.Span,
				Var:  cloneVariable(c.Var),
				Type: cloneType(c.Type),
				Body: cloneBlock(c.Body),
			}
		}
	}
	return &out
}

func (n *Switch) Clone() Statement {
	out := *n
	out.Value = cloneExpr(n.Value)
	if n.Cases != nil {
		out.Cases = make([]SwitchCase, len(n.Cases))
		for i, c := range n.Cases {
			out.Cases[i] = SwitchCase{Span: c.Span, Value: cloneExpr(c.Value), Body: cloneBlock(c.Body)}
		}
	}
	out.Default = cloneBlock(n.Default)
	return &out
}

func (n *Assert) Clone() Statement {
	out := *n
	out.Cond = cloneExpr(n.Cond)
	out.Message = cloneExpr(n.Message)
	return &out
}

func (n *DeclStmt) Clone() Statement {
	out := *n
	out.Decl = cloneDecl(n.Decl)
	return &out
}

func (n *NamedType) Clone() Type {
	out := *n
	out.Parts = cloneStrings(n.Parts)
	return &out
}

func (n *ArrayType) Clone() Type {
	out := *n
	out.Element = cloneType(n.Element)
	out.Size = cloneExpr(n.Size)
	return &out
}

func (n *PointerType) Clone() Type {
	out := *n
	out.Pointee = cloneType(n.Pointee)
	return &out
}

func (n *FunctionType) Clone() Type {
	out := *n
	out.Params = cloneTypes(n.Params)
	out.Return = cloneType(n.Return)
	return &out
}

func (n *DataType) Clone() Type {
	out := *n
	out.Align = cloneExpr(n.Align)
	return &out
}

func (n *GenericType) Clone() Type {
	out := *n
	out.Path = cloneStrings(n.Path)
	out.Args = cloneTypes(n.Args)
	return &out
}

func (n *FunctionDecl) Clone() Declaration {
	out := *n
	out.Params = cloneParams(n.Params)
	out.Return = cloneType(n.Return)
	out.Body = cloneBlock(n.Body)
	return &out
}

func (n *VarDecl) Clone() Declaration {
	return cloneVarDecl(n)
}

func (n *ObjectDecl) Clone() Declaration {
	out := *n
	out.Bases = cloneStrings(n.Bases)
	out.Excluded = cloneStrings(n.Excluded)
	out.TemplateParams = cloneTemplateParams(n.TemplateParams)
	out.Members = cloneDecls(n.Members)
	return &out
}

func (n *StructDecl) Clone() Declaration {
	out := *n
	if n.Fields != nil {
		out.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			out.Fields[i] = Field{
				Span:     f.Span,
				Name:     f.Name,
				Type:     cloneType(f.Type),
				Align:    cloneExpr(f.Align),
				Volatile: f.Volatile,
			}
		}
	}
	return &out
}

func (n *NamespaceDecl) Clone() Declaration {
	out := *n
	out.Decls = cloneDecls(n.Decls)
	return &out
}

func (n *ImportDecl) Clone() Declaration {
	out := *n
	out.Path = cloneStrings(n.Path)
	return &out
}

func (n *UsingDecl) Clone() Declaration {
	out := *n
	out.Path = cloneStrings(n.Path)
	return &out
}

func (n *OperatorDecl) Clone() Declaration {
	out := *n
	out.Params = cloneParams(n.Params)
	out.Return = cloneType(n.Return)
	out.Body = cloneBlock(n.Body)
	return &out
}

func (n *DataAliasDecl) Clone() Declaration {
	out := *n
	return &out
}

func (n *EnumDecl) Clone() Declaration {
	out := *n
	if n.Members != nil {
		out.Members = make([]EnumMember, len(n.Members))
		for i, m := range n.Members {
			out.Members[i] = EnumMember{Span: m.Span, Name: m.Name, Value: cloneExpr(m.Value)}
		}
	}
	return &out
}

func (n *TemplateDecl) Clone() Declaration {
	out := *n
	out.Params = cloneTemplateParams(n.Params)
	out.Inner = cloneDecl(n.Inner)
	return &out
}

func (n *AsmDecl) Clone() Declaration {
	out := *n
	return &out
}

func (n *SectionDecl) Clone() Declaration {
	out := *n
	out.Decl = cloneDecl(n.Decl)
	out.Address = cloneExpr(n.Address)
	return &out
}

func cloneBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	out := *b
	out.Statements = cloneStmts(b.Statements)
	return &out
}

func cloneVariable(v *Variable) *Variable {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneVarDecl(d *VarDecl) *VarDecl {
	if d == nil {
		return nil
	}
	out := *d
	out.Type = cloneType(d.Type)
	out.Init = cloneExpr(d.Init)
	return &out
}

func cloneParams(in []Param) []Param {
	if in == nil {
		return nil
	}
	out := make([]Param, len(in))
	for i, p := range in {
		out[i] = Param{Span: p.Span, Name: p.Name, Type: cloneType(p.Type)}
	}
	return out
}

func cloneTemplateParams(in []TemplateParam) []TemplateParam {
	if in == nil {
		return nil
	}
	out := make([]TemplateParam, len(in))
	for i, p := range in {
		out[i] = TemplateParam{Span: p.Span, Name: p.Name, Type: cloneType(p.Type)}
	}
	return out
}
