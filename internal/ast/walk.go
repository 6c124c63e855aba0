package ast

// Inspect traverses the tree rooted at n in depth-first pre-order, calling
// f for every node. If f returns false the node's children are skipped.
// Children appear in source order.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	switch n := n.(type) {
	case *Program:
		for _, d := range n.Declarations {
			walk(d, f)
		}

	case *Literal, *Variable, *ScopePath:
		// leaves

	case *Unary:
		walk(n.Operand, f)
	case *Binary:
		walk(n.Left, f)
		walk(n.Right, f)
	case *Group:
		walk(n.Inner, f)
	case *Call:
		walk(n.Callee, f)
		for _, a := range n.Args {
			walk(a, f)
		}
	case *MemberGet:
		walk(n.Object, f)
	case *MemberSet:
		walk(n.Object, f)
		walk(n.Value, f)
	case *ArrayLiteral:
		for _, e := range n.Elements {
			walk(e, f)
		}
	case *DictLiteral:
		for _, e := range n.Entries {
			walk(e.Key, f)
			walk(e.Value, f)
		}
	case *Subscript:
		walk(n.Target, f)
		walk(n.Index, f)
	case *Ternary:
		walk(n.Cond, f)
		walk(n.Then, f)
		walk(n.Else, f)
	case *InterpolatedString:
		for _, p := range n.Parts {
			walk(p.Expr, f)
		}
	case *Cast:
		walk(n.Value, f)
		walk(n.Target, f)
	case *Assign:
		walk(n.Target, f)
		walk(n.Value, f)
	case *SizeOf:
		walk(n.Target, f)
	case *TypeOf:
		walk(n.Operand, f)
	case *GenericOp:
		walk(n.Left, f)
		walk(n.Right, f)
	case *AddressOf:
		walk(n.Operand, f)
	case *Dereference:
		walk(n.Operand, f)

	case *ExpressionStmt:
		walk(n.Expr, f)
	case *Block:
		for _, s := range n.Statements {
			walk(s, f)
		}
	case *VarStmt:
		if n.Decl != nil {
			walk(n.Decl, f)
		}
	case *If:
		walk(n.Cond, f)
		walk(n.Then, f)
		walk(n.Else, f)
	case *While:
		walk(n.Cond, f)
		walk(n.Body, f)
	case *DoWhile:
		walk(n.Body, f)
		walk(n.Cond, f)
	case *For:
		walk(n.Init, f)
		walk(n.Cond, f)
		walk(n.Update, f)
		walk(n.Body, f)
	case *ForIn:
		if n.Key != nil {
			walk(n.Key, f)
		}
		if n.Value != nil {
			walk(n.Value, f)
		}
		walk(n.Iterable, f)
		walk(n.Body, f)
	case *Return:
		walk(n.Value, f)
	case *Break, *Continue:
		// leaves
	case *Throw:
		walk(n.Value, f)
		if n.Body != nil {
			walk(n.Body, f)
		}
	case *TryCatch:
		if n.Try != nil {
			walk(n.Try, f)
		}
		for _, c := range n.Catches {
			if c.Var != nil {
				walk(c.Var, f)
			}
			walk(c.Type, f)
			if c.Body != nil {
				walk(c.Body, f)
			}
		}
	case *Switch:
		walk(n.Value, f)
		for _, c := range n.Cases {
			walk(c.Value, f)
			if c.Body != nil {
				walk(c.Body, f)
			}
		}
		if n.Default != nil {
			walk(n.Default, f)
		}
	case *Assert:
		walk(n.Cond, f)
		walk(n.Message, f)
	case *DeclStmt:
		walk(n.Decl, f)

	case *NamedType, *DataAliasDecl, *ImportDecl, *UsingDecl, *AsmDecl:
		// leaves

	case *ArrayType:
		walk(n.Element, f)
		walk(n.Size, f)
	case *PointerType:
		walk(n.Pointee, f)
	case *FunctionType:
		for _, p := range n.Params {
			walk(p, f)
		}
		walk(n.Return, f)
	case *DataType:
		walk(n.Align, f)
	case *GenericType:
		for _, a := range n.Args {
			walk(a, f)
		}

	case *FunctionDecl:
		for _, p := range n.Params {
			walk(p.Type, f)
		}
		walk(n.Return, f)
		if n.Body != nil {
			walk(n.Body, f)
		}
	case *VarDecl:
		walk(n.Type, f)
		walk(n.Init, f)
	case *ObjectDecl:
		for _, p := range n.TemplateParams {
			walk(p.Type, f)
		}
		for _, m := range n.Members {
			walk(m, f)
		}
	case *StructDecl:
		for _, fld := range n.Fields {
			walk(fld.Type, f)
			walk(fld.Align, f)
		}
	case *NamespaceDecl:
		for _, d := range n.Decls {
			walk(d, f)
		}
	case *OperatorDecl:
		for _, p := range n.Params {
			walk(p.Type, f)
		}
		walk(n.Return, f)
		if n.Body != nil {
			walk(n.Body, f)
		}
	case *EnumDecl:
		for _, m := range n.Members {
			walk(m.Value, f)
		}
	case *TemplateDecl:
		for _, p := range n.Params {
			walk(p.Type, f)
		}
		walk(n.Inner, f)
	case *SectionDecl:
		walk(n.Decl, f)
		walk(n.Address, f)
	}
}

func walk(n Node, f func(Node) bool) {
	if n != nil {
		Inspect(n, f)
	}
}
