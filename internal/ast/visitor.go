package ast

// ExprVisitor has one method per expression variant. Accept dispatches to
// the method for the receiver's concrete type and returns its result.
type ExprVisitor interface {
	VisitLiteral(n *Literal) any
	VisitVariable(n *Variable) any
	VisitUnary(n *Unary) any
	VisitBinary(n *Binary) any
	VisitGroup(n *Group) any
	VisitCall(n *Call) any
	VisitMemberGet(n *MemberGet) any
	VisitMemberSet(n *MemberSet) any
	VisitArrayLiteral(n *ArrayLiteral) any
	VisitDictLiteral(n *DictLiteral) any
	VisitSubscript(n *Subscript) any
	VisitTernary(n *Ternary) any
	VisitInterpolatedString(n *InterpolatedString) any
	VisitCast(n *Cast) any
	VisitAssign(n *Assign) any
	VisitSizeOf(n *SizeOf) any
	VisitTypeOf(n *TypeOf) any
	VisitGenericOp(n *GenericOp) any
	VisitAddressOf(n *AddressOf) any
	VisitDereference(n *Dereference) any
	VisitScopePath(n *ScopePath) any
}

// StmtVisitor has one method per statement variant.
type StmtVisitor interface {
	VisitExpressionStmt(n *ExpressionStmt) any
	VisitBlock(n *Block) any
	VisitVarStmt(n *VarStmt) any
	VisitIf(n *If) any
	VisitWhile(n *While) any
	VisitDoWhile(n *DoWhile) any
	VisitFor(n *For) any
	VisitForIn(n *ForIn) any
	VisitReturn(n *Return) any
	VisitBreak(n *Break) any
	VisitContinue(n *Continue) any
	VisitThrow(n *Throw) any
	VisitTryCatch(n *TryCatch) any
	VisitSwitch(n *Switch) any
	VisitAssert(n *Assert) any
	VisitDeclStmt(n *DeclStmt) any
}

// TypeVisitor has one method per type variant.
type TypeVisitor interface {
	VisitNamedType(n *NamedType) any
	VisitArrayType(n *ArrayType) any
	VisitPointerType(n *PointerType) any
	VisitFunctionType(n *FunctionType) any
	VisitDataType(n *DataType) any
	VisitGenericType(n *GenericType) any
}

// DeclVisitor has one method per declaration variant.
type DeclVisitor interface {
	VisitFunctionDecl(n *FunctionDecl) any
	VisitVarDecl(n *VarDecl) any
	VisitObjectDecl(n *ObjectDecl) any
	VisitStructDecl(n *StructDecl) any
	VisitNamespaceDecl(n *NamespaceDecl) any
	VisitImportDecl(n *ImportDecl) any
	VisitUsingDecl(n *UsingDecl) any
	VisitOperatorDecl(n *OperatorDecl) any
	VisitDataAliasDecl(n *DataAliasDecl) any
	VisitEnumDecl(n *EnumDecl) any
	VisitTemplateDecl(n *TemplateDecl) any
	VisitAsmDecl(n *AsmDecl) any
	VisitSectionDecl(n *SectionDecl) any
}
