package parser

import (
	"github.com/flux-lang/flux/internal/ast"
	"github.com/flux-lang/flux/internal/diagnostics"
	"github.com/flux-lang/flux/internal/lexer"
)

// declStarters are the tokens that begin a nested declaration in
// statement position.
var declStarters = []lexer.TokenType{
	lexer.TokenDef,
	lexer.TokenObject,
	lexer.TokenClass,
	lexer.TokenStruct,
	lexer.TokenEnum,
	lexer.TokenNamespace,
	lexer.TokenImport,
	lexer.TokenUsing,
	lexer.TokenOperator,
	lexer.TokenTemplate,
	lexer.TokenSigned,
	lexer.TokenUnsigned,
	lexer.TokenData,
	lexer.TokenAsm,
	lexer.TokenSection,
}

// parseStatement dispatches on the current token. A nil result means the
// production was abandoned and the caller should synchronize.
func (p *Parser) parseStatement(ctx context) ast.Statement {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	switch p.current.Type {
	case lexer.TokenSemicolon:
		// Empty statement: skip the whole run, then parse whatever
		// follows, or stand alone at the end of a block.
		tok := p.advance()
		for p.check(lexer.TokenSemicolon) {
			tok = p.advance()
		}
		if p.check(lexer.TokenRBrace) || p.atEnd() {
			return &ast.Block{Span: tok.Span}
		}
		return p.parseStatement(ctx)
	case lexer.TokenLBrace:
		return p.parseBlockBody(ctx)
	case lexer.TokenIf:
		return p.parseIf(ctx)
	case lexer.TokenWhile:
		return p.parseWhile(ctx)
	case lexer.TokenDo:
		return p.parseDoWhile(ctx)
	case lexer.TokenFor:
		return p.parseFor(ctx)
	case lexer.TokenSwitch:
		return p.parseSwitch(ctx)
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenBreak:
		kw := p.advance()
		if !ctx.inLoop && !ctx.inSwitch {
			p.reportKeep(diagnostics.InvalidControlContext, kw.Span, "'break' outside loop or switch")
		}
		end := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after 'break'")
		return &ast.Break{Span: kw.Span.Union(end.Span)}
	case lexer.TokenContinue:
		kw := p.advance()
		if !ctx.inLoop {
			p.reportKeep(diagnostics.InvalidControlContext, kw.Span, "'continue' outside loop")
		}
		end := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after 'continue'")
		return &ast.Continue{Span: kw.Span.Union(end.Span)}
	case lexer.TokenThrow:
		return p.parseThrow(ctx)
	case lexer.TokenTry:
		return p.parseTryCatch(ctx)
	case lexer.TokenAssert:
		return p.parseAssert()
	case lexer.TokenConst, lexer.TokenVolatile:
		decl := p.parseVarDecl()
		if decl == nil {
			return nil
		}
		return declToStmt(decl)
	case lexer.TokenIdent:
		// name ':' introduces a typed local; anything else is an
		// expression statement.
		if p.peekIs(lexer.TokenColon) {
			decl := p.parseVarDecl()
			if decl == nil {
				return nil
			}
			return declToStmt(decl)
		}
		return p.parseExpressionStmt()
	default:
		if p.check(declStarters...) {
			decl := p.parseDeclaration()
			if decl == nil {
				return nil
			}
			return &ast.DeclStmt{Span: decl.GetSpan(), Decl: decl}
		}
		return p.parseExpressionStmt()
	}
}

// declToStmt wraps a declaration parsed in statement position. Variable
// declarations get the dedicated VarStmt node.
func declToStmt(decl ast.Declaration) ast.Statement {
	if vd, ok := decl.(*ast.VarDecl); ok {
		return &ast.VarStmt{Span: vd.Span, Decl: vd}
	}
	return &ast.DeclStmt{Span: decl.GetSpan(), Decl: decl}
}

func (p *Parser) parseExpressionStmt() ast.Statement {
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	end := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after expression")
	return &ast.ExpressionStmt{Span: expr.GetSpan().Union(end.Span), Expr: expr}
}

// parseBlockNode expects a braced block and returns nil without consuming
// anything when the brace is missing.
func (p *Parser) parseBlockNode(ctx context) *ast.Block {
	if !p.check(lexer.TokenLBrace) {
		p.report(diagnostics.MissingDelimiter, p.current.Span, "expected '{' to open block, got '%s'", p.current.Type)
		return nil
	}
	return p.parseBlockBody(ctx)
}

// parseBlockBody parses a braced statement list. It is the statement
// analogue of parseProgram's driving loop: abandoned statements
// synchronize, completed-with-errors statements recover in place.
func (p *Parser) parseBlockBody(ctx context) *ast.Block {
	open := p.advance()
	var stmts []ast.Statement
	for !p.check(lexer.TokenRBrace) && !p.atEnd() {
		stmt := p.parseStatement(ctx)
		if stmt == nil {
			p.synchronize()
			continue
		}
		if p.panicking {
			p.recoverAtBoundary()
		}
		stmts = append(stmts, stmt)
	}
	end := p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "to close block")
	return &ast.Block{Span: open.Span.Union(end.Span), Statements: stmts}
}

func (p *Parser) parseIf(ctx context) ast.Statement {
	kw := p.advance()
	p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "after 'if'")
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after condition")
	then := p.parseStatement(ctx)
	if then == nil {
		return nil
	}
	node := &ast.If{Span: kw.Span.Union(then.GetSpan()), Cond: cond, Then: then}
	if p.match(lexer.TokenElse) {
		els := p.parseStatement(ctx)
		if els == nil {
			return nil
		}
		node.Else = els
		node.Span = kw.Span.Union(els.GetSpan())
	}
	return node
}

func (p *Parser) parseWhile(ctx context) ast.Statement {
	kw := p.advance()
	p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "after 'while'")
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after condition")
	body := p.parseStatement(ctx.enterLoop())
	if body == nil {
		return nil
	}
	return &ast.While{Span: kw.Span.Union(body.GetSpan()), Cond: cond, Body: body}
}

// parseDoWhile desugars at parse time: the body runs once as a plain
// block, then repeats under a while whose body is a structural clone. The
// two copies share no nodes.
func (p *Parser) parseDoWhile(ctx context) ast.Statement {
	kw := p.advance()
	body := p.parseStatement(ctx.enterLoop())
	if body == nil {
		return nil
	}
	p.expectToken(lexer.TokenWhile, diagnostics.UnexpectedToken, "after 'do' body")
	p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "after 'while'")
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after condition")
	end := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after do-while")
	span := kw.Span.Union(end.Span)
	return &ast.Block{Span: span, Statements: []ast.Statement{
		body,
		&ast.While{Span: span, Cond: cond, Body: body.Clone()},
	}}
}

func (p *Parser) parseFor(ctx context) ast.Statement {
	kw := p.advance()
	p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "after 'for'")
	if p.check(lexer.TokenIdent) && (p.peekIs(lexer.TokenIn) || p.peekIs(lexer.TokenComma)) {
		return p.parseForIn(kw, ctx)
	}

	var init ast.Statement
	if p.check(lexer.TokenSemicolon) {
		p.advance()
	} else {
		if p.check(lexer.TokenIdent) && p.peekIs(lexer.TokenColon) {
			decl := p.parseVarDecl()
			if decl == nil {
				return nil
			}
			init = declToStmt(decl)
		} else {
			init = p.parseExpressionStmt()
			if init == nil {
				return nil
			}
		}
	}

	var cond ast.Expression
	if !p.check(lexer.TokenSemicolon) {
		cond = p.parseExpression()
		if cond == nil {
			return nil
		}
	}
	p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after loop condition")

	var update ast.Expression
	if !p.check(lexer.TokenRParen) {
		update = p.parseExpression()
		if update == nil {
			return nil
		}
	}
	p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after loop clauses")

	body := p.parseStatement(ctx.enterLoop())
	if body == nil {
		return nil
	}
	return &ast.For{
		Span:   kw.Span.Union(body.GetSpan()),
		Init:   init,
		Cond:   cond,
		Update: update,
		Body:   body,
	}
}

// parseForIn continues a for statement after "for (" once the lookahead
// committed to the iteration form: value in iterable, or key, value in
// iterable.
func (p *Parser) parseForIn(kw lexer.Token, ctx context) ast.Statement {
	first := p.advance()
	node := &ast.ForIn{}
	if p.match(lexer.TokenComma) {
		second := p.expectIdent("as loop value variable")
		node.Key = &ast.Variable{Span: first.Span, Name: first.Lexeme}
		node.Value = &ast.Variable{Span: second.Span, Name: second.Lexeme}
	} else {
		node.Value = &ast.Variable{Span: first.Span, Name: first.Lexeme}
	}
	p.expectToken(lexer.TokenIn, diagnostics.UnexpectedToken, "in for-in loop")
	iter := p.parseExpression()
	if iter == nil {
		return nil
	}
	p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after loop clauses")
	body := p.parseStatement(ctx.enterLoop())
	if body == nil {
		return nil
	}
	node.Iterable = iter
	node.Body = body
	node.Span = kw.Span.Union(body.GetSpan())
	return node
}

func (p *Parser) parseSwitch(ctx context) ast.Statement {
	kw := p.advance()
	p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "after 'switch'")
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after switch value")
	p.expectToken(lexer.TokenLBrace, diagnostics.MissingDelimiter, "to open switch body")

	node := &ast.Switch{Value: value}
	inner := ctx.enterSwitch()
	for !p.check(lexer.TokenRBrace) && !p.atEnd() {
		switch p.current.Type {
		case lexer.TokenCase:
			ckw := p.advance()
			p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "after 'case'")
			cv := p.parseExpression()
			if cv == nil {
				p.synchronize()
				continue
			}
			p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after case value")
			body := p.parseBlockNode(inner)
			if body == nil {
				p.synchronize()
				continue
			}
			node.Cases = append(node.Cases, ast.SwitchCase{
				Span:  ckw.Span.Union(body.Span),
				Value: cv,
				Body:  body,
			})
		case lexer.TokenDefault:
			dkw := p.advance()
			body := p.parseBlockNode(inner)
			if body == nil {
				p.synchronize()
				continue
			}
			if node.Default != nil {
				// The duplicate body is parsed, then dropped; the first
				// one stands.
				p.reportKeep(diagnostics.DuplicateDefaultCase, dkw.Span, "duplicate 'default' clause in switch")
			} else {
				node.Default = body
			}
		default:
			p.report(diagnostics.UnexpectedToken, p.current.Span, "unexpected '%s' in switch body, expected 'case' or 'default'", p.current.Type)
			p.synchronize()
			continue
		}
		if p.panicking {
			p.recoverAtBoundary()
		}
	}
	end := p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "to close switch body")
	node.Span = kw.Span.Union(end.Span)
	return node
}

func (p *Parser) parseReturn() ast.Statement {
	kw := p.advance()
	var value ast.Expression
	if !p.check(lexer.TokenSemicolon) {
		value = p.parseExpression()
		if value == nil {
			return nil
		}
	}
	end := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after 'return'")
	return &ast.Return{Span: kw.Span.Union(end.Span), Value: value}
}

// parseThrow parses throw with an optional parenthesized payload and an
// optional handler body. The ';' is required only when no body follows.
func (p *Parser) parseThrow(ctx context) ast.Statement {
	kw := p.advance()
	node := &ast.Throw{}
	end := kw.Span
	if p.match(lexer.TokenLParen) {
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		node.Value = value
		end = p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after throw value").Span
	}
	if p.check(lexer.TokenLBrace) {
		body := p.parseBlockBody(ctx)
		node.Body = body
		end = body.Span
		if p.check(lexer.TokenSemicolon) {
			end = p.advance().Span
		}
	} else {
		end = p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after 'throw'").Span
	}
	node.Span = kw.Span.Union(end)
	return node
}

func (p *Parser) parseTryCatch(ctx context) ast.Statement {
	kw := p.advance()
	try := p.parseBlockNode(ctx)
	if try == nil {
		return nil
	}
	node := &ast.TryCatch{Try: try}
	end := try.Span
	for p.check(lexer.TokenCatch) {
		ckw := p.advance()
		clause := ast.CatchClause{}
		if p.match(lexer.TokenLParen) {
			name := p.expectIdent("as exception variable")
			clause.Var = &ast.Variable{Span: name.Span, Name: name.Lexeme}
			if p.match(lexer.TokenColon) {
				clause.Type = p.parseType()
			}
			p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after catch clause")
		}
		body := p.parseBlockNode(ctx)
		if body == nil {
			break
		}
		clause.Body = body
		clause.Span = ckw.Span.Union(body.Span)
		node.Catches = append(node.Catches, clause)
		end = body.Span
	}
	if len(node.Catches) == 0 {
		p.reportKeep(diagnostics.MissingCatchClause, kw.Span, "'try' without any 'catch' clause")
	}
	node.Span = kw.Span.Union(end)
	return node
}

// parseAssert desugars at parse time into if (!cond) { throw(message); }.
// Without an explicit message the thrown payload is the literal
// "Assertion failed".
func (p *Parser) parseAssert() ast.Statement {
	kw := p.advance()
	p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "after 'assert'")
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	var message ast.Expression
	if p.match(lexer.TokenComma) {
		message = p.parseExpression()
		if message == nil {
			return nil
		}
	}
	p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after assert condition")
	end := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after 'assert'")
	span := kw.Span.Union(end.Span)
	if message == nil {
		message = &ast.Literal{Span: span, Value: "Assertion failed", Raw: `"Assertion failed"`}
	}
	return &ast.If{
		Span: span,
		Cond: &ast.Unary{Span: cond.GetSpan(), Operator: "!", Operand: cond},
		Then: &ast.Block{Span: span, Statements: []ast.Statement{
			&ast.Throw{Span: span, Value: message},
		}},
	}
}
