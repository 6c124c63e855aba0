package parser

import (
	"strings"

	"github.com/flux-lang/flux/internal/ast"
	"github.com/flux-lang/flux/internal/diagnostics"
	"github.com/flux-lang/flux/internal/lexer"
	"github.com/flux-lang/flux/internal/position"
)

// parseDeclaration dispatches on the current token. A nil result means
// the production was abandoned and the caller should synchronize; nothing
// is consumed on the default path so the skip makes the progress.
func (p *Parser) parseDeclaration() ast.Declaration {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	switch p.current.Type {
	case lexer.TokenImport:
		return p.parseImport()
	case lexer.TokenUsing:
		return p.parseUsing()
	case lexer.TokenNamespace:
		return p.parseNamespace()
	case lexer.TokenObject, lexer.TokenClass:
		return p.parseObject()
	case lexer.TokenStruct:
		return p.parseStruct()
	case lexer.TokenDef:
		return p.parseFunction()
	case lexer.TokenOperator:
		return p.parseOperator()
	case lexer.TokenTemplate:
		return p.parseTemplate()
	case lexer.TokenEnum:
		return p.parseEnum()
	case lexer.TokenSigned, lexer.TokenUnsigned, lexer.TokenData:
		return p.parseDataAliasTail(p.current.Span, false)
	case lexer.TokenAsm:
		return p.parseAsm()
	case lexer.TokenSection:
		return p.parseSection()
	case lexer.TokenConst, lexer.TokenVolatile, lexer.TokenIdent:
		return p.parseVarDecl()
	case lexer.TokenError:
		msg, _ := p.current.Value.(string)
		if msg == "" {
			msg = "invalid token"
		}
		p.report(diagnostics.LexicalError, p.current.Span, "%s", msg)
		return nil
	default:
		p.report(diagnostics.UnexpectedToken, p.current.Span, "unexpected '%s', expected a declaration", p.current.Type)
		return nil
	}
}

func (p *Parser) parseImport() ast.Declaration {
	kw := p.advance()
	path, _ := p.parseDottedPath("in import path")
	node := &ast.ImportDecl{Path: path}
	if p.match(lexer.TokenAs) {
		alias := p.expectIdent("after 'as'")
		node.Alias = alias.Lexeme
	}
	end := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after import")
	node.Span = kw.Span.Union(end.Span)
	return node
}

func (p *Parser) parseUsing() ast.Declaration {
	kw := p.advance()
	path, _ := p.parseDottedPath("in using path")
	end := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after using")
	return &ast.UsingDecl{Span: kw.Span.Union(end.Span), Path: path}
}

func (p *Parser) parseDottedPath(context string) ([]string, position.Span) {
	first := p.expectIdent(context)
	parts := []string{first.Lexeme}
	end := first.Span
	for p.match(lexer.TokenDot) {
		seg := p.expectIdent(context)
		parts = append(parts, seg.Lexeme)
		end = seg.Span
	}
	return parts, end
}

func (p *Parser) parseNamespace() ast.Declaration {
	kw := p.advance()
	name := p.expectIdent("after 'namespace'")
	node := &ast.NamespaceDecl{Name: name.Lexeme}
	if !p.check(lexer.TokenLBrace) {
		p.report(diagnostics.MissingDelimiter, p.current.Span, "expected '{' to open namespace body, got '%s'", p.current.Type)
		node.Span = kw.Span.Union(name.Span)
		return node
	}
	p.advance()
	for !p.check(lexer.TokenRBrace) && !p.atEnd() {
		decl := p.parseDeclaration()
		if decl == nil {
			p.synchronize()
			continue
		}
		if p.panicking {
			p.recoverAtBoundary()
		}
		node.Decls = append(node.Decls, decl)
	}
	end := p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "to close namespace body")
	node.Span = kw.Span.Union(end.Span)
	return node
}

// parseObject parses object and class declarations: an optional
// <Base, ...> inheritance list, an optional {!name, ...} exclusion list,
// then either a member body or a bare ';' forward declaration. A '{'
// followed by '!' is the exclusion list; any other '{' opens the body.
func (p *Parser) parseObject() ast.Declaration {
	kw := p.advance()
	name := p.expectIdent("after '" + kw.Lexeme + "'")
	node := &ast.ObjectDecl{Name: name.Lexeme, Class: kw.Type == lexer.TokenClass}

	if p.match(lexer.TokenLt) {
		for {
			base := p.expectIdent("as base name")
			node.Bases = append(node.Bases, base.Lexeme)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		p.expectGt("to close inheritance list")
	}

	if p.check(lexer.TokenLBrace) && p.peekIs(lexer.TokenBang) {
		p.advance()
		p.advance()
		for {
			excl := p.expectIdent("as excluded member")
			node.Excluded = append(node.Excluded, excl.Lexeme)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
		p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "to close exclusion list")
	}

	if p.check(lexer.TokenSemicolon) {
		end := p.advance()
		node.Forward = true
		node.Span = kw.Span.Union(end.Span)
		return node
	}
	if !p.check(lexer.TokenLBrace) {
		p.report(diagnostics.MissingDelimiter, p.current.Span, "expected '{' or ';' after %s header, got '%s'", kw.Lexeme, p.current.Type)
		node.Span = kw.Span.Union(p.prev.Span)
		return node
	}
	p.advance()
	for !p.check(lexer.TokenRBrace) && !p.atEnd() {
		member := p.parseDeclaration()
		if member == nil {
			p.synchronize()
			continue
		}
		if p.panicking {
			p.recoverAtBoundary()
		}
		node.Members = append(node.Members, member)
	}
	end := p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "to close "+kw.Lexeme+" body")
	if p.check(lexer.TokenSemicolon) {
		end = p.advance()
	}
	node.Span = kw.Span.Union(end.Span)
	return node
}

func (p *Parser) parseStruct() ast.Declaration {
	kw := p.advance()
	name := p.expectIdent("after 'struct'")
	node := &ast.StructDecl{Name: name.Lexeme}
	p.expectToken(lexer.TokenLBrace, diagnostics.MissingDelimiter, "to open struct body")
	for !p.check(lexer.TokenRBrace) && !p.atEnd() {
		start := p.current.Span
		field := ast.Field{Volatile: p.match(lexer.TokenVolatile)}
		fname := p.expectIdent("as field name")
		field.Name = fname.Lexeme
		p.expectToken(lexer.TokenColon, diagnostics.MissingDelimiter, "after field name")
		field.Type = p.parseType()
		if field.Type == nil {
			p.synchronize()
			continue
		}
		if p.match(lexer.TokenAlign) {
			p.expectToken(lexer.TokenLBrace, diagnostics.MissingDelimiter, "after 'align'")
			field.Align = p.parseExpression()
			if field.Align == nil {
				p.synchronize()
				continue
			}
			p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "after alignment")
		}
		fend := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after field")
		field.Span = start.Union(fend.Span)
		node.Fields = append(node.Fields, field)
		if p.panicking {
			p.recoverAtBoundary()
		}
	}
	end := p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "to close struct body")
	if p.check(lexer.TokenSemicolon) {
		end = p.advance()
	}
	node.Span = kw.Span.Union(end.Span)
	return node
}

func (p *Parser) parseFunction() ast.Declaration {
	kw := p.advance()
	name := p.expectIdent("after 'def'")
	return p.parseFunctionRest(kw.Span, name)
}

// parseFunctionRest parses a function from its parameter list on. It
// always returns a node; a missing body leaves Body nil with the error
// already reported.
func (p *Parser) parseFunctionRest(start position.Span, name lexer.Token) *ast.FunctionDecl {
	fn := &ast.FunctionDecl{Name: name.Lexeme}
	fn.Params = p.parseParams()
	if p.match(lexer.TokenArrow) {
		fn.Return = p.parseType()
	}
	if p.check(lexer.TokenSemicolon) {
		end := p.advance()
		fn.Prototype = true
		fn.Span = start.Union(end.Span)
		return fn
	}
	body := p.parseBlockNode(context{})
	if body == nil {
		fn.Span = start.Union(p.current.Span)
		return fn
	}
	fn.Body = body
	fn.Span = start.Union(body.Span)
	return fn
}

func (p *Parser) parseParams() []ast.Param {
	p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "to open parameter list")
	var params []ast.Param
	if !p.check(lexer.TokenRParen) {
		for {
			start := p.current.Span
			name := p.expectIdent("as parameter name")
			param := ast.Param{Span: start.Union(name.Span), Name: name.Lexeme}
			if p.match(lexer.TokenColon) {
				param.Type = p.parseType()
				if param.Type != nil {
					param.Span = start.Union(param.Type.GetSpan())
				}
			}
			params = append(params, param)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "to close parameter list")
	return params
}

// parseOperator parses operator(params)[symbol], where the bracketed
// symbol is taken verbatim from whatever operator token appears.
func (p *Parser) parseOperator() ast.Declaration {
	kw := p.advance()
	node := &ast.OperatorDecl{}
	node.Params = p.parseParams()
	p.expectToken(lexer.TokenLBracket, diagnostics.MissingDelimiter, "before operator symbol")
	if p.check(lexer.TokenRBracket, lexer.TokenEOF) {
		p.report(diagnostics.UnexpectedToken, p.current.Span, "expected operator symbol, got '%s'", p.current.Type)
	} else {
		node.Symbol = p.advance().Lexeme
	}
	p.expectToken(lexer.TokenRBracket, diagnostics.MissingDelimiter, "after operator symbol")
	if p.match(lexer.TokenArrow) {
		node.Return = p.parseType()
	}
	if p.check(lexer.TokenSemicolon) {
		end := p.advance()
		node.Prototype = true
		node.Span = kw.Span.Union(end.Span)
		return node
	}
	body := p.parseBlockNode(context{})
	if body == nil {
		node.Span = kw.Span.Union(p.current.Span)
		return node
	}
	node.Body = body
	node.Span = kw.Span.Union(body.Span)
	return node
}

// parseTemplate handles the three template forms, told apart by two
// tokens of lookahead: "template name(" declares a template function
// whose first parenthesized list is the template parameters;
// "template <" prefixes a declaration, which an object or class absorbs
// as its own template parameter list while anything else gets wrapped.
func (p *Parser) parseTemplate() ast.Declaration {
	kw := p.advance()
	switch {
	case p.check(lexer.TokenIdent) && p.peekIs(lexer.TokenLParen):
		name := p.advance()
		p.advance()
		var tparams []ast.TemplateParam
		if !p.check(lexer.TokenRParen) {
			tparams = p.parseTemplateParamItems()
		}
		p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "to close template parameters")
		fn := p.parseFunctionRest(name.Span, name)
		return &ast.TemplateDecl{Span: kw.Span.Union(fn.Span), Params: tparams, Inner: fn}
	case p.check(lexer.TokenLt):
		p.advance()
		var tparams []ast.TemplateParam
		if !p.check(lexer.TokenGt) {
			tparams = p.parseTemplateParamItems()
		}
		p.expectGt("to close template parameters")
		inner := p.parseDeclaration()
		if inner == nil {
			return nil
		}
		if obj, ok := inner.(*ast.ObjectDecl); ok {
			obj.Template = true
			obj.TemplateParams = tparams
			obj.Span = kw.Span.Union(obj.Span)
			return obj
		}
		if _, ok := inner.(*ast.FunctionDecl); !ok {
			p.reportKeep(diagnostics.ExpectedDeclaration, inner.GetSpan(), "template must wrap a function or object declaration")
		}
		return &ast.TemplateDecl{Span: kw.Span.Union(inner.GetSpan()), Params: tparams, Inner: inner}
	default:
		p.report(diagnostics.ExpectedDeclaration, p.current.Span, "expected template parameters after 'template', got '%s'", p.current.Type)
		return nil
	}
}

// parseTemplateParamItems parses a non-empty template parameter list
// body: each item is a bare type parameter or name: Type value parameter.
func (p *Parser) parseTemplateParamItems() []ast.TemplateParam {
	var params []ast.TemplateParam
	for {
		start := p.current.Span
		name := p.expectIdent("as template parameter")
		tp := ast.TemplateParam{Span: start.Union(name.Span), Name: name.Lexeme}
		if p.match(lexer.TokenColon) {
			tp.Type = p.parseType()
			if tp.Type != nil {
				tp.Span = start.Union(tp.Type.GetSpan())
			}
		}
		params = append(params, tp)
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	return params
}

func (p *Parser) parseEnum() ast.Declaration {
	kw := p.advance()
	name := p.expectIdent("after 'enum'")
	node := &ast.EnumDecl{Name: name.Lexeme}
	p.expectToken(lexer.TokenLBrace, diagnostics.MissingDelimiter, "to open enum body")
	if !p.check(lexer.TokenRBrace) {
		for {
			start := p.current.Span
			mname := p.expectIdent("as enum member")
			member := ast.EnumMember{Span: start.Union(mname.Span), Name: mname.Lexeme}
			if p.match(lexer.TokenAssign) {
				member.Value = p.parseExpression()
				if member.Value != nil {
					member.Span = start.Union(member.Value.GetSpan())
				}
			}
			node.Members = append(node.Members, member)
			if !p.match(lexer.TokenComma) {
				break
			}
			if p.check(lexer.TokenRBrace) {
				break
			}
		}
	}
	end := p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "to close enum body")
	if p.check(lexer.TokenSemicolon) {
		end = p.advance()
	}
	node.Span = kw.Span.Union(end.Span)
	return node
}

// parseDataAliasTail parses signed|unsigned data{bits} name; a bare data
// keyword counts as unsigned. The caller supplies the start span and any
// volatile qualifier it already consumed.
func (p *Parser) parseDataAliasTail(start position.Span, volatile bool) ast.Declaration {
	signed := false
	switch p.current.Type {
	case lexer.TokenSigned:
		signed = true
		p.advance()
	case lexer.TokenUnsigned:
		p.advance()
	}
	p.expectToken(lexer.TokenData, diagnostics.UnexpectedToken, "in data alias")
	p.expectToken(lexer.TokenLBrace, diagnostics.MissingDelimiter, "after 'data'")
	bitsTok := p.expectToken(lexer.TokenInt, diagnostics.UnexpectedToken, "as bit width")
	bits := 0
	if v, ok := bitsTok.Value.(int64); ok {
		bits = int(v)
	}
	p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "after bit width")
	name := p.expectIdent("as data alias name")
	end := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after data alias")
	return &ast.DataAliasDecl{
		Span:     start.Union(end.Span),
		Name:     name.Lexeme,
		Bits:     bits,
		Signed:   signed,
		Volatile: volatile,
	}
}

// parseAsm captures everything up to the matching '}' as opaque token
// text; nothing inside is interpreted.
func (p *Parser) parseAsm() ast.Declaration {
	kw := p.advance()
	p.expectToken(lexer.TokenLBrace, diagnostics.MissingDelimiter, "after 'asm'")
	var code strings.Builder
	depth := 1
	for !p.atEnd() {
		if p.check(lexer.TokenLBrace) {
			depth++
		}
		if p.check(lexer.TokenRBrace) {
			depth--
			if depth == 0 {
				break
			}
		}
		if code.Len() > 0 {
			code.WriteByte(' ')
		}
		code.WriteString(p.current.Lexeme)
		p.advance()
	}
	end := p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "to close 'asm' block")
	return &ast.AsmDecl{Span: kw.Span.Union(end.Span), Code: code.String()}
}

// parseSection parses section("name") attribute decl, optionally pinned
// with a trailing address<expr>.
func (p *Parser) parseSection() ast.Declaration {
	kw := p.advance()
	p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "after 'section'")
	nameTok := p.expectToken(lexer.TokenString, diagnostics.UnexpectedToken, "as section name")
	name, _ := nameTok.Value.(string)
	p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "after section name")
	attr := p.expectIdent("as section attribute")
	decl := p.parseDeclaration()
	if decl == nil {
		return nil
	}
	node := &ast.SectionDecl{Name: name, Attribute: attr.Lexeme, Decl: decl}
	end := decl.GetSpan()
	if p.match(lexer.TokenAddress) {
		p.expectToken(lexer.TokenLt, diagnostics.MissingDelimiter, "after 'address'")
		addr := p.parseAdditive()
		if addr == nil {
			return nil
		}
		node.Address = addr
		end = p.expectGt("to close 'address'").Span
		if p.check(lexer.TokenSemicolon) {
			end = p.advance().Span
		}
	}
	node.Span = kw.Span.Union(end)
	return node
}

// parseVarDecl parses name: Type = init; with optional const and
// volatile qualifiers. A qualifier run followed by signed, unsigned, or
// data is a data alias instead.
func (p *Parser) parseVarDecl() ast.Declaration {
	start := p.current.Span
	node := &ast.VarDecl{}
	for {
		if p.match(lexer.TokenConst) {
			node.Const = true
			continue
		}
		if p.match(lexer.TokenVolatile) {
			node.Volatile = true
			continue
		}
		break
	}
	if p.check(lexer.TokenSigned, lexer.TokenUnsigned, lexer.TokenData) {
		return p.parseDataAliasTail(start, node.Volatile)
	}
	name := p.expectIdent("in declaration")
	node.Name = name.Lexeme
	if p.match(lexer.TokenColon) {
		node.Type = p.parseType()
		if node.Type == nil {
			return nil
		}
	}
	if p.match(lexer.TokenAssign) {
		node.Init = p.parseExpression()
		if node.Init == nil {
			return nil
		}
	}
	end := p.expectToken(lexer.TokenSemicolon, diagnostics.MissingDelimiter, "after variable declaration")
	node.Span = start.Union(end.Span)
	return node
}
