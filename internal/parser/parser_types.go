package parser

import (
	"github.com/flux-lang/flux/internal/ast"
	"github.com/flux-lang/flux/internal/diagnostics"
	"github.com/flux-lang/flux/internal/lexer"
)

// parseType parses one type expression: optional leading qualifiers, a
// base type, then any run of [size] array and * pointer suffixes.
// Qualifiers bind to the next pointer suffix, so const T* and T const*
// mean the same thing; on a data type a leading volatile sticks to the
// data type itself.
func (p *Parser) parseType() ast.Type {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	start := p.current.Span
	qualConst := false
	qualVolatile := false
	for {
		if p.match(lexer.TokenConst) {
			qualConst = true
			continue
		}
		if p.match(lexer.TokenVolatile) {
			qualVolatile = true
			continue
		}
		break
	}

	base := p.parseBaseType()
	if base == nil {
		return nil
	}
	if dt, ok := base.(*ast.DataType); ok && qualVolatile {
		dt.Volatile = true
		qualVolatile = false
	}

	for {
		switch p.current.Type {
		case lexer.TokenLBracket:
			p.advance()
			var size ast.Expression
			if !p.check(lexer.TokenRBracket) {
				size = p.parseExpression()
				if size == nil {
					return nil
				}
			}
			end := p.expectToken(lexer.TokenRBracket, diagnostics.MissingDelimiter, "to close array type")
			base = &ast.ArrayType{Span: start.Union(end.Span), Element: base, Size: size}
		case lexer.TokenStar:
			star := p.advance()
			base = &ast.PointerType{
				Span:     start.Union(star.Span),
				Pointee:  base,
				Const:    qualConst,
				Volatile: qualVolatile,
			}
			qualConst, qualVolatile = false, false
		case lexer.TokenPower:
			// '**' lexes as a single token but spells two pointer levels
			// here, the same way '>>' closes two generic argument lists.
			star := p.advance()
			base = &ast.PointerType{
				Span:     start.Union(star.Span),
				Pointee:  base,
				Const:    qualConst,
				Volatile: qualVolatile,
			}
			base = &ast.PointerType{Span: start.Union(star.Span), Pointee: base}
			qualConst, qualVolatile = false, false
		case lexer.TokenConst, lexer.TokenVolatile:
			for {
				if p.match(lexer.TokenConst) {
					qualConst = true
					continue
				}
				if p.match(lexer.TokenVolatile) {
					qualVolatile = true
					continue
				}
				break
			}
			if p.check(lexer.TokenStar, lexer.TokenPower) {
				continue
			}
			star := p.expectToken(lexer.TokenStar, diagnostics.ExpectedType, "after type qualifier")
			base = &ast.PointerType{
				Span:     start.Union(star.Span),
				Pointee:  base,
				Const:    qualConst,
				Volatile: qualVolatile,
			}
			qualConst, qualVolatile = false, false
		default:
			return base
		}
	}
}

func (p *Parser) parseBaseType() ast.Type {
	switch p.current.Type {
	case lexer.TokenSigned, lexer.TokenUnsigned, lexer.TokenData:
		return p.parseDataType()
	case lexer.TokenLParen:
		return p.parseFunctionType()
	case lexer.TokenVoid:
		tok := p.advance()
		return &ast.NamedType{Span: tok.Span, Parts: []string{tok.Lexeme}}
	case lexer.TokenBang:
		bang := p.advance()
		v := p.expectToken(lexer.TokenVoid, diagnostics.ExpectedType, "after '!'")
		return &ast.NamedType{Span: bang.Span.Union(v.Span), Parts: []string{"!void"}}
	case lexer.TokenIdent:
		return p.parseNamedOrGeneric()
	default:
		p.report(diagnostics.ExpectedType, p.current.Span, "expected type, got '%s'", p.current.Type)
		return nil
	}
}

// parseDataType parses signed|unsigned data{bits} with optional align{n}
// and volatile suffixes; bare data counts as unsigned.
func (p *Parser) parseDataType() ast.Type {
	start := p.current.Span
	node := &ast.DataType{}
	switch p.current.Type {
	case lexer.TokenSigned:
		node.Signed = true
		p.advance()
	case lexer.TokenUnsigned:
		p.advance()
	}
	p.expectToken(lexer.TokenData, diagnostics.ExpectedType, "in data type")
	p.expectToken(lexer.TokenLBrace, diagnostics.MissingDelimiter, "after 'data'")
	bitsTok := p.expectToken(lexer.TokenInt, diagnostics.UnexpectedToken, "as bit width")
	if v, ok := bitsTok.Value.(int64); ok {
		node.Bits = int(v)
	}
	end := p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "after bit width").Span
	if p.match(lexer.TokenAlign) {
		p.expectToken(lexer.TokenLBrace, diagnostics.MissingDelimiter, "after 'align'")
		node.Align = p.parseExpression()
		if node.Align == nil {
			return nil
		}
		end = p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "after alignment").Span
	}
	if p.check(lexer.TokenVolatile) {
		end = p.advance().Span
		node.Volatile = true
	}
	node.Span = start.Union(end)
	return node
}

// parseFunctionType parses (T, ...) -> R.
func (p *Parser) parseFunctionType() ast.Type {
	open := p.advance()
	node := &ast.FunctionType{}
	if !p.check(lexer.TokenRParen) {
		for {
			param := p.parseType()
			if param == nil {
				return nil
			}
			node.Params = append(node.Params, param)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "to close function type parameters")
	p.expectToken(lexer.TokenArrow, diagnostics.ExpectedType, "in function type")
	ret := p.parseType()
	if ret == nil {
		return nil
	}
	node.Return = ret
	node.Span = open.Span.Union(ret.GetSpan())
	return node
}

// parseNamedOrGeneric parses a dotted type name, with a generic argument
// list when a '<' follows. Nested argument lists may end in a '>>' token,
// which expectGt splits.
func (p *Parser) parseNamedOrGeneric() ast.Type {
	first := p.advance()
	parts := []string{first.Lexeme}
	end := first.Span
	for p.check(lexer.TokenDot) && p.peekIs(lexer.TokenIdent) {
		p.advance()
		seg := p.advance()
		parts = append(parts, seg.Lexeme)
		end = seg.Span
	}
	if !p.check(lexer.TokenLt) {
		return &ast.NamedType{Span: first.Span.Union(end), Parts: parts}
	}
	p.advance()
	node := &ast.GenericType{Path: parts}
	if !p.check(lexer.TokenGt, lexer.TokenShr) {
		for {
			arg := p.parseType()
			if arg == nil {
				return nil
			}
			node.Args = append(node.Args, arg)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	gt := p.expectGt("to close type arguments")
	node.Span = first.Span.Union(gt.Span)
	return node
}
