package parser

import (
	"strings"

	"github.com/flux-lang/flux/internal/ast"
	"github.com/flux-lang/flux/internal/diagnostics"
	"github.com/flux-lang/flux/internal/lexer"
	"github.com/flux-lang/flux/internal/position"
)

// assignOps are the operators the assignment tier accepts. Plain '=' on a
// member access becomes MemberSet; everything else stays Assign.
var assignOps = []lexer.TokenType{
	lexer.TokenAssign,
	lexer.TokenPlusEq,
	lexer.TokenMinusEq,
	lexer.TokenStarEq,
	lexer.TokenSlashEq,
	lexer.TokenPercentEq,
	lexer.TokenAmpEq,
	lexer.TokenPipeEq,
	lexer.TokenCaretEq,
	lexer.TokenShlEq,
	lexer.TokenShrEq,
	lexer.TokenPowerEq,
}

// parseExpression is the expression entry point and the recursion depth
// charge point. A nil result means the production was abandoned and the
// caller should synchronize.
func (p *Parser) parseExpression() ast.Expression {
	if !p.enter() {
		return nil
	}
	defer p.leave()
	return p.parseAssign()
}

// parseAssign handles the loosest tier. Assignment is right-associative:
// a = b = c assigns b first.
func (p *Parser) parseAssign() ast.Expression {
	left := p.parseCast()
	if left == nil {
		return nil
	}
	if !p.check(assignOps...) {
		return left
	}
	op := p.advance()
	value := p.parseAssign()
	if value == nil {
		return nil
	}
	span := left.GetSpan().Union(value.GetSpan())
	if op.Type == lexer.TokenAssign {
		if get, ok := left.(*ast.MemberGet); ok {
			return &ast.MemberSet{Span: span, Object: get.Object, Name: get.Name, Value: value}
		}
	}
	return &ast.Assign{Span: span, Target: left, Operator: op.Lexeme, Value: value}
}

// parseCast handles the cast and ternary tiers together. Both are
// introduced by a token that follows a complete operand, and the
// ternary's branch separator is itself a ':', so one loop keeps the pair
// unambiguous: in "x : Int32 ? 1 : 2" the cast binds to x before the
// ternary forms. The then-branch parses below this level; the
// else-branch re-enters it, making chained ternaries right-associative.
func (p *Parser) parseCast() ast.Expression {
	expr := p.parseLogicalOr()
	if expr == nil {
		return nil
	}
	for {
		switch p.current.Type {
		case lexer.TokenColon:
			p.advance()
			target := p.parseType()
			if target == nil {
				return nil
			}
			expr = &ast.Cast{Span: expr.GetSpan().Union(target.GetSpan()), Value: expr, Target: target}
		case lexer.TokenQuestion:
			p.advance()
			then := p.parseLogicalOr()
			if then == nil {
				return nil
			}
			p.expectToken(lexer.TokenColon, diagnostics.MissingDelimiter, "between ternary branches")
			els := p.parseCast()
			if els == nil {
				return nil
			}
			expr = &ast.Ternary{Span: expr.GetSpan().Union(els.GetSpan()), Cond: expr, Then: then, Else: els}
		default:
			return expr
		}
	}
}

// parseBinaryTier builds one left-associative binary tier: operands come
// from next, operators from ops.
func (p *Parser) parseBinaryTier(next func() ast.Expression, ops ...lexer.TokenType) ast.Expression {
	expr := next()
	if expr == nil {
		return nil
	}
	for p.check(ops...) {
		op := p.advance()
		right := next()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{
			Span:     expr.GetSpan().Union(right.GetSpan()),
			Operator: op.Lexeme,
			Left:     expr,
			Right:    right,
		}
	}
	return expr
}

func (p *Parser) parseLogicalOr() ast.Expression {
	return p.parseBinaryTier(p.parseLogicalAnd, lexer.TokenOrOr, lexer.TokenOr)
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	return p.parseBinaryTier(p.parseBitOr, lexer.TokenAndAnd, lexer.TokenAnd)
}

func (p *Parser) parseBitOr() ast.Expression {
	return p.parseBinaryTier(p.parseBitXor, lexer.TokenPipe)
}

func (p *Parser) parseBitXor() ast.Expression {
	return p.parseBinaryTier(p.parseBitAnd, lexer.TokenCaret, lexer.TokenXorWord)
}

func (p *Parser) parseBitAnd() ast.Expression {
	return p.parseBinaryTier(p.parseEquality, lexer.TokenAmp)
}

func (p *Parser) parseEquality() ast.Expression {
	return p.parseBinaryTier(p.parseIs, lexer.TokenEq, lexer.TokenNotEq)
}

// parseIs handles the identity tier. Its operator is one keyword or two:
// "is" and "is not" both produce a Binary node.
func (p *Parser) parseIs() ast.Expression {
	expr := p.parseRelational()
	if expr == nil {
		return nil
	}
	for p.check(lexer.TokenIs) {
		p.advance()
		op := "is"
		if p.match(lexer.TokenNot) {
			op = "is not"
		}
		right := p.parseRelational()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{
			Span:     expr.GetSpan().Union(right.GetSpan()),
			Operator: op,
			Left:     expr,
			Right:    right,
		}
	}
	return expr
}

func (p *Parser) parseRelational() ast.Expression {
	return p.parseBinaryTier(p.parseShift, lexer.TokenLt, lexer.TokenLtEq, lexer.TokenGt, lexer.TokenGtEq)
}

func (p *Parser) parseShift() ast.Expression {
	return p.parseBinaryTier(p.parseAdditive, lexer.TokenShl, lexer.TokenShr)
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.parseBinaryTier(p.parseMultiplicative, lexer.TokenPlus, lexer.TokenMinus)
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.parseBinaryTier(p.parseExponent, lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent)
}

// parseExponent is right-associative: 2 ** 3 ** 2 is 2 ** (3 ** 2).
func (p *Parser) parseExponent() ast.Expression {
	base := p.parseUnary()
	if base == nil {
		return nil
	}
	if !p.check(lexer.TokenPower) {
		return base
	}
	op := p.advance()
	exp := p.parseExponent()
	if exp == nil {
		return nil
	}
	return &ast.Binary{
		Span:     base.GetSpan().Union(exp.GetSpan()),
		Operator: op.Lexeme,
		Left:     base,
		Right:    exp,
	}
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.current.Type {
	case lexer.TokenBang, lexer.TokenMinus, lexer.TokenPlus, lexer.TokenTilde,
		lexer.TokenNot, lexer.TokenInc, lexer.TokenDec:
		op := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Unary{
			Span:     op.Span.Union(operand.GetSpan()),
			Operator: op.Lexeme,
			Operand:  operand,
		}
	case lexer.TokenStar:
		star := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Dereference{Span: star.Span.Union(operand.GetSpan()), Operand: operand}
	case lexer.TokenAt:
		at := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.AddressOf{Span: at.Span.Union(operand.GetSpan()), Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix applies trailing ++ and -- after the call chain, so a.b++
// increments the member access as a whole.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parseCallChain()
	if expr == nil {
		return nil
	}
	for p.check(lexer.TokenInc, lexer.TokenDec) {
		op := p.advance()
		expr = &ast.Unary{
			Span:     expr.GetSpan().Union(op.Span),
			Operator: op.Lexeme,
			Operand:  expr,
			Postfix:  true,
		}
	}
	return expr
}

// parseCallChain parses a primary followed by any run of calls, member
// accesses, and subscripts, left to right.
func (p *Parser) parseCallChain() ast.Expression {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		switch p.current.Type {
		case lexer.TokenLParen:
			p.advance()
			var args []ast.Expression
			if !p.check(lexer.TokenRParen) {
				for {
					arg := p.parseExpression()
					if arg == nil {
						return nil
					}
					args = append(args, arg)
					if !p.match(lexer.TokenComma) {
						break
					}
				}
			}
			end := p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "to close argument list")
			expr = &ast.Call{Span: expr.GetSpan().Union(end.Span), Callee: expr, Args: args}
		case lexer.TokenDot:
			p.advance()
			name := p.expectIdent("after '.'")
			expr = &ast.MemberGet{Span: expr.GetSpan().Union(name.Span), Object: expr, Name: name.Lexeme}
		case lexer.TokenLBracket:
			p.advance()
			index := p.parseExpression()
			if index == nil {
				return nil
			}
			end := p.expectToken(lexer.TokenRBracket, diagnostics.MissingDelimiter, "to close subscript")
			expr = &ast.Subscript{Span: expr.GetSpan().Union(end.Span), Target: expr, Index: index}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.current.Type {
	case lexer.TokenInt, lexer.TokenFloat, lexer.TokenString, lexer.TokenTrue, lexer.TokenFalse:
		tok := p.advance()
		return &ast.Literal{Span: tok.Span, Value: tok.Value, Raw: tok.Lexeme}
	case lexer.TokenInterpString:
		return p.parseInterpolated()
	case lexer.TokenIdent:
		return p.parseIdentExpr()
	case lexer.TokenThis:
		tok := p.advance()
		return &ast.Variable{Span: tok.Span, Name: tok.Lexeme}
	case lexer.TokenLParen:
		open := p.advance()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		end := p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "to close '('")
		return &ast.Group{Span: open.Span.Union(end.Span), Inner: inner}
	case lexer.TokenLBracket:
		return p.parseArrayLiteral()
	case lexer.TokenLBrace:
		return p.parseDictLiteral()
	case lexer.TokenSizeOf:
		return p.parseSizeOf()
	case lexer.TokenTypeOf:
		return p.parseTypeOf()
	case lexer.TokenOp:
		return p.parseGenericOp()
	case lexer.TokenAddress:
		return p.parseAddressExpr()
	case lexer.TokenError:
		tok := p.advance()
		msg, _ := tok.Value.(string)
		if msg == "" {
			msg = "invalid token"
		}
		p.report(diagnostics.LexicalError, tok.Span, "%s", msg)
		return nil
	default:
		p.report(diagnostics.ExpectedExpression, p.current.Span, "expected expression, got '%s'", p.current.Type)
		return nil
	}
}

// parseIdentExpr handles a bare name and the A::B scope-resolution form.
// Scope paths parse into a ScopePath node but are reported as
// unsupported, once per path.
func (p *Parser) parseIdentExpr() ast.Expression {
	name := p.advance()
	if !p.check(lexer.TokenScope) {
		return &ast.Variable{Span: name.Span, Name: name.Lexeme}
	}
	parts := []string{name.Lexeme}
	end := name.Span
	for p.match(lexer.TokenScope) {
		seg := p.expectIdent("after '::'")
		parts = append(parts, seg.Lexeme)
		end = seg.Span
	}
	span := name.Span.Union(end)
	p.reportKeep(diagnostics.UnsupportedConstruct, span, "scope-resolution paths are not supported")
	return &ast.ScopePath{Span: span, Parts: parts}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	open := p.advance()
	var elems []ast.Expression
	if !p.check(lexer.TokenRBracket) {
		for {
			elem := p.parseExpression()
			if elem == nil {
				return nil
			}
			elems = append(elems, elem)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	end := p.expectToken(lexer.TokenRBracket, diagnostics.MissingDelimiter, "to close array literal")
	return &ast.ArrayLiteral{Span: open.Span.Union(end.Span), Elements: elems}
}

// parseDictLiteral parses {k: v, ...}. Keys parse below the cast tier so
// the ':' after a key is never taken for a cast; values parse at the cast
// tier, which keeps a ternary value intact.
func (p *Parser) parseDictLiteral() ast.Expression {
	open := p.advance()
	var entries []ast.DictEntry
	if !p.check(lexer.TokenRBrace) {
		for {
			key := p.parseLogicalOr()
			if key == nil {
				return nil
			}
			p.expectToken(lexer.TokenColon, diagnostics.MissingDelimiter, "after dictionary key")
			value := p.parseCast()
			if value == nil {
				return nil
			}
			entries = append(entries, ast.DictEntry{Key: key, Value: value})
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	end := p.expectToken(lexer.TokenRBrace, diagnostics.MissingDelimiter, "to close dictionary literal")
	return &ast.DictLiteral{Span: open.Span.Union(end.Span), Entries: entries}
}

func (p *Parser) parseSizeOf() ast.Expression {
	kw := p.advance()
	p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "after 'sizeof'")
	target := p.parseType()
	if target == nil {
		return nil
	}
	end := p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "to close 'sizeof'")
	return &ast.SizeOf{Span: kw.Span.Union(end.Span), Target: target}
}

func (p *Parser) parseTypeOf() ast.Expression {
	kw := p.advance()
	p.expectToken(lexer.TokenLParen, diagnostics.MissingDelimiter, "after 'typeof'")
	operand := p.parseExpression()
	if operand == nil {
		return nil
	}
	end := p.expectToken(lexer.TokenRParen, diagnostics.MissingDelimiter, "to close 'typeof'")
	return &ast.TypeOf{Span: kw.Span.Union(end.Span), Operand: operand}
}

// parseGenericOp parses op<left SYM right>, the explicit operator
// application form. Operands parse at the unary tier: the symbol may be
// any operator token at all, including '>>', so no binary tier may run
// between the operands.
func (p *Parser) parseGenericOp() ast.Expression {
	kw := p.advance()
	p.expectToken(lexer.TokenLt, diagnostics.MissingDelimiter, "after 'op'")
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	var op string
	if p.check(lexer.TokenGt, lexer.TokenEOF) {
		p.report(diagnostics.UnexpectedToken, p.current.Span, "expected operator symbol in 'op', got '%s'", p.current.Type)
	} else {
		op = p.advance().Lexeme
	}
	right := p.parseUnary()
	if right == nil {
		return nil
	}
	end := p.expectGt("to close 'op'")
	return &ast.GenericOp{Span: kw.Span.Union(end.Span), Left: left, Operator: op, Right: right}
}

// parseAddressExpr parses address<expr>. The operand parses at the
// additive tier for the same reason as in parseGenericOp.
func (p *Parser) parseAddressExpr() ast.Expression {
	kw := p.advance()
	p.expectToken(lexer.TokenLt, diagnostics.MissingDelimiter, "after 'address'")
	operand := p.parseAdditive()
	if operand == nil {
		return nil
	}
	end := p.expectGt("to close 'address'")
	return &ast.AddressOf{Span: kw.Span.Union(end.Span), Operand: operand}
}

// parseInterpolated re-scans a raw interpolated-string lexeme into text
// and hole parts. Hole expressions are parsed by a sub-parser whose lexer
// starts at the hole's true position, so their spans and diagnostics land
// inside the enclosing string literal.
func (p *Parser) parseInterpolated() ast.Expression {
	tok := p.advance()
	return &ast.InterpolatedString{Span: tok.Span, Parts: p.scanInterpParts(tok)}
}

func (p *Parser) scanInterpParts(tok lexer.Token) []ast.InterpPart {
	body := tok.Lexeme
	if len(body) >= 2 && body[0] == '"' && body[len(body)-1] == '"' {
		body = body[1 : len(body)-1]
	}

	// Strings cannot span lines, so only column and offset move.
	line := tok.Span.Start.Line
	col := tok.Span.Start.Column + 1
	off := tok.Span.Start.Offset + 1

	var parts []ast.InterpPart
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			parts = append(parts, ast.InterpPart{Text: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '{' && i+1 < len(body) && body[i+1] == '{':
			text.WriteByte('{')
			i, col, off = i+2, col+2, off+2
		case c == '}' && i+1 < len(body) && body[i+1] == '}':
			text.WriteByte('}')
			i, col, off = i+2, col+2, off+2
		case c == '{':
			end := holeEnd(body, i+1)
			flush()
			origin := position.Position{
				Filename: tok.Span.Start.Filename,
				Line:     line,
				Column:   col + 1,
				Offset:   off + 1,
			}
			if expr := p.parseHole(body[i+1:end], origin); expr != nil {
				parts = append(parts, ast.InterpPart{Expr: expr})
			}
			if end >= len(body) {
				p.report(diagnostics.MissingDelimiter, tok.Span, "unterminated '{' in interpolated string")
				i = len(body)
			} else {
				consumed := end + 1 - i
				i, col, off = end+1, col+consumed, off+consumed
			}
		case c == '\\' && i+1 < len(body):
			text.WriteByte(unescapeByte(body[i+1]))
			i, col, off = i+2, col+2, off+2
		default:
			text.WriteByte(c)
			i, col, off = i+1, col+1, off+1
		}
	}
	flush()
	return parts
}

// holeEnd returns the index of the '}' that closes the hole starting at
// from, tracking nested braces and skipping string literals, or len(body)
// when the hole never closes.
func holeEnd(body string, from int) int {
	depth := 1
	inStr := false
	for i := from; i < len(body); i++ {
		c := body[i]
		if inStr {
			if c == '\\' {
				i++
			} else if c == '"' {
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(body)
}

// parseHole parses one interpolation hole as a full expression. The
// sub-parser shares the sink and inherits the outer depth and panic
// state; hole errors stay contained because the string token is already
// consumed.
func (p *Parser) parseHole(src string, origin position.Position) ast.Expression {
	sub := New(lexer.NewAt(src, origin.Filename, origin), p.sink)
	sub.depth = p.depth
	sub.panicking = p.panicking
	expr := sub.parseExpression()
	if expr == nil {
		return nil
	}
	if !sub.atEnd() {
		sub.report(diagnostics.UnexpectedToken, sub.current.Span, "unexpected '%s' in interpolation", sub.current.Type)
	}
	return expr
}

func unescapeByte(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return b
	}
}
