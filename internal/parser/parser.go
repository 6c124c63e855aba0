// Package parser turns a Flux token stream into an abstract syntax tree.
// It is a recursive-descent parser with one committed token of lookahead
// plus one speculative peek, precedence climbing for expressions, and
// panic-mode error recovery: a malformed construct reports one diagnostic,
// the stream skips to a synchronization point, and parsing resumes. Parse
// never fails; it always returns a Program plus whatever diagnostics
// accumulated along the way.
package parser

import (
	"github.com/flux-lang/flux/internal/ast"
	"github.com/flux-lang/flux/internal/diagnostics"
	"github.com/flux-lang/flux/internal/lexer"
	"github.com/flux-lang/flux/internal/position"
)

// maxDepth bounds recursion across the expression, statement, type, and
// declaration entry points so pathological nesting degrades into a
// diagnostic instead of a stack overflow.
const maxDepth = 512

// Parser holds the token window and recovery state for one parse.
type Parser struct {
	lex  *lexer.Lexer
	sink *diagnostics.Sink

	prev    lexer.Token
	current lexer.Token
	peek    lexer.Token

	panicking bool
	depth     int
}

// context carries the facts statement productions need about their
// surroundings. It is passed by value, so nested productions can extend
// it without leaking state back out.
type context struct {
	inLoop   bool
	inSwitch bool
}

func (c context) enterLoop() context   { c.inLoop = true; return c }
func (c context) enterSwitch() context { c.inSwitch = true; return c }

// New builds a parser over lex, reporting into sink. The first two tokens
// are read immediately so current and peek are always valid.
func New(lex *lexer.Lexer, sink *diagnostics.Sink) *Parser {
	p := &Parser{lex: lex, sink: sink}
	p.advance()
	p.advance()
	return p
}

// ParseSource is the one-call form used by the CLI and the LSP server.
func ParseSource(src, filename string) (*ast.Program, *diagnostics.Sink) {
	sink := diagnostics.NewSink()
	prog := New(lexer.New(src, filename), sink).Parse()
	return prog, sink
}

// Parse consumes the whole token stream and returns the Program. The
// Program is always non-nil; syntax problems surface through the sink.
func (p *Parser) Parse() *ast.Program {
	return p.parseProgram()
}

func (p *Parser) parseProgram() *ast.Program {
	start := p.current.Span
	var decls []ast.Declaration
	for !p.atEnd() {
		decl := p.parseDeclaration()
		if decl == nil {
			p.synchronize()
			continue
		}
		if p.panicking {
			p.recoverAtBoundary()
		}
		decls = append(decls, decl)
	}
	return &ast.Program{Span: start.Union(p.current.Span), Declarations: decls}
}

// advance consumes the current token and returns it.
func (p *Parser) advance() lexer.Token {
	p.prev = p.current
	p.current = p.peek
	p.peek = p.lex.NextToken()
	return p.prev
}

func (p *Parser) atEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

// check reports whether the current token has any of the given types.
func (p *Parser) check(types ...lexer.TokenType) bool {
	return p.current.Is(types...)
}

func (p *Parser) peekIs(t lexer.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it has any of the given types.
func (p *Parser) match(types ...lexer.TokenType) bool {
	if p.check(types...) {
		p.advance()
		return true
	}
	return false
}

// expectToken consumes and returns the current token when it matches
// want. On a mismatch it reports code, consumes nothing, and returns a
// synthetic error token at the current position so the caller can finish
// building its node instead of unwinding.
func (p *Parser) expectToken(want lexer.TokenType, code diagnostics.Code, context string) lexer.Token {
	if p.current.Type == want {
		return p.advance()
	}
	p.report(code, p.current.Span, "expected '%s' %s, got '%s'", want, context, p.current.Type)
	return p.synthetic()
}

// expectIdent is expectToken for identifiers, with identifier wording.
func (p *Parser) expectIdent(context string) lexer.Token {
	if p.current.Type == lexer.TokenIdent {
		return p.advance()
	}
	p.report(diagnostics.ExpectedIdentifier, p.current.Span, "expected identifier %s, got '%s'", context, p.current.Type)
	return p.synthetic()
}

// expectGt consumes a closing '>'. A '>>' token is split in two so nested
// generic argument lists like Vec<Vec<T>> close one level at a time.
func (p *Parser) expectGt(context string) lexer.Token {
	switch p.current.Type {
	case lexer.TokenGt:
		return p.advance()
	case lexer.TokenShr:
		tok := p.current
		mid := tok.Span.Start
		mid.Column++
		mid.Offset++
		first := lexer.Token{
			Type:   lexer.TokenGt,
			Lexeme: tok.Lexeme[:1],
			Span:   position.Span{Start: tok.Span.Start, End: mid},
		}
		p.prev = first
		p.current = lexer.Token{
			Type:   lexer.TokenGt,
			Lexeme: tok.Lexeme[1:],
			Span:   position.Span{Start: mid, End: tok.Span.End},
		}
		return first
	}
	p.report(diagnostics.MissingDelimiter, p.current.Span, "expected '>' %s, got '%s'", context, p.current.Type)
	return p.synthetic()
}

// synthetic builds an error token at the current position, standing in
// for a token expectToken failed to find.
func (p *Parser) synthetic() lexer.Token {
	return lexer.Token{Type: lexer.TokenError, Span: p.current.Span}
}

// report records a syntax error and enters panic mode; while panicking,
// further reports are dropped so one broken construct yields one
// diagnostic.
func (p *Parser) report(code diagnostics.Code, span position.Span, format string, args ...any) {
	if p.panicking {
		return
	}
	p.panicking = true
	p.sink.Errorf(code, span, format, args...)
}

// reportKeep records a diagnostic for a construct that parsed to
// completion, such as a duplicate default clause or a break outside any
// loop. The stream is still in step, so panic mode is not engaged and no
// recovery will run.
func (p *Parser) reportKeep(code diagnostics.Code, span position.Span, format string, args ...any) {
	if p.panicking {
		return
	}
	p.sink.Errorf(code, span, format, args...)
}

// enter counts one recursive frame. At the limit it reports
// NestingTooDeep and tells the caller to abandon the production.
func (p *Parser) enter() bool {
	if p.depth >= maxDepth {
		p.report(diagnostics.NestingTooDeep, p.current.Span, "nesting exceeds %d levels", maxDepth)
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}
