package parser

import (
	"github.com/flux-lang/flux/internal/lexer"
)

// syncTokens are the tokens a recovery skip stops in front of. They all
// begin a declaration or statement, or open or close a block, so parsing
// can restart cleanly there.
var syncTokens = []lexer.TokenType{
	lexer.TokenClass,
	lexer.TokenObject,
	lexer.TokenDef,
	lexer.TokenNamespace,
	lexer.TokenStruct,
	lexer.TokenEnum,
	lexer.TokenImport,
	lexer.TokenUsing,
	lexer.TokenReturn,
	lexer.TokenIf,
	lexer.TokenWhile,
	lexer.TokenFor,
	lexer.TokenSwitch,
	lexer.TokenTry,
	lexer.TokenLBrace,
	lexer.TokenRBrace,
}

func (p *Parser) atSyncToken() bool {
	if p.atEnd() {
		return true
	}
	for _, t := range syncTokens {
		if p.current.Type == t {
			return true
		}
	}
	return false
}

// atBoundary reports whether the stream already sits at a point recovery
// would skip to: just past a ';', or in front of a synchronization token.
func (p *Parser) atBoundary() bool {
	return p.prev.Type == lexer.TokenSemicolon || p.atSyncToken()
}

// recoverAtBoundary ends panic mode after a production that reported an
// error but still built a node. When the stream is already at a boundary
// nothing is consumed; otherwise the normal skip runs.
func (p *Parser) recoverAtBoundary() {
	if p.atBoundary() {
		p.panicking = false
		return
	}
	p.synchronize()
}

// synchronize skips ahead after an abandoned production. It always
// consumes at least one token so the driving loop makes progress, stops
// once the previous token was a ';' or the current token is a
// synchronization token, then leaves panic mode.
func (p *Parser) synchronize() {
	if !p.atEnd() {
		p.advance()
	}
	for !p.atEnd() && p.prev.Type != lexer.TokenSemicolon && !p.atSyncToken() {
		p.advance()
	}
	p.panicking = false
}
