// Package lexer turns Flux source text into the token stream consumed by
// the parser. Tokens are pulled one at a time; lexemes are views into the
// source buffer rather than copies.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/flux-lang/flux/internal/position"
)

// Lexer scans a single immutable source buffer.
type Lexer struct {
	src      string
	filename string
	offset   int // byte index of the next rune in src
	line     int
	column   int
	base     int // offset bias, non-zero when scanning an embedded fragment
}

// New returns a lexer over src.
func New(src, filename string) *Lexer {
	return &Lexer{src: src, filename: filename, line: 1, column: 1}
}

// NewAt returns a lexer over a fragment of a larger buffer that begins at
// origin. Token spans come out relative to the enclosing buffer, which is
// how interpolated-string holes get real source locations.
func NewAt(src, filename string, origin position.Position) *Lexer {
	return &Lexer{
		src:      src,
		filename: filename,
		line:     origin.Line,
		column:   origin.Column,
		base:     origin.Offset,
	}
}

func (l *Lexer) pos() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.base + l.offset,
	}
}

func (l *Lexer) atEnd() bool {
	return l.offset >= len(l.src)
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.offset:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.atEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.src[l.offset:])
	if l.offset+size >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.offset+size:])
	return r
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.offset:])
	l.offset += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) match(want rune) bool {
	if l.peek() != want {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) lexemeFrom(start position.Position) string {
	return l.src[start.Offset-l.base : l.offset]
}

func (l *Lexer) emit(tt TokenType, start position.Position) Token {
	return Token{
		Type:   tt,
		Lexeme: l.lexemeFrom(start),
		Span:   position.Span{Start: start, End: l.pos()},
	}
}

func (l *Lexer) emitValue(tt TokenType, start position.Position, value any) Token {
	t := l.emit(tt, start)
	t.Value = value
	return t
}

func (l *Lexer) errorToken(start position.Position, format string, args ...any) Token {
	t := l.emit(TokenError, start)
	t.Value = fmt.Sprintf(format, args...)
	return t
}

// NextToken scans and returns the next token. After the end of input it
// returns EOF tokens forever.
func (l *Lexer) NextToken() Token {
	if t := l.skipTrivia(); t != nil {
		return *t
	}

	start := l.pos()
	if l.atEnd() {
		return Token{Type: TokenEOF, Span: position.Span{Start: start, End: start}}
	}

	r := l.advance()
	switch r {
	case '(':
		return l.emit(TokenLParen, start)
	case ')':
		return l.emit(TokenRParen, start)
	case '{':
		return l.emit(TokenLBrace, start)
	case '}':
		return l.emit(TokenRBrace, start)
	case '[':
		return l.emit(TokenLBracket, start)
	case ']':
		return l.emit(TokenRBracket, start)
	case ';':
		return l.emit(TokenSemicolon, start)
	case ',':
		return l.emit(TokenComma, start)
	case '.':
		return l.emit(TokenDot, start)
	case '~':
		return l.emit(TokenTilde, start)
	case '@':
		return l.emit(TokenAt, start)
	case '?':
		return l.emit(TokenQuestion, start)
	case ':':
		if l.match(':') {
			return l.emit(TokenScope, start)
		}
		return l.emit(TokenColon, start)
	case '+':
		if l.match('+') {
			return l.emit(TokenInc, start)
		}
		if l.match('=') {
			return l.emit(TokenPlusEq, start)
		}
		return l.emit(TokenPlus, start)
	case '-':
		if l.match('>') {
			return l.emit(TokenArrow, start)
		}
		if l.match('-') {
			return l.emit(TokenDec, start)
		}
		if l.match('=') {
			return l.emit(TokenMinusEq, start)
		}
		return l.emit(TokenMinus, start)
	case '*':
		if l.match('*') {
			if l.match('=') {
				return l.emit(TokenPowerEq, start)
			}
			return l.emit(TokenPower, start)
		}
		if l.match('=') {
			return l.emit(TokenStarEq, start)
		}
		return l.emit(TokenStar, start)
	case '/':
		if l.match('=') {
			return l.emit(TokenSlashEq, start)
		}
		return l.emit(TokenSlash, start)
	case '%':
		if l.match('=') {
			return l.emit(TokenPercentEq, start)
		}
		return l.emit(TokenPercent, start)
	case '=':
		if l.match('=') {
			return l.emit(TokenEq, start)
		}
		return l.emit(TokenAssign, start)
	case '!':
		if l.match('=') {
			return l.emit(TokenNotEq, start)
		}
		return l.emit(TokenBang, start)
	case '<':
		if l.match('<') {
			if l.match('=') {
				return l.emit(TokenShlEq, start)
			}
			return l.emit(TokenShl, start)
		}
		if l.match('=') {
			return l.emit(TokenLtEq, start)
		}
		return l.emit(TokenLt, start)
	case '>':
		if l.match('>') {
			if l.match('=') {
				return l.emit(TokenShrEq, start)
			}
			return l.emit(TokenShr, start)
		}
		if l.match('=') {
			return l.emit(TokenGtEq, start)
		}
		return l.emit(TokenGt, start)
	case '&':
		if l.match('&') {
			return l.emit(TokenAndAnd, start)
		}
		if l.match('=') {
			return l.emit(TokenAmpEq, start)
		}
		return l.emit(TokenAmp, start)
	case '|':
		if l.match('|') {
			return l.emit(TokenOrOr, start)
		}
		if l.match('=') {
			return l.emit(TokenPipeEq, start)
		}
		return l.emit(TokenPipe, start)
	case '^':
		if l.match('=') {
			return l.emit(TokenCaretEq, start)
		}
		return l.emit(TokenCaret, start)
	case '"':
		return l.scanString(start)
	default:
		if isDigit(r) {
			return l.scanNumber(start, r)
		}
		if isIdentStart(r) {
			return l.scanIdent(start)
		}
		return l.errorToken(start, "unexpected character %q", string(r))
	}
}

// skipTrivia consumes whitespace and comments. It returns a token only for
// an unterminated block comment.
func (l *Lexer) skipTrivia() *Token {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			switch l.peekNext() {
			case '/':
				for !l.atEnd() && l.peek() != '\n' {
					l.advance()
				}
			case '*':
				start := l.pos()
				l.advance()
				l.advance()
				closed := false
				for !l.atEnd() {
					if l.peek() == '*' && l.peekNext() == '/' {
						l.advance()
						l.advance()
						closed = true
						break
					}
					l.advance()
				}
				if !closed {
					t := l.errorToken(start, "unterminated block comment")
					return &t
				}
			default:
				return nil
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) scanIdent(start position.Position) Token {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	text := l.lexemeFrom(start)
	if kw, ok := keywords[text]; ok {
		switch kw {
		case TokenTrue:
			return l.emitValue(kw, start, true)
		case TokenFalse:
			return l.emitValue(kw, start, false)
		}
		return l.emit(kw, start)
	}
	return l.emit(TokenIdent, start)
}

func (l *Lexer) scanNumber(start position.Position, first rune) Token {
	if first == '0' && (l.peek() == 'x' || l.peek() == 'X' || l.peek() == 'b' || l.peek() == 'B') {
		prefix := l.advance()
		digits := 0
		for isPrefixedDigit(prefix, l.peek()) {
			l.advance()
			digits++
		}
		if digits == 0 {
			return l.errorToken(start, "malformed numeric literal %q", l.lexemeFrom(start))
		}
		v, err := strconv.ParseInt(l.lexemeFrom(start), 0, 64)
		if err != nil {
			return l.errorToken(start, "integer literal out of range: %s", l.lexemeFrom(start))
		}
		return l.emitValue(TokenInt, start, v)
	}

	for isDigit(l.peek()) {
		l.advance()
	}

	isFloat := false
	if l.peek() == '.' && isDigit(l.peekNext()) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			return l.errorToken(start, "malformed exponent in %q", l.lexemeFrom(start))
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	text := l.lexemeFrom(start)
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.errorToken(start, "malformed float literal %q", text)
		}
		return l.emitValue(TokenFloat, start, v)
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return l.errorToken(start, "integer literal out of range: %s", text)
	}
	return l.emitValue(TokenInt, start, v)
}

// scanString scans a string literal. A plain literal gets its decoded text
// as the token value; a literal containing an unescaped `{...}` hole comes
// back as an interpolated-string token whose raw lexeme the parser
// re-scans. `{{` and `}}` stand for literal braces.
func (l *Lexer) scanString(start position.Position) Token {
	var b strings.Builder
	interp := false
	depth := 0
	inHoleStr := false

	for {
		if l.atEnd() || l.peek() == '\n' {
			return l.errorToken(start, "unterminated string literal")
		}
		r := l.advance()

		if depth > 0 {
			// Inside a hole: only track nested braces and inner strings
			// so the closing quote is found; content stays raw.
			if inHoleStr {
				switch r {
				case '\\':
					if !l.atEnd() && l.peek() != '\n' {
						l.advance()
					}
				case '"':
					inHoleStr = false
				}
				continue
			}
			switch r {
			case '"':
				inHoleStr = true
			case '{':
				depth++
			case '}':
				depth--
			}
			continue
		}

		switch r {
		case '"':
			if interp {
				return l.emit(TokenInterpString, start)
			}
			return l.emitValue(TokenString, start, b.String())
		case '\\':
			if l.atEnd() || l.peek() == '\n' {
				return l.errorToken(start, "unterminated string literal")
			}
			e := l.advance()
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '0':
				b.WriteByte(0)
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case '{':
				b.WriteByte('{')
			case '}':
				b.WriteByte('}')
			default:
				return l.errorToken(start, "unknown escape sequence \\%s", string(e))
			}
		case '{':
			if l.peek() == '{' {
				l.advance()
				b.WriteByte('{')
			} else {
				interp = true
				depth = 1
			}
		case '}':
			if l.peek() == '}' {
				l.advance()
			}
			b.WriteByte('}')
		default:
			b.WriteRune(r)
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isPrefixedDigit(prefix, r rune) bool {
	if prefix == 'b' || prefix == 'B' {
		return r == '0' || r == '1'
	}
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
