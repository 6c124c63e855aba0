package lexer

import (
	"testing"

	"github.com/flux-lang/flux/internal/position"
)

func collect(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src, "test.flux")
	var toks []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			return toks
		}
		toks = append(toks, tok)
		if len(toks) > 10000 {
			t.Fatal("lexer did not reach EOF")
		}
	}
}

func kinds(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestScanOperators(t *testing.T) {
	src := "+ ++ += - -- -= -> * ** *= **= / /= % %= = == ! != " +
		"< <= << <<= > >= >> >>= & && &= | || |= ^ ^= ~ @ ? : :: ; , . ( ) { } [ ]"
	want := []TokenType{
		TokenPlus, TokenInc, TokenPlusEq, TokenMinus, TokenDec, TokenMinusEq, TokenArrow,
		TokenStar, TokenPower, TokenStarEq, TokenPowerEq, TokenSlash, TokenSlashEq,
		TokenPercent, TokenPercentEq, TokenAssign, TokenEq, TokenBang, TokenNotEq,
		TokenLt, TokenLtEq, TokenShl, TokenShlEq, TokenGt, TokenGtEq, TokenShr, TokenShrEq,
		TokenAmp, TokenAndAnd, TokenAmpEq, TokenPipe, TokenOrOr, TokenPipeEq,
		TokenCaret, TokenCaretEq, TokenTilde, TokenAt, TokenQuestion, TokenColon, TokenScope,
		TokenSemicolon, TokenComma, TokenDot, TokenLParen, TokenRParen,
		TokenLBrace, TokenRBrace, TokenLBracket, TokenRBracket,
	}

	got := kinds(collect(t, src))
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanKeywordsAndIdents(t *testing.T) {
	toks := collect(t, "def value object _tmp class x1 not this")
	want := []TokenType{
		TokenDef, TokenIdent, TokenObject, TokenIdent,
		TokenClass, TokenIdent, TokenNot, TokenThis,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
	if toks[1].Lexeme != "value" {
		t.Errorf("Lexeme = %q, want %q", toks[1].Lexeme, "value")
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tt    TokenType
		value any
	}{
		{"decimal int", "42", TokenInt, int64(42)},
		{"zero", "0", TokenInt, int64(0)},
		{"hex", "0x2A", TokenInt, int64(42)},
		{"binary", "0b101", TokenInt, int64(5)},
		{"float", "3.25", TokenFloat, 3.25},
		{"exponent", "1e3", TokenFloat, 1000.0},
		{"negative exponent", "2.5e-1", TokenFloat, 0.25},
		{"int overflow", "99999999999999999999", TokenError, nil},
		{"bare hex prefix", "0x", TokenError, nil},
		{"bad exponent", "1e+", TokenError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.input, "test.flux").NextToken()
			if tok.Type != tt.tt {
				t.Fatalf("type = %s, want %s", tok.Type, tt.tt)
			}
			if tt.value != nil && tok.Value != tt.value {
				t.Errorf("value = %v (%T), want %v (%T)", tok.Value, tok.Value, tt.value, tt.value)
			}
		})
	}
}

func TestScanStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tt    TokenType
		value string
	}{
		{"plain", `"hello"`, TokenString, "hello"},
		{"escapes", `"a\n\t\"b\\"`, TokenString, "a\n\t\"b\\"},
		{"escaped braces", `"{{n}}"`, TokenString, "{n}"},
		{"backslash brace", `"\{n\}"`, TokenString, "{n}"},
		{"unknown escape", `"\q"`, TokenError, ""},
		{"unterminated", `"abc`, TokenError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.input, "test.flux").NextToken()
			if tok.Type != tt.tt {
				t.Fatalf("type = %s, want %s", tok.Type, tt.tt)
			}
			if tt.tt == TokenString {
				if got := tok.Value.(string); got != tt.value {
					t.Errorf("value = %q, want %q", got, tt.value)
				}
			}
		})
	}
}

func TestScanInterpolatedStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"simple hole", `"a {x+1} b"`},
		{"hole with subscript", `"v={d[k]}"`},
		{"hole containing string", `"{f("x")} t"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input, "test.flux")
			tok := l.NextToken()
			if tok.Type != TokenInterpString {
				t.Fatalf("type = %s, want InterpString", tok.Type)
			}
			if tok.Lexeme != tt.input {
				t.Errorf("lexeme = %q, want %q", tok.Lexeme, tt.input)
			}
			if next := l.NextToken(); next.Type != TokenEOF {
				t.Errorf("expected EOF after string, got %s", next)
			}
		})
	}
}

func TestScanComments(t *testing.T) {
	toks := collect(t, "a // line comment\nb /* block\ncomment */ c")
	got := kinds(toks)
	want := []TokenType{TokenIdent, TokenIdent, TokenIdent}
	if len(got) != len(want) {
		t.Fatalf("token kinds = %v, want %v", got, want)
	}

	tok := New("/* never closed", "test.flux").NextToken()
	if tok.Type != TokenError {
		t.Fatalf("unterminated block comment: type = %s, want Error", tok.Type)
	}
	if msg := tok.Value.(string); msg != "unterminated block comment" {
		t.Errorf("message = %q", msg)
	}
}

func TestLineColumnTracking(t *testing.T) {
	toks := collect(t, "a\n  bb")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}

	first := toks[0].Span.Start
	if first.Line != 1 || first.Column != 1 || first.Offset != 0 {
		t.Errorf("first token at %d:%d offset %d, want 1:1 offset 0", first.Line, first.Column, first.Offset)
	}

	second := toks[1].Span.Start
	if second.Line != 2 || second.Column != 3 || second.Offset != 4 {
		t.Errorf("second token at %d:%d offset %d, want 2:3 offset 4", second.Line, second.Column, second.Offset)
	}
	if end := toks[1].Span.End; end.Column != 5 || end.Offset != 6 {
		t.Errorf("second token ends at col %d offset %d, want 5 and 6", end.Column, end.Offset)
	}
}

func TestNewAtReportsEnclosingPositions(t *testing.T) {
	origin := position.Position{Filename: "test.flux", Line: 3, Column: 10, Offset: 42}
	l := NewAt("x+1", "test.flux", origin)

	tok := l.NextToken()
	if tok.Type != TokenIdent || tok.Lexeme != "x" {
		t.Fatalf("unexpected token %s", tok)
	}
	at := tok.Span.Start
	if at.Line != 3 || at.Column != 10 || at.Offset != 42 {
		t.Errorf("token at %d:%d offset %d, want 3:10 offset 42", at.Line, at.Column, at.Offset)
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("", "test.flux")
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != TokenEOF {
			t.Fatalf("call %d: type = %s, want EOF", i, tok.Type)
		}
	}
}

func TestBooleanValues(t *testing.T) {
	toks := collect(t, "true false")
	if v, ok := toks[0].Value.(bool); !ok || !v {
		t.Errorf("true token value = %v", toks[0].Value)
	}
	if v, ok := toks[1].Value.(bool); !ok || v {
		t.Errorf("false token value = %v", toks[1].Value)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	tok := New("$", "test.flux").NextToken()
	if tok.Type != TokenError {
		t.Fatalf("type = %s, want Error", tok.Type)
	}
}
