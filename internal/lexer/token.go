package lexer

import (
	"fmt"

	"github.com/flux-lang/flux/internal/position"
)

// TokenType identifies the lexical class of a token. The set is closed;
// the parser switches over it exhaustively.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals and identifiers
	TokenIdent
	TokenInt
	TokenFloat
	TokenString
	TokenInterpString

	// Keywords
	TokenAnd
	TokenOr
	TokenNot
	TokenXorWord
	TokenIs
	TokenIf
	TokenElse
	TokenWhile
	TokenDo
	TokenFor
	TokenIn
	TokenSwitch
	TokenCase
	TokenDefault
	TokenReturn
	TokenBreak
	TokenContinue
	TokenThrow
	TokenTry
	TokenCatch
	TokenAssert
	TokenDef
	TokenObject
	TokenClass
	TokenStruct
	TokenEnum
	TokenNamespace
	TokenImport
	TokenUsing
	TokenAs
	TokenOperator
	TokenTemplate
	TokenConst
	TokenVolatile
	TokenSigned
	TokenUnsigned
	TokenData
	TokenAsm
	TokenSection
	TokenAlign
	TokenAddress
	TokenSizeOf
	TokenTypeOf
	TokenOp
	TokenThis
	TokenTrue
	TokenFalse
	TokenVoid

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenPower     // **
	TokenAssign    // =
	TokenPlusEq    // +=
	TokenMinusEq   // -=
	TokenStarEq    // *=
	TokenSlashEq   // /=
	TokenPercentEq // %=
	TokenAmpEq     // &=
	TokenPipeEq    // |=
	TokenCaretEq   // ^=
	TokenShlEq     // <<=
	TokenShrEq     // >>=
	TokenPowerEq   // **=
	TokenEq        // ==
	TokenNotEq     // !=
	TokenLt        // <
	TokenLtEq      // <=
	TokenGt        // >
	TokenGtEq      // >=
	TokenShl       // <<
	TokenShr       // >>
	TokenAndAnd    // &&
	TokenOrOr      // ||
	TokenAmp       // &
	TokenPipe      // |
	TokenCaret     // ^
	TokenTilde     // ~
	TokenBang      // !
	TokenInc       // ++
	TokenDec       // --
	TokenQuestion  // ?
	TokenColon     // :
	TokenScope     // ::
	TokenSemicolon // ;
	TokenComma     // ,
	TokenDot       // .
	TokenArrow     // ->
	TokenAt        // @

	// Delimiters
	TokenLParen   // (
	TokenRParen   // )
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenError:        "Error",
	TokenIdent:        "Ident",
	TokenInt:          "Int",
	TokenFloat:        "Float",
	TokenString:       "String",
	TokenInterpString: "InterpString",
	TokenAnd:          "and",
	TokenOr:           "or",
	TokenNot:          "not",
	TokenXorWord:      "xor",
	TokenIs:           "is",
	TokenIf:           "if",
	TokenElse:         "else",
	TokenWhile:        "while",
	TokenDo:           "do",
	TokenFor:          "for",
	TokenIn:           "in",
	TokenSwitch:       "switch",
	TokenCase:         "case",
	TokenDefault:      "default",
	TokenReturn:       "return",
	TokenBreak:        "break",
	TokenContinue:     "continue",
	TokenThrow:        "throw",
	TokenTry:          "try",
	TokenCatch:        "catch",
	TokenAssert:       "assert",
	TokenDef:          "def",
	TokenObject:       "object",
	TokenClass:        "class",
	TokenStruct:       "struct",
	TokenEnum:         "enum",
	TokenNamespace:    "namespace",
	TokenImport:       "import",
	TokenUsing:        "using",
	TokenAs:           "as",
	TokenOperator:     "operator",
	TokenTemplate:     "template",
	TokenConst:        "const",
	TokenVolatile:     "volatile",
	TokenSigned:       "signed",
	TokenUnsigned:     "unsigned",
	TokenData:         "data",
	TokenAsm:          "asm",
	TokenSection:      "section",
	TokenAlign:        "align",
	TokenAddress:      "address",
	TokenSizeOf:       "sizeof",
	TokenTypeOf:       "typeof",
	TokenOp:           "op",
	TokenThis:         "this",
	TokenTrue:         "true",
	TokenFalse:        "false",
	TokenVoid:         "void",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenPercent:      "%",
	TokenPower:        "**",
	TokenAssign:       "=",
	TokenPlusEq:       "+=",
	TokenMinusEq:      "-=",
	TokenStarEq:       "*=",
	TokenSlashEq:      "/=",
	TokenPercentEq:    "%=",
	TokenAmpEq:        "&=",
	TokenPipeEq:       "|=",
	TokenCaretEq:      "^=",
	TokenShlEq:        "<<=",
	TokenShrEq:        ">>=",
	TokenPowerEq:      "**=",
	TokenEq:           "==",
	TokenNotEq:        "!=",
	TokenLt:           "<",
	TokenLtEq:         "<=",
	TokenGt:           ">",
	TokenGtEq:         ">=",
	TokenShl:          "<<",
	TokenShr:          ">>",
	TokenAndAnd:       "&&",
	TokenOrOr:         "||",
	TokenAmp:          "&",
	TokenPipe:         "|",
	TokenCaret:        "^",
	TokenTilde:        "~",
	TokenBang:         "!",
	TokenInc:          "++",
	TokenDec:          "--",
	TokenQuestion:     "?",
	TokenColon:        ":",
	TokenScope:        "::",
	TokenSemicolon:    ";",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenArrow:        "->",
	TokenAt:           "@",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenLBrace:       "{",
	TokenRBrace:       "}",
	TokenLBracket:     "[",
	TokenRBracket:     "]",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

var keywords = map[string]TokenType{
	"and":       TokenAnd,
	"or":        TokenOr,
	"not":       TokenNot,
	"xor":       TokenXorWord,
	"is":        TokenIs,
	"if":        TokenIf,
	"else":      TokenElse,
	"while":     TokenWhile,
	"do":        TokenDo,
	"for":       TokenFor,
	"in":        TokenIn,
	"switch":    TokenSwitch,
	"case":      TokenCase,
	"default":   TokenDefault,
	"return":    TokenReturn,
	"break":     TokenBreak,
	"continue":  TokenContinue,
	"throw":     TokenThrow,
	"try":       TokenTry,
	"catch":     TokenCatch,
	"assert":    TokenAssert,
	"def":       TokenDef,
	"object":    TokenObject,
	"class":     TokenClass,
	"struct":    TokenStruct,
	"enum":      TokenEnum,
	"namespace": TokenNamespace,
	"import":    TokenImport,
	"using":     TokenUsing,
	"as":        TokenAs,
	"operator":  TokenOperator,
	"template":  TokenTemplate,
	"const":     TokenConst,
	"volatile":  TokenVolatile,
	"signed":    TokenSigned,
	"unsigned":  TokenUnsigned,
	"data":      TokenData,
	"asm":       TokenAsm,
	"section":   TokenSection,
	"align":     TokenAlign,
	"address":   TokenAddress,
	"sizeof":    TokenSizeOf,
	"typeof":    TokenTypeOf,
	"op":        TokenOp,
	"this":      TokenThis,
	"true":      TokenTrue,
	"false":     TokenFalse,
	"void":      TokenVoid,
}

// Token is one lexical unit. Lexeme is a slice of the source buffer, not a
// copy, so it stays valid exactly as long as the source does. Value carries
// the decoded payload for literal tokens (int64, float64, string, bool) and
// the message text for error tokens; it is nil otherwise.
type Token struct {
	Type   TokenType
	Lexeme string
	Value  any
	Span   position.Span
}

// Pos returns the token's starting position.
func (t Token) Pos() position.Position {
	return t.Span.Start
}

// Is reports whether the token has any of the given types.
func (t Token) Is(types ...TokenType) bool {
	for _, tt := range types {
		if t.Type == tt {
			return true
		}
	}
	return false
}

func (t Token) String() string {
	switch t.Type {
	case TokenIdent, TokenInt, TokenFloat, TokenString, TokenInterpString, TokenError:
		return fmt.Sprintf("%s(%q)", t.Type, t.Lexeme)
	default:
		return t.Type.String()
	}
}
