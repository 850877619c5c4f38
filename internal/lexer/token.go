// Package lexer provides tokenization and lexical primitives for WKT
// coordinate reference system text.
package lexer

import (
	"github.com/golangsnmp/gocrs/internal/types"
)

// Token is a token with kind and source span.
type Token struct {
	Kind TokenKind
	Span types.Span
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// TokError is a lexical error (stray character, unterminated string).
	TokError TokenKind = iota
	// TokEOF is end of input.
	TokEOF

	// TokIdent is a bare word: element keywords and axis directions.
	TokIdent
	// TokQuotedName is a double-quoted name. The span includes the quotes.
	TokQuotedName
	// TokNumber is a signed numeric literal.
	TokNumber

	// TokLBracket is '['.
	TokLBracket
	// TokRBracket is ']'.
	TokRBracket
	// TokLParen is '('.
	TokLParen
	// TokRParen is ')'.
	TokRParen
	// TokComma is ','.
	TokComma
)

// String returns a human-readable description used in diagnostics.
func (k TokenKind) String() string {
	switch k {
	case TokError:
		return "invalid token"
	case TokEOF:
		return "end of input"
	case TokIdent:
		return "keyword"
	case TokQuotedName:
		return "quoted name"
	case TokNumber:
		return "number"
	case TokLBracket:
		return "'['"
	case TokRBracket:
		return "']'"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokComma:
		return "','"
	default:
		return "unknown"
	}
}

// IsLeftDelimiter reports whether the token opens an element.
func (k TokenKind) IsLeftDelimiter() bool {
	return k == TokLBracket || k == TokLParen
}

// IsRightDelimiter reports whether the token closes an element.
func (k TokenKind) IsRightDelimiter() bool {
	return k == TokRBracket || k == TokRParen
}

// Matching returns the right delimiter that pairs with the left delimiter b.
func Matching(b byte) byte {
	switch b {
	case '[':
		return ']'
	case '(':
		return ')'
	default:
		return 0
	}
}
