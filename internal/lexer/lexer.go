package lexer

import (
	"fmt"
	"log/slog"

	"github.com/golangsnmp/gocrs/internal/types"
)

// Lexer tokenizes WKT source text. A Lexer holds per-input state and is not
// shared between calls.
type Lexer struct {
	source      string
	pos         int
	diagnostics []types.Diagnostic
	types.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: string(source),
		Logger: types.Logger{L: logger},
	}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
	}
}

// Tokenize consumes all source text and returns the token stream
// along with any diagnostics generated during lexing. The stream always
// ends with a TokEOF token.
func (l *Lexer) Tokenize() ([]Token, []types.Diagnostic) {
	estimated := max(len(l.source)/4, 16)
	tokens := make([]Token, 0, estimated)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenization complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(l.diagnostics)))
	return tokens, l.diagnostics
}

// NextToken advances the lexer and returns the next token.
// Returns TokEOF when all input is consumed.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos
	b, ok := l.peek()
	if !ok {
		return l.token(TokEOF, start)
	}

	switch b {
	case '[':
		l.advance()
		return l.token(TokLBracket, start)
	case ']':
		l.advance()
		return l.token(TokRBracket, start)
	case '(':
		l.advance()
		return l.token(TokLParen, start)
	case ')':
		l.advance()
		return l.token(TokRParen, start)
	case ',':
		l.advance()
		return l.token(TokComma, start)
	case '"':
		return l.scanQuotedName()
	}

	if isDigit(b) || b == '.' || b == '+' || b == '-' {
		return l.scanNumber()
	}

	if isIdentStart(b) {
		return l.scanIdent()
	}

	l.advance()
	l.error(l.spanFrom(start), fmt.Sprintf("unexpected character %q", rune(b)))
	return l.token(TokError, start)
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	b := l.source[l.pos]
	l.pos++
	return b, true
}

func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.peek()
		if !ok {
			return
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			l.advance()
		} else {
			return
		}
	}
}

func (l *Lexer) error(span types.Span, message string) {
	l.diagnostics = append(l.diagnostics, types.Diagnostic{
		Span:    span,
		Message: message,
	})
}

func (l *Lexer) spanFrom(start int) types.Span {
	return types.Span{
		Start: types.ByteOffset(start),
		End:   types.ByteOffset(l.pos),
	}
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	tok := Token{
		Kind: kind,
		Span: l.spanFrom(start),
	}
	l.traceToken(tok)
	return tok
}

func (l *Lexer) scanIdent() Token {
	start := l.pos
	l.advance()
	for {
		b, ok := l.peek()
		if !ok || !isIdentPart(b) {
			break
		}
		l.advance()
	}
	return l.token(TokIdent, start)
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	end, ok := ScanSignedNumericLiteral(l.source, start)
	if !ok {
		l.advance()
		l.error(l.spanFrom(start), "malformed numeric literal")
		return l.token(TokError, start)
	}
	l.pos = end
	return l.token(TokNumber, start)
}

func (l *Lexer) scanQuotedName() Token {
	start := l.pos
	l.advance() // consume opening quote

	for {
		b, ok := l.peek()
		if !ok {
			l.error(l.spanFrom(start), "unterminated quoted name")
			return l.token(TokError, start)
		}
		l.advance()
		if b == '"' {
			return l.token(TokQuotedName, start)
		}
	}
}
