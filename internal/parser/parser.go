// Package parser implements the WKT coordinate reference system grammar.
//
// The grammar is a recursive descent over the lexer's token slice.
// Optional elements are tried with backtracking: a failed attempt
// restores the token position, so the caller falls through to whatever
// may come next. When nothing matches, the parser reports the furthest
// position any attempt reached together with every token expected there.
//
// The parser is generic over a Builder, which receives each matched
// element and returns an opaque value. The grammar never references a
// concrete tree type.
package parser

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/golangsnmp/gocrs/internal/lexer"
	"github.com/golangsnmp/gocrs/internal/types"
	"github.com/golangsnmp/gocrs/wkt"
)

// Config controls grammar strictness.
type Config struct {
	// StrictDelimiters rejects elements whose right delimiter does not
	// pair with the left one, as in UNIT["metre",1).
	StrictDelimiters bool
}

// Parser holds the state of one parse. It is not safe for concurrent use;
// create one per input.
type Parser[N any] struct {
	source      string
	tokens      []lexer.Token
	diagnostics []types.Diagnostic
	pos         int
	build       Builder[N]
	config      Config
	failure     failureState
	types.Logger
}

// failureState accumulates the furthest failure seen so far.
type failureState struct {
	offset   int
	token    int
	expected []string
}

// New returns a Parser that tokenizes source and drives b.
// Pass nil for logger to disable logging.
func New[N any](source []byte, b Builder[N], config Config, logger *slog.Logger) *Parser[N] {
	lex := lexer.New(source, types.ComponentLogger(logger, "lexer"))
	tokens, diags := lex.Tokenize()
	p := &Parser[N]{
		source:      string(source),
		tokens:      tokens,
		diagnostics: diags,
		build:       b,
		config:      config,
		failure:     failureState{offset: -1},
		Logger:      types.Logger{L: logger},
	}
	p.Log(slog.LevelDebug, "parser initialized",
		slog.Int("tokens", len(tokens)),
		slog.Int("lexical_errors", len(diags)))
	return p
}

// Parse matches one complete coordinate system followed by end of input.
// Alternatives are tried in the order PROJCS, GEOGCS, GEOCCS, FITTED_CS.
func (p *Parser[N]) Parse() (N, *Failure) {
	var zero N
	alternatives := []struct {
		name string
		fn   func() (N, bool)
	}{
		{"PROJCS", p.projectedCS},
		{"GEOGCS", p.geographicCS},
		{"GEOCCS", p.geocentricCS},
		{"FITTED_CS", p.fittedCS},
	}
	for _, alt := range alternatives {
		n, ok := p.attempt(alt.fn)
		if !ok {
			continue
		}
		if !p.check(lexer.TokEOF) {
			p.fail(lexer.TokEOF.String())
			return zero, p.makeFailure()
		}
		p.Log(slog.LevelDebug, "parse complete",
			slog.String("root", alt.name),
			slog.Int("tokens", len(p.tokens)))
		return n, nil
	}
	f := p.makeFailure()
	p.Log(slog.LevelDebug, "parse failed",
		slog.Int("offset", f.Offset),
		slog.String("found", f.Found))
	return zero, f
}

// Diagnostics returns lexical diagnostics collected during tokenization.
func (p *Parser[N]) Diagnostics() []types.Diagnostic {
	return p.diagnostics
}

func (p *Parser[N]) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser[N]) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != lexer.TokEOF {
		p.pos++
	}
	return tok
}

func (p *Parser[N]) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser[N]) text(tok lexer.Token) string {
	return p.source[tok.Span.Start:tok.Span.End]
}

// attempt runs fn and restores the token position if it fails.
func (p *Parser[N]) attempt(fn func() (N, bool)) (N, bool) {
	mark := p.pos
	n, ok := fn()
	if !ok {
		if p.TraceEnabled() && p.pos != mark {
			p.Trace("backtrack",
				slog.Int("from", int(p.tokens[p.pos].Span.Start)),
				slog.Int("to", int(p.tokens[mark].Span.Start)))
		}
		p.pos = mark
	}
	return n, ok
}

// fail records that the current token did not match any of expected.
func (p *Parser[N]) fail(expected ...string) {
	offset := int(p.peek().Span.Start)
	switch {
	case offset > p.failure.offset:
		p.failure = failureState{offset: offset, token: p.pos}
	case offset < p.failure.offset:
		return
	}
	for _, e := range expected {
		if !containsString(p.failure.expected, e) {
			p.failure.expected = append(p.failure.expected, e)
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (p *Parser[N]) makeFailure() *Failure {
	tok := p.tokens[p.failure.token]
	f := &Failure{
		Offset:   p.failure.offset,
		Expected: append([]string(nil), p.failure.expected...),
		Found:    p.describe(tok),
	}
	if tok.Kind == lexer.TokError {
		for _, d := range p.diagnostics {
			if d.Span.Start == tok.Span.Start {
				f.Message = d.Message
				break
			}
		}
	}
	return f
}

// describe renders a token for "found ..." messages.
func (p *Parser[N]) describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.TokEOF:
		return tok.Kind.String()
	default:
		return fmt.Sprintf("%q", p.text(tok))
	}
}

// open matches one of keywords followed by a left delimiter.
func (p *Parser[N]) open(keywords ...string) (Frame, bool) {
	tok := p.peek()
	if tok.Kind != lexer.TokIdent || !matchKeyword(p.text(tok), keywords) {
		p.fail(keywords...)
		return Frame{}, false
	}
	p.advance()
	left := p.peek()
	if !left.Kind.IsLeftDelimiter() {
		p.fail(lexer.TokLBracket.String(), lexer.TokLParen.String())
		return Frame{}, false
	}
	p.advance()
	f := Frame{
		Offset:  int(tok.Span.Start),
		Keyword: p.text(tok),
		Left:    p.source[left.Span.Start],
	}
	if p.TraceEnabled() {
		p.Trace("open element", slog.String("keyword", f.Keyword), slog.Int("offset", f.Offset))
	}
	return f, true
}

// close matches the right delimiter of f.
func (p *Parser[N]) close(f *Frame) bool {
	tok := p.peek()
	if tok.Kind.IsRightDelimiter() {
		right := p.source[tok.Span.Start]
		if !p.config.StrictDelimiters || right == lexer.Matching(f.Left) {
			p.advance()
			f.Right = right
			return true
		}
	}
	if p.config.StrictDelimiters {
		p.fail(fmt.Sprintf("'%c'", lexer.Matching(f.Left)))
	} else {
		p.fail(lexer.TokRBracket.String(), lexer.TokRParen.String())
	}
	return false
}

func matchKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.EqualFold(s, kw) {
			return true
		}
	}
	return false
}

func (p *Parser[N]) comma() bool {
	if p.check(lexer.TokComma) {
		p.advance()
		return true
	}
	p.fail(lexer.TokComma.String())
	return false
}

func (p *Parser[N]) quotedName() (string, bool) {
	tok := p.peek()
	if tok.Kind != lexer.TokQuotedName {
		p.fail(lexer.TokQuotedName.String())
		return "", false
	}
	name, err := lexer.ParseQuotedName(p.text(tok))
	if err != nil {
		p.fail(lexer.TokQuotedName.String())
		return "", false
	}
	p.advance()
	return name, true
}

func (p *Parser[N]) number() (float64, bool) {
	tok := p.peek()
	if tok.Kind != lexer.TokNumber {
		p.fail(lexer.TokNumber.String())
		return 0, false
	}
	v, err := lexer.ParseSignedNumericLiteral(p.text(tok))
	if err != nil {
		p.fail(lexer.TokNumber.String())
		return 0, false
	}
	p.advance()
	return v, true
}

// commaNumber matches "," number.
func (p *Parser[N]) commaNumber() (float64, bool) {
	if !p.comma() {
		return 0, false
	}
	return p.number()
}

// next matches "," followed by the element fn parses.
func (p *Parser[N]) next(fn func() (N, bool)) (N, bool) {
	if !p.comma() {
		var zero N
		return zero, false
	}
	return fn()
}

// optional tries "," followed by the element fn parses and reports
// whether it was present. An absent element yields the zero N.
func (p *Parser[N]) optional(fn func() (N, bool)) (N, bool) {
	n, ok := p.attempt(func() (N, bool) { return p.next(fn) })
	if !ok {
		var zero N
		return zero, false
	}
	return n, true
}

// many collects repeated occurrences of "," followed by fn's element.
func (p *Parser[N]) many(fn func() (N, bool)) []N {
	var out []N
	for {
		n, ok := p.optional(fn)
		if !ok {
			return out
		}
		out = append(out, n)
	}
}

// authorityCode parses the code of an AUTHORITY, either quoted or bare.
// Codes that are not non-negative integers degrade to wkt.NoCode.
func (p *Parser[N]) authorityCode() (int, string, bool) {
	tok := p.peek()
	var text string
	switch tok.Kind {
	case lexer.TokQuotedName:
		s, err := lexer.ParseQuotedName(p.text(tok))
		if err != nil {
			p.fail(lexer.TokQuotedName.String(), lexer.TokNumber.String())
			return 0, "", false
		}
		text = s
	case lexer.TokNumber:
		text = p.text(tok)
	default:
		p.fail(lexer.TokQuotedName.String(), lexer.TokNumber.String())
		return 0, "", false
	}
	p.advance()
	code := wkt.NoCode
	if v, err := lexer.ParseUnsignedInteger(text); err == nil && v <= math.MaxInt32 {
		code = int(v)
	}
	return code, text, true
}
