package gocrs

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golangsnmp/gocrs/crs"
	"github.com/golangsnmp/gocrs/internal/build"
	"github.com/golangsnmp/gocrs/internal/convert"
	"github.com/golangsnmp/gocrs/internal/parser"
	"github.com/golangsnmp/gocrs/internal/types"
	"github.com/golangsnmp/gocrs/wkt"
)

// SyntaxError reports input that does not match the grammar. Offset is
// the furthest byte any alternative reached; Expected lists every token
// that would have let the parse continue there.
type SyntaxError struct {
	Offset   int
	Line     int
	Column   int
	Expected []string
	Found    string
	// Message is set for lexical problems such as an unterminated name.
	Message string
	// Lexical lists every tokenization problem in the input, including
	// ones past Offset.
	Lexical []LexicalError
}

// LexicalError is one tokenization problem.
type LexicalError struct {
	Offset  int
	Line    int
	Column  int
	Message string
}

// Error renders "line:col: expected X, Y or Z, found tok".
func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d: ", e.Line, e.Column)
	if e.Message != "" {
		b.WriteString(e.Message)
		b.WriteString(": ")
	}
	if len(e.Expected) > 0 {
		b.WriteString("expected ")
		b.WriteString(parser.JoinExpected(e.Expected))
		b.WriteString(", ")
	}
	b.WriteString("found ")
	b.WriteString(e.Found)
	return b.String()
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func syntaxError(source []byte, f *parser.Failure, diags []types.Diagnostic) *SyntaxError {
	offset := max(f.Offset, 0)
	line, col := types.LineCol(source, types.ByteOffset(offset))
	se := &SyntaxError{
		Offset:   offset,
		Line:     line,
		Column:   col,
		Expected: f.Expected,
		Found:    f.Found,
		Message:  f.Message,
	}
	for _, d := range diags {
		line, col := types.LineCol(source, d.Span.Start)
		se.Lexical = append(se.Lexical, LexicalError{
			Offset:  int(d.Span.Start),
			Line:    line,
			Column:  col,
			Message: d.Message,
		})
	}
	return se
}

func checkEmpty(source []byte) error {
	if len(bytes.TrimSpace(source)) == 0 {
		return ErrEmptyInput
	}
	return nil
}

// Parse parses one WKT coordinate system. On failure the error is a
// *SyntaxError or ErrEmptyInput; no partial tree is returned.
func Parse(source []byte, opts ...Option) (wkt.CoordinateSystem, error) {
	cfg := newConfig(opts)
	if err := checkEmpty(source); err != nil {
		return nil, err
	}
	p := parser.New[wkt.Node](source, build.Tree{}, cfg.parserConfig(),
		types.ComponentLogger(cfg.logger, "parser"))
	root, fail := p.Parse()
	if fail != nil {
		return nil, syntaxError(source, fail, p.Diagnostics())
	}
	cs, ok := root.(wkt.CoordinateSystem)
	if !ok {
		return nil, fmt.Errorf("%T: %w", root, ErrNotCoordinateSystem)
	}
	return cs, nil
}

// ParseString is Parse for a string.
func ParseString(s string, opts ...Option) (wkt.CoordinateSystem, error) {
	return Parse([]byte(s), opts...)
}

// Convert resolves a parsed tree into domain objects. Every node is
// constructed at most once, so shared values such as a unit referenced
// from several places resolve to the same object.
func Convert(root wkt.Node, opts ...Option) (crs.CoordinateSystem, error) {
	cfg := newConfig(opts)
	return convert.Convert(root, cfg.factory, types.ComponentLogger(cfg.logger, "convert"))
}

// ParseCRS parses source and converts the result. With WithEagerBuild
// the domain objects are created during the parse and no tree exists.
func ParseCRS(source []byte, opts ...Option) (crs.CoordinateSystem, error) {
	cfg := newConfig(opts)
	if !cfg.eager {
		root, err := Parse(source, opts...)
		if err != nil {
			return nil, err
		}
		return convert.Convert(root, cfg.factory, types.ComponentLogger(cfg.logger, "convert"))
	}

	if err := checkEmpty(source); err != nil {
		return nil, err
	}
	eager := convert.NewEager(cfg.factory, types.ComponentLogger(cfg.logger, "convert"))
	p := parser.New[any](source, eager, cfg.parserConfig(),
		types.ComponentLogger(cfg.logger, "parser"))
	root, fail := p.Parse()
	if fail != nil {
		return nil, syntaxError(source, fail, p.Diagnostics())
	}
	cs, err := eager.Result(root)
	if err != nil {
		return nil, err
	}
	if cfg.logger != nil {
		cfg.logger.Debug("eager build complete", slog.String("name", cs.CSInfo().Name))
	}
	return cs, nil
}

func (c config) parserConfig() parser.Config {
	return parser.Config{StrictDelimiters: c.strictDelimiters}
}
