// Package gocrs parses coordinate reference systems written in the
// OGC well-known text (WKT) format.
//
// Parse produces a wkt tree that preserves the source's keywords and
// delimiters and can be formatted back to text. Convert resolves a tree
// into crs domain objects through a crs.Factory. ParseCRS does both in
// one call.
//
//	root, err := gocrs.ParseString(`GEOGCS["WGS 84", ...]`)
//	if err != nil {
//	    var se *gocrs.SyntaxError
//	    if errors.As(err, &se) {
//	        fmt.Println(se.Line, se.Column, se.Expected)
//	    }
//	    return err
//	}
//	fmt.Println(wkt.Format(root, wkt.Pretty()))
//
//	cs, err := gocrs.Convert(root)
package gocrs

import (
	"errors"
	"log/slog"

	"github.com/golangsnmp/gocrs/crs"
	"github.com/golangsnmp/gocrs/internal/convert"
	"github.com/golangsnmp/gocrs/internal/types"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item logging (tokens, production attempts, converted nodes).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

var (
	// ErrEmptyInput is returned when the source holds nothing but whitespace.
	ErrEmptyInput = errors.New("empty WKT input")

	// ErrSyntax matches every *SyntaxError with errors.Is.
	ErrSyntax = errors.New("WKT syntax error")

	// ErrNotCoordinateSystem is returned by Convert when the root is not
	// one of the four coordinate system kinds.
	ErrNotCoordinateSystem = convert.ErrNotCoordinateSystem
)

// Option configures Parse, Convert and ParseCRS.
type Option func(*config)

type config struct {
	logger           *slog.Logger
	factory          crs.Factory
	strictDelimiters bool
	eager            bool
}

func newConfig(opts []Option) config {
	cfg := config{factory: crs.DefaultFactory{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithFactory sets the factory that creates domain objects.
// The default is crs.DefaultFactory.
func WithFactory(factory crs.Factory) Option {
	return func(c *config) {
		if factory != nil {
			c.factory = factory
		}
	}
}

// WithStrictDelimiters rejects elements whose closing delimiter does not
// pair with the opening one, as in UNIT["metre",1). By default any
// combination of brackets and parentheses is accepted.
func WithStrictDelimiters() Option {
	return func(c *config) { c.strictDelimiters = true }
}

// WithEagerBuild makes ParseCRS create domain objects while parsing
// rather than building a tree first. Parse and Convert ignore it.
func WithEagerBuild() Option {
	return func(c *config) { c.eager = true }
}
