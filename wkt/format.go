package wkt

import (
	"strconv"
	"strings"
)

// FormatOption configures a Formatter.
type FormatOption func(*formatConfig)

type formatConfig struct {
	newline   string
	indent    string
	separator string
	space     string
	left      byte
	right     byte
}

// WithNewline sets the string written before each nested element.
// The default is no newline: output is a single line.
func WithNewline(s string) FormatOption {
	return func(c *formatConfig) { c.newline = s }
}

// WithIndent sets the string written once per nesting level after a
// newline. It has no effect without WithNewline.
func WithIndent(s string) FormatOption {
	return func(c *formatConfig) { c.indent = s }
}

// WithSeparator sets the field separator. The default is ",".
func WithSeparator(s string) FormatOption {
	return func(c *formatConfig) { c.separator = s }
}

// WithSpace sets extra whitespace written after each separator that is
// not followed by a newline.
func WithSpace(s string) FormatOption {
	return func(c *formatConfig) { c.space = s }
}

// WithDelimiters overrides every node's delimiters. Passing zero bytes
// restores the default of keeping each node's own delimiters.
func WithDelimiters(left, right byte) FormatOption {
	return func(c *formatConfig) { c.left, c.right = left, right }
}

// Pretty breaks nested elements onto their own lines with two-space
// indentation.
func Pretty() FormatOption {
	return func(c *formatConfig) {
		c.newline = "\n"
		c.indent = "  "
	}
}

// Formatter renders nodes as WKT text. A Formatter is immutable and safe
// for concurrent use.
type Formatter struct {
	cfg formatConfig
}

// NewFormatter returns a Formatter with the given options applied over
// the defaults.
func NewFormatter(opts ...FormatOption) *Formatter {
	cfg := formatConfig{separator: ","}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Formatter{cfg: cfg}
}

// Format renders n. A nil node renders as the empty string.
func (f *Formatter) Format(n Node) string {
	if IsNil(n) {
		return ""
	}
	w := &writer{cfg: &f.cfg}
	w.node(n)
	return w.b.String()
}

// Format renders n with a Formatter built from opts.
func Format(n Node, opts ...FormatOption) string {
	return NewFormatter(opts...).Format(n)
}

// writer holds the state of one Format call. Only nested elements start
// a new line, so the scalar tuples of AXIS and TOWGS84 always stay on the
// line of their keyword.
type writer struct {
	cfg    *formatConfig
	b      strings.Builder
	depth  int
	fields []int
}

func (w *writer) field(element bool) {
	top := len(w.fields) - 1
	if top < 0 {
		return
	}
	if w.fields[top] > 0 {
		w.b.WriteString(w.cfg.separator)
		if element && w.cfg.newline != "" {
			w.b.WriteString(w.cfg.newline)
			for range w.depth {
				w.b.WriteString(w.cfg.indent)
			}
		} else {
			w.b.WriteString(w.cfg.space)
		}
	}
	w.fields[top]++
}

func (w *writer) open(n Node, fallback string) {
	w.field(true)
	kw := n.Keyword()
	if kw == "" {
		kw = fallback
	}
	left, _ := n.Delimiters()
	if w.cfg.left != 0 {
		left = w.cfg.left
	}
	if left == 0 {
		left = '['
	}
	w.b.WriteString(kw)
	w.b.WriteByte(left)
	w.depth++
	w.fields = append(w.fields, 0)
}

func (w *writer) close(n Node) {
	_, right := n.Delimiters()
	if w.cfg.right != 0 {
		right = w.cfg.right
	}
	if right == 0 {
		right = ']'
	}
	w.depth--
	w.fields = w.fields[:len(w.fields)-1]
	w.b.WriteByte(right)
}

func (w *writer) quoted(s string) {
	w.field(false)
	w.b.WriteByte('"')
	w.b.WriteString(s)
	w.b.WriteByte('"')
}

func (w *writer) number(v float64) {
	w.field(false)
	w.b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
}

func (w *writer) ident(s string) {
	w.field(false)
	w.b.WriteString(s)
}

func (w *writer) optional(n Node) {
	if !IsNil(n) {
		w.node(n)
	}
}

func (w *writer) node(n Node) {
	switch n := n.(type) {
	case *Authority:
		w.open(n, "AUTHORITY")
		w.quoted(n.Name)
		code := n.CodeText
		if code == "" && n.Code != NoCode {
			code = strconv.Itoa(n.Code)
		}
		w.quoted(code)
	case *Axis:
		w.open(n, "AXIS")
		w.quoted(n.Name)
		w.ident(n.Direction.String())
	case *Unit:
		w.open(n, "UNIT")
		w.quoted(n.Name)
		w.number(n.Factor)
		w.optional(n.Authority)
	case *Ellipsoid:
		w.open(n, "SPHEROID")
		w.quoted(n.Name)
		w.number(n.SemiMajorAxis)
		w.number(n.InverseFlattening)
		w.optional(n.Authority)
	case *PrimeMeridian:
		w.open(n, "PRIMEM")
		w.quoted(n.Name)
		w.number(n.Longitude)
		w.optional(n.Authority)
	case *ToWgs84:
		w.open(n, "TOWGS84")
		for _, v := range n.Values() {
			w.number(v)
		}
		if n.Description != "" {
			w.quoted(n.Description)
		}
	case *Datum:
		w.open(n, "DATUM")
		w.quoted(n.Name)
		w.optional(n.Ellipsoid)
		w.optional(n.ToWgs84)
		w.optional(n.Authority)
	case *Projection:
		w.open(n, "PROJECTION")
		w.quoted(n.Name)
		w.optional(n.Authority)
	case *Parameter:
		w.open(n, "PARAMETER")
		w.quoted(n.Name)
		w.number(n.Value)
	case *Extension:
		w.open(n, "EXTENSION")
		w.quoted(n.Name)
		w.quoted(n.Value)
	case *GeographicCS:
		w.open(n, "GEOGCS")
		w.quoted(n.Name)
		w.optional(n.Datum)
		w.optional(n.PrimeMeridian)
		w.optional(n.Unit)
		for _, a := range n.Axes {
			w.optional(a)
		}
		w.optional(n.Authority)
	case *GeocentricCS:
		w.open(n, "GEOCCS")
		w.quoted(n.Name)
		w.optional(n.Datum)
		w.optional(n.PrimeMeridian)
		w.optional(n.Unit)
		for _, a := range n.Axes {
			w.optional(a)
		}
		w.optional(n.Authority)
	case *ProjectedCS:
		w.open(n, "PROJCS")
		w.quoted(n.Name)
		w.optional(n.GeographicCS)
		w.optional(n.Projection)
		for _, p := range n.Parameters {
			w.optional(p)
		}
		w.optional(n.Unit)
		for _, a := range n.Axes {
			w.optional(a)
		}
		w.optional(n.Extension)
		w.optional(n.Authority)
	case *ParamMT:
		w.open(n, "PARAM_MT")
		w.quoted(n.Name)
		for _, p := range n.Parameters {
			w.optional(p)
		}
	case *FittedCS:
		w.open(n, "FITTED_CS")
		w.quoted(n.Name)
		w.optional(n.ToBase)
		w.optional(n.Base)
		w.optional(n.Authority)
	default:
		return
	}
	w.close(n)
}
