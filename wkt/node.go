// Package wkt provides the tree model for Well-Known Text coordinate
// reference system descriptions, a post-order traversal, structural
// comparison and a configurable text formatter.
//
// Every node records the keyword and delimiters it was written with so
// that it can be re-serialized faithfully. Those presentation fields are
// excluded from Equal: two trees are equal when they mean the same thing.
//
// Nodes are created bottom-up in a single parse pass and are not mutated
// afterwards.
package wkt

import "strings"

// Node is an element of a parsed WKT tree.
type Node interface {
	// Keyword returns the element keyword as written (e.g. "SPHEROID").
	Keyword() string
	// Delimiters returns the left and right delimiter characters.
	Delimiters() (left, right byte)
	// Offset returns the byte offset of the keyword in the source, or -1
	// for nodes that were not parsed from text.
	Offset() int
	node()
}

// CoordinateSystem is a top-level node: GeographicCS, GeocentricCS,
// ProjectedCS or FittedCS.
type CoordinateSystem interface {
	Node
	// CSName returns the coordinate system name.
	CSName() string
	// CSAuthority returns the coordinate system authority, or nil.
	CSAuthority() *Authority
	coordinateSystem()
}

// Element holds the presentation fields shared by every node.
type Element struct {
	KeywordText string
	Left        byte
	Right       byte
	Pos         int
}

// Keyword returns the element keyword as written.
func (e *Element) Keyword() string { return e.KeywordText }

// Delimiters returns the left and right delimiter characters.
func (e *Element) Delimiters() (left, right byte) { return e.Left, e.Right }

// Offset returns the source byte offset of the keyword.
func (e *Element) Offset() int { return e.Pos }

func (*Element) node() {}

// NewElement returns an Element with square brackets and no source offset.
func NewElement(keyword string) Element {
	return Element{KeywordText: keyword, Left: '[', Right: ']', Pos: -1}
}

// NoCode is the Authority code used when the code is absent or not a
// non-negative integer.
const NoCode = -1

// Authority is an AUTHORITY["name","code"] element.
type Authority struct {
	Element
	Name string
	Code int
	// CodeText is the code as written, used when formatting.
	CodeText string
}

// Axis is an AXIS["name",DIRECTION] element.
type Axis struct {
	Element
	Name      string
	Direction AxisDirection
}

// UnitKind distinguishes linear and angular units from units whose role
// is only known from context.
type UnitKind int

const (
	UnitGeneric UnitKind = iota
	UnitLinear
	UnitAngular
)

// String returns the kind name.
func (k UnitKind) String() string {
	switch k {
	case UnitLinear:
		return "linear"
	case UnitAngular:
		return "angular"
	default:
		return "generic"
	}
}

// UnitKindOf classifies a unit by name: "metre" and "meter" are linear,
// "degree" is angular, anything else is generic.
func UnitKindOf(name string) UnitKind {
	switch {
	case strings.EqualFold(name, "metre"), strings.EqualFold(name, "meter"):
		return UnitLinear
	case strings.EqualFold(name, "degree"):
		return UnitAngular
	default:
		return UnitGeneric
	}
}

// Unit is a UNIT["name",factor] element. Factor converts to metres for
// linear units and to radians for angular units.
type Unit struct {
	Element
	Name      string
	Factor    float64
	Kind      UnitKind
	Authority *Authority
}

// Ellipsoid is a SPHEROID or ELLIPSOID element.
type Ellipsoid struct {
	Element
	Name              string
	SemiMajorAxis     float64
	InverseFlattening float64
	Authority         *Authority
}

// PrimeMeridian is a PRIMEM["name",longitude] element.
type PrimeMeridian struct {
	Element
	Name      string
	Longitude float64
	Authority *Authority
}

// ToWgs84 is a TOWGS84 element: three translations (metres), three
// rotations (arc-seconds) and a scale correction (parts per million).
type ToWgs84 struct {
	Element
	Dx, Dy, Dz  float64
	Ex, Ey, Ez  float64
	Ppm         float64
	Description string
}

// Values returns the seven numeric parameters in declaration order.
func (t *ToWgs84) Values() [7]float64 {
	return [7]float64{t.Dx, t.Dy, t.Dz, t.Ex, t.Ey, t.Ez, t.Ppm}
}

// Datum is a DATUM element.
type Datum struct {
	Element
	Name      string
	Ellipsoid *Ellipsoid
	ToWgs84   *ToWgs84
	Authority *Authority
}

// Projection is a PROJECTION["name"] element.
type Projection struct {
	Element
	Name      string
	Authority *Authority
}

// Parameter is a PARAMETER["name",value] element.
type Parameter struct {
	Element
	Name  string
	Value float64
}

// Extension is an EXTENSION["name","value"] element carrying vendor data
// such as PROJ4 strings.
type Extension struct {
	Element
	Name  string
	Value string
}

// GeographicCS is a GEOGCS element.
type GeographicCS struct {
	Element
	Name          string
	Datum         *Datum
	PrimeMeridian *PrimeMeridian
	Unit          *Unit
	Axes          []*Axis
	Authority     *Authority
}

// GeocentricCS is a GEOCCS element.
type GeocentricCS struct {
	Element
	Name          string
	Datum         *Datum
	PrimeMeridian *PrimeMeridian
	Unit          *Unit
	Axes          []*Axis
	Authority     *Authority
}

// ProjectedCS is a PROJCS element. Parameters belong to Projection and are
// kept in declaration order.
type ProjectedCS struct {
	Element
	Name         string
	GeographicCS *GeographicCS
	Projection   *Projection
	Parameters   []*Parameter
	Unit         *Unit
	Axes         []*Axis
	Extension    *Extension
	Authority    *Authority
}

// Parameter returns the first parameter with the given name, or nil.
func (p *ProjectedCS) Parameter(name string) *Parameter {
	for _, param := range p.Parameters {
		if param.Name == name {
			return param
		}
	}
	return nil
}

// ParamMT is a PARAM_MT element: a named math transform and its parameters.
type ParamMT struct {
	Element
	Name       string
	Parameters []*Parameter
}

// FittedCS is a FITTED_CS element.
type FittedCS struct {
	Element
	Name      string
	ToBase    *ParamMT
	Base      *ProjectedCS
	Authority *Authority
}

func (c *GeographicCS) CSName() string          { return c.Name }
func (c *GeographicCS) CSAuthority() *Authority { return c.Authority }
func (*GeographicCS) coordinateSystem()         {}

func (c *GeocentricCS) CSName() string          { return c.Name }
func (c *GeocentricCS) CSAuthority() *Authority { return c.Authority }
func (*GeocentricCS) coordinateSystem()         {}

func (c *ProjectedCS) CSName() string          { return c.Name }
func (c *ProjectedCS) CSAuthority() *Authority { return c.Authority }
func (*ProjectedCS) coordinateSystem()         {}

func (c *FittedCS) CSName() string          { return c.Name }
func (c *FittedCS) CSAuthority() *Authority { return c.Authority }
func (*FittedCS) coordinateSystem()         {}
