package parser

import "github.com/golangsnmp/gocrs/wkt"

// Frame describes the element a Builder method is constructing.
type Frame struct {
	// Offset is the byte offset of the keyword.
	Offset int
	// Keyword is the keyword as written.
	Keyword string
	// Left and Right are the delimiters as written.
	Left, Right byte
}

// Builder constructs a value for every element the grammar matches.
//
// Nested elements arrive as values previously returned by the same
// Builder. An absent optional element is passed as the zero value of N.
// Methods must not retain or mutate parser state. A method may be called
// for an element that is later discarded by backtracking.
type Builder[N any] interface {
	Authority(f Frame, name string, code int, codeText string) N
	Axis(f Frame, name string, direction wkt.AxisDirection) N
	ToWgs84(f Frame, values [7]float64, description string) N
	Unit(f Frame, name string, factor float64, authority N) N
	Ellipsoid(f Frame, name string, semiMajorAxis, inverseFlattening float64, authority N) N
	PrimeMeridian(f Frame, name string, longitude float64, authority N) N
	Datum(f Frame, name string, ellipsoid, toWgs84, authority N) N
	Projection(f Frame, name string, authority N) N
	Parameter(f Frame, name string, value float64) N
	Extension(f Frame, name, value string) N
	GeographicCS(f Frame, name string, datum, primeMeridian, unit N, axes []N, authority N) N
	GeocentricCS(f Frame, name string, datum, primeMeridian, unit N, axes []N, authority N) N
	ProjectedCS(f Frame, name string, geographic, projection N, parameters []N, unit N, axes []N, extension, authority N) N
	ParamMT(f Frame, name string, parameters []N) N
	FittedCS(f Frame, name string, toBase, base, authority N) N
}
