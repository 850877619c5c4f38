// Package crs defines the coordinate reference system domain objects
// produced by conversion, and the Factory that constructs them.
//
// Objects are handled by pointer. Within one conversion an object built
// for a given tree node is returned for every later reference to that
// node, so pointer identity reflects structural sharing.
package crs

import "fmt"

// NoCode is the Info code used when no authority code is known.
const NoCode = -1

// Info identifies a named object.
type Info struct {
	Name      string
	Authority string
	Code      int
}

// String renders the name with its authority, as in "WGS 84 (EPSG:4326)".
func (i Info) String() string {
	if i.Authority == "" {
		return i.Name
	}
	if i.Code == NoCode {
		return fmt.Sprintf("%s (%s)", i.Name, i.Authority)
	}
	return fmt.Sprintf("%s (%s:%d)", i.Name, i.Authority, i.Code)
}

// Unit is a unit of unknown role.
type Unit struct {
	Info
	Factor float64
}

// LinearUnit converts to metres.
type LinearUnit struct {
	Info
	MetersPerUnit float64
}

// AngularUnit converts to radians.
type AngularUnit struct {
	Info
	RadiansPerUnit float64
}

// Ellipsoid is a reference ellipsoid.
type Ellipsoid struct {
	Info
	SemiMajorAxis     float64
	InverseFlattening float64
	AxisUnit          *LinearUnit
}

// SemiMinorAxis derives b from a and 1/f. A zero inverse flattening
// describes a sphere.
func (e *Ellipsoid) SemiMinorAxis() float64 {
	if e.InverseFlattening == 0 {
		return e.SemiMajorAxis
	}
	return e.SemiMajorAxis * (1 - 1/e.InverseFlattening)
}

// PrimeMeridian is a zero-longitude reference.
type PrimeMeridian struct {
	Info
	Longitude   float64
	AngularUnit *AngularUnit
}

// Wgs84Parameters is a seven-parameter Helmert shift to WGS 84.
type Wgs84Parameters struct {
	Dx, Dy, Dz  float64
	Ex, Ey, Ez  float64
	Ppm         float64
	Description string
}

// HasRotation reports whether any rotation or scale term is non-zero.
func (w *Wgs84Parameters) HasRotation() bool {
	return w.Ex != 0 || w.Ey != 0 || w.Ez != 0 || w.Ppm != 0
}

// HorizontalDatum is a geodetic datum.
type HorizontalDatum struct {
	Info
	Ellipsoid *Ellipsoid
	Wgs84     *Wgs84Parameters
}

// ProjectionParameter is one named projection argument.
type ProjectionParameter struct {
	Name  string
	Value float64
}

// Projection is a map projection method and its parameters in
// declaration order.
type Projection struct {
	Info
	Parameters []ProjectionParameter
}

// Parameter returns the value of the first parameter with the given name.
func (p *Projection) Parameter(name string) (float64, bool) {
	for _, param := range p.Parameters {
		if param.Name == name {
			return param.Value, true
		}
	}
	return 0, false
}

// AxisOrientation is the direction of a coordinate axis.
type AxisOrientation int

const (
	AxisOther AxisOrientation = iota
	AxisNorth
	AxisSouth
	AxisEast
	AxisWest
	AxisUp
	AxisDown
)

var axisOrientationNames = [...]string{"OTHER", "NORTH", "SOUTH", "EAST", "WEST", "UP", "DOWN"}

func (o AxisOrientation) String() string {
	if o < 0 || int(o) >= len(axisOrientationNames) {
		return fmt.Sprintf("AxisOrientation(%d)", int(o))
	}
	return axisOrientationNames[o]
}

// AxisInfo names one coordinate axis.
type AxisInfo struct {
	Name        string
	Orientation AxisOrientation
}

// CoordinateSystem is implemented by the four coordinate system kinds.
type CoordinateSystem interface {
	// CSInfo returns the name and authority of the coordinate system.
	CSInfo() Info
	// Axes returns the axes in order.
	Axes() []AxisInfo
}

// GeographicCoordinateSystem is a latitude/longitude system.
type GeographicCoordinateSystem struct {
	Info
	AngularUnit     *AngularUnit
	HorizontalDatum *HorizontalDatum
	PrimeMeridian   *PrimeMeridian
	AxisInfo        []AxisInfo
}

// GeocentricCoordinateSystem is an earth-centred cartesian system.
type GeocentricCoordinateSystem struct {
	Info
	LinearUnit      *LinearUnit
	HorizontalDatum *HorizontalDatum
	PrimeMeridian   *PrimeMeridian
	AxisInfo        []AxisInfo
}

// ProjectedCoordinateSystem is a projection of a geographic system.
type ProjectedCoordinateSystem struct {
	Info
	GeographicCoordinateSystem *GeographicCoordinateSystem
	Projection                 *Projection
	LinearUnit                 *LinearUnit
	AxisInfo                   []AxisInfo
}

// FittedCoordinateSystem is defined by an affine transform to a base
// projected system.
type FittedCoordinateSystem struct {
	Info
	ToBase *AffineTransform
	Base   *ProjectedCoordinateSystem
}

func (c *GeographicCoordinateSystem) CSInfo() Info     { return c.Info }
func (c *GeographicCoordinateSystem) Axes() []AxisInfo { return c.AxisInfo }
func (c *GeocentricCoordinateSystem) CSInfo() Info     { return c.Info }
func (c *GeocentricCoordinateSystem) Axes() []AxisInfo { return c.AxisInfo }
func (c *ProjectedCoordinateSystem) CSInfo() Info      { return c.Info }
func (c *ProjectedCoordinateSystem) Axes() []AxisInfo  { return c.AxisInfo }
func (c *FittedCoordinateSystem) CSInfo() Info         { return c.Info }

// Axes returns the axes of the base system.
func (c *FittedCoordinateSystem) Axes() []AxisInfo {
	if c.Base == nil {
		return nil
	}
	return c.Base.AxisInfo
}
