// Package convert turns WKT trees, or parser builder calls directly, into
// crs domain objects through a crs.Factory.
package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/golangsnmp/gocrs/crs"
	"github.com/golangsnmp/gocrs/wkt"
)

// assembler holds the construction steps shared by the tree Converter and
// the Eager builder. Default units are created at most once.
type assembler struct {
	factory crs.Factory
	metre   *crs.LinearUnit
	degree  *crs.AngularUnit
}

func (a *assembler) defaultMetre() (*crs.LinearUnit, error) {
	if a.metre == nil {
		u, err := a.factory.CreateLinearUnit(crs.MetreInfo, 1)
		if err != nil {
			return nil, fmt.Errorf("default linear unit: %w", err)
		}
		a.metre = u
	}
	return a.metre, nil
}

func (a *assembler) defaultDegree() (*crs.AngularUnit, error) {
	if a.degree == nil {
		u, err := a.factory.CreateAngularUnit(crs.DegreeInfo, crs.RadiansPerDegree)
		if err != nil {
			return nil, fmt.Errorf("default angular unit: %w", err)
		}
		a.degree = u
	}
	return a.degree, nil
}

// unit creates a unit in the given role. A generic role falls back to
// the kind implied by the unit's name.
func (a *assembler) unit(info crs.Info, factor float64, kind, role wkt.UnitKind) (any, error) {
	if role == wkt.UnitGeneric {
		role = kind
	}
	switch role {
	case wkt.UnitLinear:
		return a.factory.CreateLinearUnit(info, factor)
	case wkt.UnitAngular:
		return a.factory.CreateAngularUnit(info, factor)
	default:
		return a.factory.CreateUnit(info, factor)
	}
}

func (a *assembler) ellipsoid(info crs.Info, semiMajorAxis, inverseFlattening float64) (*crs.Ellipsoid, error) {
	metre, err := a.defaultMetre()
	if err != nil {
		return nil, err
	}
	return a.factory.CreateEllipsoid(info, semiMajorAxis, inverseFlattening, metre)
}

func (a *assembler) primeMeridian(info crs.Info, longitude float64, unit *crs.AngularUnit) (*crs.PrimeMeridian, error) {
	if unit == nil {
		var err error
		if unit, err = a.defaultDegree(); err != nil {
			return nil, err
		}
	}
	return a.factory.CreatePrimeMeridian(info, longitude, unit)
}

func (a *assembler) geographic(info crs.Info, unit *crs.AngularUnit, datum *crs.HorizontalDatum,
	pm *crs.PrimeMeridian, axes []crs.AxisInfo) (*crs.GeographicCoordinateSystem, error) {
	if unit == nil {
		var err error
		if unit, err = a.defaultDegree(); err != nil {
			return nil, err
		}
	}
	axes = withDefaultAxes(axes, geographicAxes)
	return a.factory.CreateGeographicCoordinateSystem(info, unit, datum, pm, axes[0], axes[1])
}

func (a *assembler) geocentric(info crs.Info, unit *crs.LinearUnit, datum *crs.HorizontalDatum,
	pm *crs.PrimeMeridian, axes []crs.AxisInfo) (*crs.GeocentricCoordinateSystem, error) {
	if unit == nil {
		var err error
		if unit, err = a.defaultMetre(); err != nil {
			return nil, err
		}
	}
	return a.factory.CreateGeocentricCoordinateSystem(info, unit, datum, pm, withDefaultAxes(axes, geocentricAxes))
}

func (a *assembler) projected(info crs.Info, geog *crs.GeographicCoordinateSystem, proj *crs.Projection,
	unit *crs.LinearUnit, axes []crs.AxisInfo) (*crs.ProjectedCoordinateSystem, error) {
	if unit == nil {
		var err error
		if unit, err = a.defaultMetre(); err != nil {
			return nil, err
		}
	}
	axes = withDefaultAxes(axes, projectedAxes)
	return a.factory.CreateProjectedCoordinateSystem(info, geog, proj, unit, axes[0], axes[1])
}

// affine builds the transform encoded by a PARAM_MT parameter list.
func (a *assembler) affine(name string, params []crs.ProjectionParameter) (*crs.AffineTransform, error) {
	m, err := AffineMatrix(name, params)
	if err != nil {
		return nil, err
	}
	return a.factory.CreateAffineTransform(name, m)
}

var (
	geographicAxes = []crs.AxisInfo{{Name: "Lon", Orientation: crs.AxisEast}, {Name: "Lat", Orientation: crs.AxisNorth}}
	projectedAxes  = []crs.AxisInfo{{Name: "X", Orientation: crs.AxisEast}, {Name: "Y", Orientation: crs.AxisNorth}}
	geocentricAxes = []crs.AxisInfo{
		{Name: "X", Orientation: crs.AxisOther},
		{Name: "Y", Orientation: crs.AxisEast},
		{Name: "Z", Orientation: crs.AxisNorth},
	}
)

// withDefaultAxes fills positions missing from axes with the defaults.
// Axes beyond the defaults are kept.
func withDefaultAxes(axes, defaults []crs.AxisInfo) []crs.AxisInfo {
	out := append([]crs.AxisInfo(nil), axes...)
	for i := len(out); i < len(defaults); i++ {
		out = append(out, defaults[i])
	}
	return out
}

// Orientation maps a WKT axis direction to its domain orientation.
func Orientation(d wkt.AxisDirection) crs.AxisOrientation {
	switch d {
	case wkt.AxisNorth:
		return crs.AxisNorth
	case wkt.AxisSouth:
		return crs.AxisSouth
	case wkt.AxisEast:
		return crs.AxisEast
	case wkt.AxisWest:
		return crs.AxisWest
	case wkt.AxisUp:
		return crs.AxisUp
	case wkt.AxisDown:
		return crs.AxisDown
	default:
		return crs.AxisOther
	}
}

// info combines an element name with its authority, if any.
func info(name string, authority *crs.Info) crs.Info {
	if authority == nil {
		return crs.Info{Name: name, Code: crs.NoCode}
	}
	return crs.Info{Name: name, Authority: authority.Authority, Code: authority.Code}
}

// AffineMatrix decodes num_row, num_col and elt_R_C parameters into a
// matrix. The matrix starts as identity; elements outside the declared
// size and unrecognized names are ignored.
func AffineMatrix(name string, params []crs.ProjectionParameter) (*mat.Dense, error) {
	rows, err := dimension(name, params, "num_row")
	if err != nil {
		return nil, err
	}
	cols, err := dimension(name, params, "num_col")
	if err != nil {
		return nil, err
	}
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < min(rows, cols); i++ {
		m.Set(i, i, 1)
	}
	for _, p := range params {
		r, c, ok := elementIndex(p.Name)
		if ok && r < rows && c < cols {
			m.Set(r, c, p.Value)
		}
	}
	return m, nil
}

func dimension(transform string, params []crs.ProjectionParameter, key string) (int, error) {
	for _, p := range params {
		if p.Name != key {
			continue
		}
		if p.Value != math.Trunc(p.Value) || p.Value < 1 || p.Value > crs.MaxAffineDimension {
			return 0, &crs.ParameterError{Transform: transform, Parameter: key, Value: p.Value, Err: crs.ErrInvalidParameter}
		}
		return int(p.Value), nil
	}
	return 0, &crs.ParameterError{Transform: transform, Parameter: key, Err: crs.ErrMissingParameter}
}

// elementIndex parses "elt_R_C".
func elementIndex(name string) (row, col int, ok bool) {
	rest, ok := strings.CutPrefix(name, "elt_")
	if !ok {
		return 0, 0, false
	}
	rs, cs, ok := strings.Cut(rest, "_")
	if !ok {
		return 0, 0, false
	}
	r, err := strconv.Atoi(rs)
	if err != nil || r < 0 {
		return 0, 0, false
	}
	c, err := strconv.Atoi(cs)
	if err != nil || c < 0 {
		return 0, 0, false
	}
	return r, c, true
}
