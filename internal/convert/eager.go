package convert

import (
	"fmt"
	"log/slog"

	"github.com/golangsnmp/gocrs/crs"
	"github.com/golangsnmp/gocrs/internal/parser"
	"github.com/golangsnmp/gocrs/internal/types"
	"github.com/golangsnmp/gocrs/wkt"
)

// Eager is a parser.Builder that constructs domain objects as the grammar
// matches, without building a tree.
//
// Units, prime meridians and projections depend on their enclosing
// element (unit role, the GEOGCS angular unit, the PROJCS parameters), so
// they are carried as pending values and created by the parent.
//
// Builder methods cannot fail; the first error is kept and reported by
// Result. An Eager serves a single parse.
type Eager struct {
	assembler
	err error
	types.Logger
}

var _ parser.Builder[any] = (*Eager)(nil)

type pendingUnit struct {
	info   crs.Info
	factor float64
	kind   wkt.UnitKind
}

type pendingPrimeMeridian struct {
	info      crs.Info
	longitude float64
}

type pendingProjection struct {
	info crs.Info
}

// NewEager returns an Eager that creates objects through factory.
func NewEager(factory crs.Factory, logger *slog.Logger) *Eager {
	return &Eager{assembler: assembler{factory: factory}, Logger: types.Logger{L: logger}}
}

// Result checks the value returned by the parser and the first
// construction error, returning the coordinate system.
func (e *Eager) Result(root any) (crs.CoordinateSystem, error) {
	if e.err != nil {
		return nil, e.err
	}
	cs, ok := root.(crs.CoordinateSystem)
	if !ok {
		return nil, fmt.Errorf("%T: %w", root, ErrNotCoordinateSystem)
	}
	return cs, nil
}

// keep records err against f and reports whether construction may
// continue.
func (e *Eager) keep(f parser.Frame, err error) bool {
	if err == nil {
		return true
	}
	if e.err == nil {
		e.err = fmt.Errorf("%s at offset %d: %w", f.Keyword, f.Offset, err)
		e.Log(slog.LevelDebug, "construction failed", slog.String("error", e.err.Error()))
	}
	return false
}

func authorityInfo(name string, auth any) crs.Info {
	if a, ok := auth.(crs.Info); ok {
		return info(name, &a)
	}
	return info(name, nil)
}

func (e *Eager) resolveUnit(f parser.Frame, u any, role wkt.UnitKind) any {
	p, ok := u.(pendingUnit)
	if !ok {
		return nil
	}
	obj, err := e.unit(p.info, p.factor, p.kind, role)
	if !e.keep(f, err) {
		return nil
	}
	return obj
}

func axesOf(axes []any) []crs.AxisInfo {
	out := make([]crs.AxisInfo, 0, len(axes))
	for _, a := range axes {
		if ax, ok := a.(crs.AxisInfo); ok {
			out = append(out, ax)
		}
	}
	return out
}

func (e *Eager) Authority(_ parser.Frame, name string, code int, _ string) any {
	return crs.Info{Authority: name, Code: code}
}

func (e *Eager) Axis(_ parser.Frame, name string, direction wkt.AxisDirection) any {
	return crs.AxisInfo{Name: name, Orientation: Orientation(direction)}
}

func (e *Eager) ToWgs84(_ parser.Frame, v [7]float64, description string) any {
	return &crs.Wgs84Parameters{
		Dx:          v[0],
		Dy:          v[1],
		Dz:          v[2],
		Ex:          v[3],
		Ey:          v[4],
		Ez:          v[5],
		Ppm:         v[6],
		Description: description,
	}
}

func (e *Eager) Unit(_ parser.Frame, name string, factor float64, authority any) any {
	return pendingUnit{info: authorityInfo(name, authority), factor: factor, kind: wkt.UnitKindOf(name)}
}

func (e *Eager) Ellipsoid(f parser.Frame, name string, semiMajorAxis, inverseFlattening float64, authority any) any {
	ellps, err := e.ellipsoid(authorityInfo(name, authority), semiMajorAxis, inverseFlattening)
	if !e.keep(f, err) {
		return nil
	}
	return ellps
}

func (e *Eager) PrimeMeridian(_ parser.Frame, name string, longitude float64, authority any) any {
	return pendingPrimeMeridian{info: authorityInfo(name, authority), longitude: longitude}
}

func (e *Eager) Datum(f parser.Frame, name string, ellipsoid, toWgs84, authority any) any {
	ellps, _ := ellipsoid.(*crs.Ellipsoid)
	shift, _ := toWgs84.(*crs.Wgs84Parameters)
	datum, err := e.factory.CreateHorizontalDatum(authorityInfo(name, authority), ellps, shift)
	if !e.keep(f, err) {
		return nil
	}
	return datum
}

func (e *Eager) Projection(_ parser.Frame, name string, authority any) any {
	return pendingProjection{info: authorityInfo(name, authority)}
}

func (e *Eager) Parameter(_ parser.Frame, name string, value float64) any {
	return crs.ProjectionParameter{Name: name, Value: value}
}

func (e *Eager) Extension(_ parser.Frame, _, value string) any {
	return value
}

func (e *Eager) primeMeridianIn(f parser.Frame, pm any, unit *crs.AngularUnit) *crs.PrimeMeridian {
	p, ok := pm.(pendingPrimeMeridian)
	if !ok {
		return nil
	}
	obj, err := e.primeMeridian(p.info, p.longitude, unit)
	if !e.keep(f, err) {
		return nil
	}
	return obj
}

func (e *Eager) GeographicCS(f parser.Frame, name string, datum, primeMeridian, unit any, axes []any, authority any) any {
	angular, _ := e.resolveUnit(f, unit, wkt.UnitAngular).(*crs.AngularUnit)
	pm := e.primeMeridianIn(f, primeMeridian, angular)
	d, _ := datum.(*crs.HorizontalDatum)
	cs, err := e.geographic(authorityInfo(name, authority), angular, d, pm, axesOf(axes))
	if !e.keep(f, err) {
		return nil
	}
	return cs
}

func (e *Eager) GeocentricCS(f parser.Frame, name string, datum, primeMeridian, unit any, axes []any, authority any) any {
	linear, _ := e.resolveUnit(f, unit, wkt.UnitLinear).(*crs.LinearUnit)
	pm := e.primeMeridianIn(f, primeMeridian, nil)
	d, _ := datum.(*crs.HorizontalDatum)
	cs, err := e.geocentric(authorityInfo(name, authority), linear, d, pm, axesOf(axes))
	if !e.keep(f, err) {
		return nil
	}
	return cs
}

func (e *Eager) ProjectedCS(f parser.Frame, name string, geographic, projection any, parameters []any, unit any, axes []any, _, authority any) any {
	var proj *crs.Projection
	if p, ok := projection.(pendingProjection); ok {
		params := make([]crs.ProjectionParameter, 0, len(parameters))
		for _, v := range parameters {
			if param, ok := v.(crs.ProjectionParameter); ok {
				params = append(params, param)
			}
		}
		var err error
		if proj, err = e.factory.CreateProjection(p.info, params); !e.keep(f, err) {
			return nil
		}
	}
	linear, _ := e.resolveUnit(f, unit, wkt.UnitLinear).(*crs.LinearUnit)
	geog, _ := geographic.(*crs.GeographicCoordinateSystem)
	cs, err := e.projected(authorityInfo(name, authority), geog, proj, linear, axesOf(axes))
	if !e.keep(f, err) {
		return nil
	}
	return cs
}

func (e *Eager) ParamMT(f parser.Frame, name string, parameters []any) any {
	params := make([]crs.ProjectionParameter, 0, len(parameters))
	for _, v := range parameters {
		if param, ok := v.(crs.ProjectionParameter); ok {
			params = append(params, param)
		}
	}
	t, err := e.affine(name, params)
	if !e.keep(f, err) {
		return nil
	}
	return t
}

func (e *Eager) FittedCS(f parser.Frame, name string, toBase, base, authority any) any {
	t, _ := toBase.(*crs.AffineTransform)
	b, _ := base.(*crs.ProjectedCoordinateSystem)
	cs, err := e.factory.CreateFittedCoordinateSystem(authorityInfo(name, authority), t, b)
	if !e.keep(f, err) {
		return nil
	}
	return cs
}
