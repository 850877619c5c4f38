package convert

import (
	"fmt"

	"github.com/golangsnmp/gocrs/crs"
	"github.com/golangsnmp/gocrs/wkt"
)

// resolve is FindOrCreate with the result asserted to T. A nil node
// yields the zero T.
func resolve[T any](c *Converter, n wkt.Node) (T, error) {
	var zero T
	obj, err := c.FindOrCreate(n)
	if err != nil || obj == nil {
		return zero, err
	}
	v, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("%s at offset %d: resolved to %T, want %T", n.Keyword(), n.Offset(), obj, zero)
	}
	return v, nil
}

func resolveAll[T any, N wkt.Node](c *Converter, ns []N) ([]T, error) {
	out := make([]T, 0, len(ns))
	for _, n := range ns {
		v, err := resolve[T](c, n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Converter) infoOf(name string, auth *wkt.Authority) (crs.Info, error) {
	if auth == nil {
		return info(name, nil), nil
	}
	a, err := resolve[crs.Info](c, auth)
	if err != nil {
		return crs.Info{}, err
	}
	return info(name, &a), nil
}

// create builds the object for node idx, resolving its children first.
func (c *Converter) create(idx int, n wkt.Node) (any, error) {
	obj, err := c.dispatch(idx, n)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", n.Keyword(), nodeName(n), err)
	}
	return obj, nil
}

func (c *Converter) dispatch(idx int, n wkt.Node) (any, error) {
	switch n := n.(type) {
	case *wkt.Authority:
		return crs.Info{Authority: n.Name, Code: n.Code}, nil
	case *wkt.Axis:
		return crs.AxisInfo{Name: n.Name, Orientation: Orientation(n.Direction)}, nil
	case *wkt.Parameter:
		return crs.ProjectionParameter{Name: n.Name, Value: n.Value}, nil
	case *wkt.Extension:
		return n.Value, nil
	case *wkt.ToWgs84:
		return wgs84(n), nil
	case *wkt.Unit:
		in, err := c.infoOf(n.Name, n.Authority)
		if err != nil {
			return nil, err
		}
		return c.unit(in, n.Factor, n.Kind, c.roles[idx])
	case *wkt.Ellipsoid:
		in, err := c.infoOf(n.Name, n.Authority)
		if err != nil {
			return nil, err
		}
		return c.ellipsoid(in, n.SemiMajorAxis, n.InverseFlattening)
	case *wkt.PrimeMeridian:
		return c.createPrimeMeridian(idx, n)
	case *wkt.Datum:
		return c.createDatum(n)
	case *wkt.Projection:
		return c.createProjection(idx, n)
	case *wkt.GeographicCS:
		return c.createGeographic(n)
	case *wkt.GeocentricCS:
		return c.createGeocentric(n)
	case *wkt.ProjectedCS:
		return c.createProjected(n)
	case *wkt.ParamMT:
		params, err := resolveAll[crs.ProjectionParameter](c, n.Parameters)
		if err != nil {
			return nil, err
		}
		return c.affine(n.Name, params)
	case *wkt.FittedCS:
		return c.createFitted(n)
	}
	return nil, fmt.Errorf("unsupported node %T", n)
}

func nodeName(n wkt.Node) string {
	switch n := n.(type) {
	case *wkt.Authority:
		return n.Name
	case *wkt.Axis:
		return n.Name
	case *wkt.Unit:
		return n.Name
	case *wkt.Ellipsoid:
		return n.Name
	case *wkt.PrimeMeridian:
		return n.Name
	case *wkt.Datum:
		return n.Name
	case *wkt.Projection:
		return n.Name
	case *wkt.Parameter:
		return n.Name
	case *wkt.Extension:
		return n.Name
	case wkt.CoordinateSystem:
		return n.CSName()
	case *wkt.ParamMT:
		return n.Name
	}
	return ""
}

func wgs84(n *wkt.ToWgs84) *crs.Wgs84Parameters {
	return &crs.Wgs84Parameters{
		Dx:          n.Dx,
		Dy:          n.Dy,
		Dz:          n.Dz,
		Ex:          n.Ex,
		Ey:          n.Ey,
		Ez:          n.Ez,
		Ppm:         n.Ppm,
		Description: n.Description,
	}
}

func (c *Converter) createPrimeMeridian(idx int, n *wkt.PrimeMeridian) (*crs.PrimeMeridian, error) {
	in, err := c.infoOf(n.Name, n.Authority)
	if err != nil {
		return nil, err
	}
	var unit *crs.AngularUnit
	if ctx := c.context[idx]; ctx >= 0 {
		u, _ := c.nodes[ctx].(*wkt.Unit)
		if unit, err = unitAs[*crs.AngularUnit](c, u, wkt.UnitAngular); err != nil {
			return nil, err
		}
	}
	return c.primeMeridian(in, n.Longitude, unit)
}

func (c *Converter) createDatum(n *wkt.Datum) (*crs.HorizontalDatum, error) {
	in, err := c.infoOf(n.Name, n.Authority)
	if err != nil {
		return nil, err
	}
	ellps, err := resolve[*crs.Ellipsoid](c, n.Ellipsoid)
	if err != nil {
		return nil, err
	}
	shift, err := resolve[*crs.Wgs84Parameters](c, n.ToWgs84)
	if err != nil {
		return nil, err
	}
	return c.factory.CreateHorizontalDatum(in, ellps, shift)
}

func (c *Converter) createProjection(idx int, n *wkt.Projection) (*crs.Projection, error) {
	in, err := c.infoOf(n.Name, n.Authority)
	if err != nil {
		return nil, err
	}
	params, err := resolveAll[crs.ProjectionParameter](c, c.params[idx])
	if err != nil {
		return nil, err
	}
	return c.factory.CreateProjection(in, params)
}

func (c *Converter) createGeographic(n *wkt.GeographicCS) (*crs.GeographicCoordinateSystem, error) {
	in, err := c.infoOf(n.Name, n.Authority)
	if err != nil {
		return nil, err
	}
	unit, err := unitAs[*crs.AngularUnit](c, n.Unit, wkt.UnitAngular)
	if err != nil {
		return nil, err
	}
	datum, err := resolve[*crs.HorizontalDatum](c, n.Datum)
	if err != nil {
		return nil, err
	}
	pm, err := resolve[*crs.PrimeMeridian](c, n.PrimeMeridian)
	if err != nil {
		return nil, err
	}
	axes, err := resolveAll[crs.AxisInfo](c, n.Axes)
	if err != nil {
		return nil, err
	}
	return c.geographic(in, unit, datum, pm, axes)
}

func (c *Converter) createGeocentric(n *wkt.GeocentricCS) (*crs.GeocentricCoordinateSystem, error) {
	in, err := c.infoOf(n.Name, n.Authority)
	if err != nil {
		return nil, err
	}
	unit, err := unitAs[*crs.LinearUnit](c, n.Unit, wkt.UnitLinear)
	if err != nil {
		return nil, err
	}
	datum, err := resolve[*crs.HorizontalDatum](c, n.Datum)
	if err != nil {
		return nil, err
	}
	pm, err := resolve[*crs.PrimeMeridian](c, n.PrimeMeridian)
	if err != nil {
		return nil, err
	}
	axes, err := resolveAll[crs.AxisInfo](c, n.Axes)
	if err != nil {
		return nil, err
	}
	return c.geocentric(in, unit, datum, pm, axes)
}

func (c *Converter) createProjected(n *wkt.ProjectedCS) (*crs.ProjectedCoordinateSystem, error) {
	in, err := c.infoOf(n.Name, n.Authority)
	if err != nil {
		return nil, err
	}
	geog, err := resolve[*crs.GeographicCoordinateSystem](c, n.GeographicCS)
	if err != nil {
		return nil, err
	}
	proj, err := resolve[*crs.Projection](c, n.Projection)
	if err != nil {
		return nil, err
	}
	unit, err := unitAs[*crs.LinearUnit](c, n.Unit, wkt.UnitLinear)
	if err != nil {
		return nil, err
	}
	axes, err := resolveAll[crs.AxisInfo](c, n.Axes)
	if err != nil {
		return nil, err
	}
	return c.projected(in, geog, proj, unit, axes)
}

func (c *Converter) createFitted(n *wkt.FittedCS) (*crs.FittedCoordinateSystem, error) {
	in, err := c.infoOf(n.Name, n.Authority)
	if err != nil {
		return nil, err
	}
	toBase, err := resolve[*crs.AffineTransform](c, n.ToBase)
	if err != nil {
		return nil, err
	}
	base, err := resolve[*crs.ProjectedCoordinateSystem](c, n.Base)
	if err != nil {
		return nil, err
	}
	return c.factory.CreateFittedCoordinateSystem(in, toBase, base)
}
