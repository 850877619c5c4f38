// Package build provides the default parser.Builder, which produces the
// wkt tree model.
package build

import (
	"github.com/golangsnmp/gocrs/internal/parser"
	"github.com/golangsnmp/gocrs/wkt"
)

// Tree builds wkt nodes. The zero value is ready to use and holds no
// state, so one Tree may serve concurrent parses.
type Tree struct{}

var _ parser.Builder[wkt.Node] = Tree{}

func element(f parser.Frame) wkt.Element {
	return wkt.Element{KeywordText: f.Keyword, Left: f.Left, Right: f.Right, Pos: f.Offset}
}

// as converts an optional child back to its concrete type. Absent
// children arrive as nil.
func as[T wkt.Node](n wkt.Node) T {
	v, _ := n.(T)
	return v
}

func all[T wkt.Node](ns []wkt.Node) []T {
	if len(ns) == 0 {
		return nil
	}
	out := make([]T, 0, len(ns))
	for _, n := range ns {
		if v, ok := n.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func (Tree) Authority(f parser.Frame, name string, code int, codeText string) wkt.Node {
	return &wkt.Authority{Element: element(f), Name: name, Code: code, CodeText: codeText}
}

func (Tree) Axis(f parser.Frame, name string, direction wkt.AxisDirection) wkt.Node {
	return &wkt.Axis{Element: element(f), Name: name, Direction: direction}
}

func (Tree) ToWgs84(f parser.Frame, v [7]float64, description string) wkt.Node {
	return &wkt.ToWgs84{
		Element:     element(f),
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

func (Tree) Unit(f parser.Frame, name string, factor float64, authority wkt.Node) wkt.Node {
	return &wkt.Unit{
		Element:   element(f),
		Name:      name,
		Factor:    factor,
		Kind:      wkt.UnitKindOf(name),
		Authority: as[*wkt.Authority](authority),
	}
}

func (Tree) Ellipsoid(f parser.Frame, name string, semiMajorAxis, inverseFlattening float64, authority wkt.Node) wkt.Node {
	return &wkt.Ellipsoid{
		Element:           element(f),
		Name:              name,
		SemiMajorAxis:     semiMajorAxis,
		InverseFlattening: inverseFlattening,
		Authority:         as[*wkt.Authority](authority),
	}
}

func (Tree) PrimeMeridian(f parser.Frame, name string, longitude float64, authority wkt.Node) wkt.Node {
	return &wkt.PrimeMeridian{
		Element:   element(f),
		Name:      name,
		Longitude: longitude,
		Authority: as[*wkt.Authority](authority),
	}
}

func (Tree) Datum(f parser.Frame, name string, ellipsoid, toWgs84, authority wkt.Node) wkt.Node {
	return &wkt.Datum{
		Element:   element(f),
		Name:      name,
		Ellipsoid: as[*wkt.Ellipsoid](ellipsoid),
		ToWgs84:   as[*wkt.ToWgs84](toWgs84),
		Authority: as[*wkt.Authority](authority),
	}
}

func (Tree) Projection(f parser.Frame, name string, authority wkt.Node) wkt.Node {
	return &wkt.Projection{Element: element(f), Name: name, Authority: as[*wkt.Authority](authority)}
}

func (Tree) Parameter(f parser.Frame, name string, value float64) wkt.Node {
	return &wkt.Parameter{Element: element(f), Name: name, Value: value}
}

func (Tree) Extension(f parser.Frame, name, value string) wkt.Node {
	return &wkt.Extension{Element: element(f), Name: name, Value: value}
}

func (Tree) GeographicCS(f parser.Frame, name string, datum, primeMeridian, unit wkt.Node, axes []wkt.Node, authority wkt.Node) wkt.Node {
	return &wkt.GeographicCS{
		Element:       element(f),
		Name:          name,
		Datum:         as[*wkt.Datum](datum),
		PrimeMeridian: as[*wkt.PrimeMeridian](primeMeridian),
		Unit:          as[*wkt.Unit](unit),
		Axes:          all[*wkt.Axis](axes),
		Authority:     as[*wkt.Authority](authority),
	}
}

func (Tree) GeocentricCS(f parser.Frame, name string, datum, primeMeridian, unit wkt.Node, axes []wkt.Node, authority wkt.Node) wkt.Node {
	return &wkt.GeocentricCS{
		Element:       element(f),
		Name:          name,
		Datum:         as[*wkt.Datum](datum),
		PrimeMeridian: as[*wkt.PrimeMeridian](primeMeridian),
		Unit:          as[*wkt.Unit](unit),
		Axes:          all[*wkt.Axis](axes),
		Authority:     as[*wkt.Authority](authority),
	}
}

func (Tree) ProjectedCS(f parser.Frame, name string, geographic, projection wkt.Node, parameters []wkt.Node, unit wkt.Node, axes []wkt.Node, extension, authority wkt.Node) wkt.Node {
	return &wkt.ProjectedCS{
		Element:      element(f),
		Name:         name,
		GeographicCS: as[*wkt.GeographicCS](geographic),
		Projection:   as[*wkt.Projection](projection),
		Parameters:   all[*wkt.Parameter](parameters),
		Unit:         as[*wkt.Unit](unit),
		Axes:         all[*wkt.Axis](axes),
		Extension:    as[*wkt.Extension](extension),
		Authority:    as[*wkt.Authority](authority),
	}
}

func (Tree) ParamMT(f parser.Frame, name string, parameters []wkt.Node) wkt.Node {
	return &wkt.ParamMT{Element: element(f), Name: name, Parameters: all[*wkt.Parameter](parameters)}
}

func (Tree) FittedCS(f parser.Frame, name string, toBase, base, authority wkt.Node) wkt.Node {
	return &wkt.FittedCS{
		Element:   element(f),
		Name:      name,
		ToBase:    as[*wkt.ParamMT](toBase),
		Base:      as[*wkt.ProjectedCS](base),
		Authority: as[*wkt.Authority](authority),
	}
}
