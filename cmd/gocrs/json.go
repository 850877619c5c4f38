package main

import (
	"encoding/json"

	"gonum.org/v1/gonum/mat"

	"github.com/golangsnmp/gocrs/crs"
	"github.com/golangsnmp/gocrs/wkt"
)

// CRSJSON is the serializable form of a converted coordinate system.
type CRSJSON struct {
	Kind          string             `json:"kind" yaml:"kind"`
	Name          string             `json:"name" yaml:"name"`
	Authority     string             `json:"authority,omitempty" yaml:"authority,omitempty"`
	Code          int                `json:"code,omitempty" yaml:"code,omitempty"`
	Unit          *UnitJSON          `json:"unit,omitempty" yaml:"unit,omitempty"`
	Datum         *DatumJSON         `json:"datum,omitempty" yaml:"datum,omitempty"`
	PrimeMeridian *PrimeMeridianJSON `json:"primeMeridian,omitempty" yaml:"primeMeridian,omitempty"`
	Projection    *ProjectionJSON    `json:"projection,omitempty" yaml:"projection,omitempty"`
	Axes          []AxisJSON         `json:"axes,omitempty" yaml:"axes,omitempty"`
	ToBase        [][]float64        `json:"toBase,omitempty" yaml:"toBase,omitempty"`
	Base          *CRSJSON           `json:"base,omitempty" yaml:"base,omitempty"`
}

// UnitJSON holds a unit and its conversion factor to metres or radians.
type UnitJSON struct {
	Name   string  `json:"name" yaml:"name"`
	Code   int     `json:"code,omitempty" yaml:"code,omitempty"`
	Factor float64 `json:"factor" yaml:"factor"`
}

// DatumJSON holds a horizontal datum.
type DatumJSON struct {
	Name              string    `json:"name" yaml:"name"`
	Code              int       `json:"code,omitempty" yaml:"code,omitempty"`
	Ellipsoid         string    `json:"ellipsoid" yaml:"ellipsoid"`
	SemiMajorAxis     float64   `json:"semiMajorAxis" yaml:"semiMajorAxis"`
	InverseFlattening float64   `json:"inverseFlattening" yaml:"inverseFlattening"`
	ToWgs84           []float64 `json:"toWgs84,omitempty" yaml:"toWgs84,omitempty"`
}

// PrimeMeridianJSON holds a prime meridian.
type PrimeMeridianJSON struct {
	Name      string  `json:"name" yaml:"name"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// ProjectionJSON holds a projection and its parameters in order.
type ProjectionJSON struct {
	Name       string          `json:"name" yaml:"name"`
	Parameters []ParameterJSON `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// ParameterJSON holds one projection parameter.
type ParameterJSON struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// AxisJSON holds one axis.
type AxisJSON struct {
	Name        string `json:"name" yaml:"name"`
	Orientation string `json:"orientation" yaml:"orientation"`
}

// NodeJSON is one tree node in traversal order.
type NodeJSON struct {
	Offset  int    `json:"offset" yaml:"offset"`
	Keyword string `json:"keyword" yaml:"keyword"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
}

func code(i crs.Info) int {
	if i.Code == crs.NoCode {
		return 0
	}
	return i.Code
}

func buildCRSJSON(cs crs.CoordinateSystem) *CRSJSON {
	info := cs.CSInfo()
	out := &CRSJSON{Name: info.Name, Authority: info.Authority, Code: code(info)}
	for _, a := range cs.Axes() {
		out.Axes = append(out.Axes, AxisJSON{Name: a.Name, Orientation: a.Orientation.String()})
	}
	switch cs := cs.(type) {
	case *crs.GeographicCoordinateSystem:
		out.Kind = "geographic"
		if u := cs.AngularUnit; u != nil {
			out.Unit = &UnitJSON{Name: u.Name, Code: code(u.Info), Factor: u.RadiansPerUnit}
		}
		out.Datum = buildDatumJSON(cs.HorizontalDatum)
		out.PrimeMeridian = buildPrimeMeridianJSON(cs.PrimeMeridian)
	case *crs.GeocentricCoordinateSystem:
		out.Kind = "geocentric"
		if u := cs.LinearUnit; u != nil {
			out.Unit = &UnitJSON{Name: u.Name, Code: code(u.Info), Factor: u.MetersPerUnit}
		}
		out.Datum = buildDatumJSON(cs.HorizontalDatum)
		out.PrimeMeridian = buildPrimeMeridianJSON(cs.PrimeMeridian)
	case *crs.ProjectedCoordinateSystem:
		out.Kind = "projected"
		if u := cs.LinearUnit; u != nil {
			out.Unit = &UnitJSON{Name: u.Name, Code: code(u.Info), Factor: u.MetersPerUnit}
		}
		if p := cs.Projection; p != nil {
			out.Projection = &ProjectionJSON{Name: p.Name}
			for _, param := range p.Parameters {
				out.Projection.Parameters = append(out.Projection.Parameters,
					ParameterJSON{Name: param.Name, Value: param.Value})
			}
		}
		if cs.GeographicCoordinateSystem != nil {
			out.Base = buildCRSJSON(cs.GeographicCoordinateSystem)
		}
	case *crs.FittedCoordinateSystem:
		out.Kind = "fitted"
		out.Axes = nil
		if cs.ToBase != nil {
			out.ToBase = matrixRows(cs.ToBase.Matrix)
		}
		if cs.Base != nil {
			out.Base = buildCRSJSON(cs.Base)
		}
	}
	return out
}

func buildDatumJSON(d *crs.HorizontalDatum) *DatumJSON {
	if d == nil {
		return nil
	}
	out := &DatumJSON{Name: d.Name, Code: code(d.Info)}
	if e := d.Ellipsoid; e != nil {
		out.Ellipsoid = e.Name
		out.SemiMajorAxis = e.SemiMajorAxis
		out.InverseFlattening = e.InverseFlattening
	}
	if w := d.Wgs84; w != nil {
		out.ToWgs84 = []float64{w.Dx, w.Dy, w.Dz, w.Ex, w.Ey, w.Ez, w.Ppm}
	}
	return out
}

func buildPrimeMeridianJSON(pm *crs.PrimeMeridian) *PrimeMeridianJSON {
	if pm == nil {
		return nil
	}
	return &PrimeMeridianJSON{Name: pm.Name, Longitude: pm.Longitude}
}

func matrixRows(m *mat.Dense) [][]float64 {
	if m == nil {
		return nil
	}
	r, _ := m.Dims()
	rows := make([][]float64, r)
	for i := range r {
		rows[i] = mat.Row(nil, i, m)
	}
	return rows
}

// buildNodesJSON lists the tree in post-order.
func buildNodesJSON(root wkt.Node) []NodeJSON {
	var nodes []NodeJSON
	for n := range wkt.All(root) {
		nodes = append(nodes, NodeJSON{Offset: n.Offset(), Keyword: n.Keyword(), Name: nodeName(n)})
	}
	return nodes
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
	case *wkt.ParamMT:
		return n.Name
	case wkt.CoordinateSystem:
		return n.CSName()
	}
	return ""
}

func marshalJSON(v any, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
