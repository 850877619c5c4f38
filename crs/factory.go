package crs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Factory constructs domain objects. Conversion calls it once for every
// object it needs; implementations may validate, intern or wrap.
type Factory interface {
	CreateUnit(info Info, factor float64) (*Unit, error)
	CreateLinearUnit(info Info, metersPerUnit float64) (*LinearUnit, error)
	CreateAngularUnit(info Info, radiansPerUnit float64) (*AngularUnit, error)
	CreateEllipsoid(info Info, semiMajorAxis, inverseFlattening float64, unit *LinearUnit) (*Ellipsoid, error)
	CreatePrimeMeridian(info Info, longitude float64, unit *AngularUnit) (*PrimeMeridian, error)
	CreateHorizontalDatum(info Info, ellipsoid *Ellipsoid, toWgs84 *Wgs84Parameters) (*HorizontalDatum, error)
	CreateProjection(info Info, parameters []ProjectionParameter) (*Projection, error)
	CreateGeographicCoordinateSystem(info Info, angularUnit *AngularUnit, datum *HorizontalDatum,
		primeMeridian *PrimeMeridian, axis0, axis1 AxisInfo) (*GeographicCoordinateSystem, error)
	CreateGeocentricCoordinateSystem(info Info, linearUnit *LinearUnit, datum *HorizontalDatum,
		primeMeridian *PrimeMeridian, axes []AxisInfo) (*GeocentricCoordinateSystem, error)
	CreateProjectedCoordinateSystem(info Info, geographic *GeographicCoordinateSystem, projection *Projection,
		linearUnit *LinearUnit, axis0, axis1 AxisInfo) (*ProjectedCoordinateSystem, error)
	CreateAffineTransform(name string, matrix *mat.Dense) (*AffineTransform, error)
	CreateFittedCoordinateSystem(info Info, toBase *AffineTransform, base *ProjectedCoordinateSystem) (*FittedCoordinateSystem, error)
}

// RadiansPerDegree is the factor of the default angular unit.
const RadiansPerDegree = 0.0174532925199433

var (
	// DegreeInfo identifies the default angular unit.
	DegreeInfo = Info{Name: "degree", Authority: "EPSG", Code: 9122}
	// MetreInfo identifies the default linear unit.
	MetreInfo = Info{Name: "metre", Authority: "EPSG", Code: 9001}
)

// DefaultFactory builds plain domain objects, rejecting nil required
// components and non-finite numbers. The zero value is ready to use.
type DefaultFactory struct{}

var _ Factory = DefaultFactory{}

func missing(kind, component string) error {
	return fmt.Errorf("%s: %w: %s", kind, ErrMissingComponent, component)
}

func finite(kind, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %s is not finite", kind, field)
	}
	return nil
}

func (DefaultFactory) CreateUnit(info Info, factor float64) (*Unit, error) {
	if err := finite("unit", "factor", factor); err != nil {
		return nil, err
	}
	return &Unit{Info: info, Factor: factor}, nil
}

func (DefaultFactory) CreateLinearUnit(info Info, metersPerUnit float64) (*LinearUnit, error) {
	if err := finite("linear unit", "factor", metersPerUnit); err != nil {
		return nil, err
	}
	return &LinearUnit{Info: info, MetersPerUnit: metersPerUnit}, nil
}

func (DefaultFactory) CreateAngularUnit(info Info, radiansPerUnit float64) (*AngularUnit, error) {
	if err := finite("angular unit", "factor", radiansPerUnit); err != nil {
		return nil, err
	}
	return &AngularUnit{Info: info, RadiansPerUnit: radiansPerUnit}, nil
}

func (DefaultFactory) CreateEllipsoid(info Info, semiMajorAxis, inverseFlattening float64, unit *LinearUnit) (*Ellipsoid, error) {
	if err := finite("ellipsoid", "semi-major axis", semiMajorAxis); err != nil {
		return nil, err
	}
	if err := finite("ellipsoid", "inverse flattening", inverseFlattening); err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, missing("ellipsoid", "axis unit")
	}
	return &Ellipsoid{Info: info, SemiMajorAxis: semiMajorAxis, InverseFlattening: inverseFlattening, AxisUnit: unit}, nil
}

func (DefaultFactory) CreatePrimeMeridian(info Info, longitude float64, unit *AngularUnit) (*PrimeMeridian, error) {
	if err := finite("prime meridian", "longitude", longitude); err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, missing("prime meridian", "angular unit")
	}
	return &PrimeMeridian{Info: info, Longitude: longitude, AngularUnit: unit}, nil
}

func (DefaultFactory) CreateHorizontalDatum(info Info, ellipsoid *Ellipsoid, toWgs84 *Wgs84Parameters) (*HorizontalDatum, error) {
	if ellipsoid == nil {
		return nil, missing("datum", "ellipsoid")
	}
	return &HorizontalDatum{Info: info, Ellipsoid: ellipsoid, Wgs84: toWgs84}, nil
}

func (DefaultFactory) CreateProjection(info Info, parameters []ProjectionParameter) (*Projection, error) {
	return &Projection{Info: info, Parameters: parameters}, nil
}

func (DefaultFactory) CreateGeographicCoordinateSystem(info Info, angularUnit *AngularUnit, datum *HorizontalDatum,
	primeMeridian *PrimeMeridian, axis0, axis1 AxisInfo) (*GeographicCoordinateSystem, error) {
	switch {
	case angularUnit == nil:
		return nil, missing("geographic coordinate system", "angular unit")
	case datum == nil:
		return nil, missing("geographic coordinate system", "datum")
	case primeMeridian == nil:
		return nil, missing("geographic coordinate system", "prime meridian")
	}
	return &GeographicCoordinateSystem{
		Info:            info,
		AngularUnit:     angularUnit,
		HorizontalDatum: datum,
		PrimeMeridian:   primeMeridian,
		AxisInfo:        []AxisInfo{axis0, axis1},
	}, nil
}

func (DefaultFactory) CreateGeocentricCoordinateSystem(info Info, linearUnit *LinearUnit, datum *HorizontalDatum,
	primeMeridian *PrimeMeridian, axes []AxisInfo) (*GeocentricCoordinateSystem, error) {
	switch {
	case linearUnit == nil:
		return nil, missing("geocentric coordinate system", "linear unit")
	case datum == nil:
		return nil, missing("geocentric coordinate system", "datum")
	case primeMeridian == nil:
		return nil, missing("geocentric coordinate system", "prime meridian")
	}
	return &GeocentricCoordinateSystem{
		Info:            info,
		LinearUnit:      linearUnit,
		HorizontalDatum: datum,
		PrimeMeridian:   primeMeridian,
		AxisInfo:        append([]AxisInfo(nil), axes...),
	}, nil
}

func (DefaultFactory) CreateProjectedCoordinateSystem(info Info, geographic *GeographicCoordinateSystem, projection *Projection,
	linearUnit *LinearUnit, axis0, axis1 AxisInfo) (*ProjectedCoordinateSystem, error) {
	switch {
	case geographic == nil:
		return nil, missing("projected coordinate system", "geographic coordinate system")
	case projection == nil:
		return nil, missing("projected coordinate system", "projection")
	case linearUnit == nil:
		return nil, missing("projected coordinate system", "linear unit")
	}
	return &ProjectedCoordinateSystem{
		Info:                       info,
		GeographicCoordinateSystem: geographic,
		Projection:                 projection,
		LinearUnit:                 linearUnit,
		AxisInfo:                   []AxisInfo{axis0, axis1},
	}, nil
}

func (DefaultFactory) CreateAffineTransform(name string, matrix *mat.Dense) (*AffineTransform, error) {
	if matrix == nil {
		return nil, missing("affine transform", "matrix")
	}
	rows, cols := matrix.Dims()
	if rows > MaxAffineDimension || cols > MaxAffineDimension {
		return nil, fmt.Errorf("affine transform %s: %dx%d exceeds %dx%d", name, rows, cols, MaxAffineDimension, MaxAffineDimension)
	}
	return &AffineTransform{Name: name, Matrix: mat.DenseCopyOf(matrix)}, nil
}

func (DefaultFactory) CreateFittedCoordinateSystem(info Info, toBase *AffineTransform, base *ProjectedCoordinateSystem) (*FittedCoordinateSystem, error) {
	switch {
	case toBase == nil:
		return nil, missing("fitted coordinate system", "transform")
	case base == nil:
		return nil, missing("fitted coordinate system", "base coordinate system")
	}
	return &FittedCoordinateSystem{Info: info, ToBase: toBase, Base: base}, nil
}
