package crs

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestDefaultFactoryBuildsObjects(t *testing.T) {
	var f DefaultFactory
	metre, err := f.CreateLinearUnit(MetreInfo, 1)
	if err != nil {
		t.Fatalf("CreateLinearUnit: %v", err)
	}
	degree, err := f.CreateAngularUnit(DegreeInfo, RadiansPerDegree)
	if err != nil {
		t.Fatalf("CreateAngularUnit: %v", err)
	}
	ellps, err := f.CreateEllipsoid(Info{Name: "GRS 1980", Code: NoCode}, 6378137, 298.257222101, metre)
	if err != nil {
		t.Fatalf("CreateEllipsoid: %v", err)
	}
	datum, err := f.CreateHorizontalDatum(Info{Name: "NAD83", Code: NoCode}, ellps, &Wgs84Parameters{})
	if err != nil {
		t.Fatalf("CreateHorizontalDatum: %v", err)
	}
	pm, err := f.CreatePrimeMeridian(Info{Name: "Greenwich", Code: NoCode}, 0, degree)
	if err != nil {
		t.Fatalf("CreatePrimeMeridian: %v", err)
	}
	geog, err := f.CreateGeographicCoordinateSystem(Info{Name: "NAD83", Code: NoCode}, degree, datum, pm,
		AxisInfo{"Lon", AxisEast}, AxisInfo{"Lat", AxisNorth})
	if err != nil {
		t.Fatalf("CreateGeographicCoordinateSystem: %v", err)
	}
	if geog.HorizontalDatum != datum || geog.AngularUnit != degree || geog.PrimeMeridian != pm {
		t.Error("geographic system does not reference its components")
	}
	if len(geog.Axes()) != 2 || geog.Axes()[1].Name != "Lat" {
		t.Errorf("Axes() = %v", geog.Axes())
	}

	proj, err := f.CreateProjection(Info{Name: "Transverse_Mercator", Code: NoCode}, nil)
	if err != nil {
		t.Fatalf("CreateProjection: %v", err)
	}
	pcs, err := f.CreateProjectedCoordinateSystem(Info{Name: "UTM", Code: NoCode}, geog, proj, metre,
		AxisInfo{"X", AxisEast}, AxisInfo{"Y", AxisNorth})
	if err != nil {
		t.Fatalf("CreateProjectedCoordinateSystem: %v", err)
	}

	matrix := Identity(3)
	affine, err := f.CreateAffineTransform("Affine", matrix)
	if err != nil {
		t.Fatalf("CreateAffineTransform: %v", err)
	}
	matrix.Set(0, 0, 5)
	if affine.Matrix.At(0, 0) != 1 {
		t.Error("CreateAffineTransform retained the caller's matrix")
	}
	fitted, err := f.CreateFittedCoordinateSystem(Info{Name: "fit", Code: NoCode}, affine, pcs)
	if err != nil {
		t.Fatalf("CreateFittedCoordinateSystem: %v", err)
	}
	if fitted.Axes()[0].Name != "X" {
		t.Errorf("fitted Axes() = %v", fitted.Axes())
	}

	geoc, err := f.CreateGeocentricCoordinateSystem(Info{Name: "ECEF", Code: NoCode}, metre, datum, pm,
		[]AxisInfo{{"X", AxisOther}, {"Y", AxisEast}, {"Z", AxisNorth}})
	if err != nil {
		t.Fatalf("CreateGeocentricCoordinateSystem: %v", err)
	}
	if len(geoc.Axes()) != 3 {
		t.Errorf("geocentric Axes() = %v", geoc.Axes())
	}
	var _ CoordinateSystem = geoc
}

func TestDefaultFactoryRejects(t *testing.T) {
	var f DefaultFactory
	metre := &LinearUnit{Info: MetreInfo, MetersPerUnit: 1}
	degree := &AngularUnit{Info: DegreeInfo, RadiansPerUnit: RadiansPerDegree}
	tests := []struct {
		name    string
		call    func() error
		missing bool
	}{
		{"nan unit", func() error { _, err := f.CreateUnit(Info{}, math.NaN()); return err }, false},
		{"inf linear unit", func() error { _, err := f.CreateLinearUnit(Info{}, math.Inf(1)); return err }, false},
		{"ellipsoid without unit", func() error { _, err := f.CreateEllipsoid(Info{}, 1, 2, nil); return err }, true},
		{"prime meridian without unit", func() error { _, err := f.CreatePrimeMeridian(Info{}, 0, nil); return err }, true},
		{"datum without ellipsoid", func() error { _, err := f.CreateHorizontalDatum(Info{}, nil, nil); return err }, true},
		{"geographic without datum", func() error {
			_, err := f.CreateGeographicCoordinateSystem(Info{}, degree, nil, &PrimeMeridian{}, AxisInfo{}, AxisInfo{})
			return err
		}, true},
		{"geocentric without unit", func() error {
			_, err := f.CreateGeocentricCoordinateSystem(Info{}, nil, &HorizontalDatum{}, &PrimeMeridian{}, nil)
			return err
		}, true},
		{"projected without projection", func() error {
			_, err := f.CreateProjectedCoordinateSystem(Info{}, &GeographicCoordinateSystem{}, nil, metre, AxisInfo{}, AxisInfo{})
			return err
		}, true},
		{"affine without matrix", func() error { _, err := f.CreateAffineTransform("a", nil); return err }, true},
		{"affine too large", func() error { _, err := f.CreateAffineTransform("a", mat.NewDense(5, 5, nil)); return err }, false},
		{"fitted without base", func() error {
			_, err := f.CreateFittedCoordinateSystem(Info{}, &AffineTransform{}, nil)
			return err
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrMissingComponent); got != tt.missing {
				t.Errorf("errors.Is(%v, ErrMissingComponent) = %v, want %v", err, got, tt.missing)
			}
		})
	}
}
