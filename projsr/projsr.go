// Package projsr adapts converted coordinate systems to the spatial
// references of github.com/ctessum/geom/proj, which supplies the
// projection math.
package projsr

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ctessum/geom/proj"

	"github.com/golangsnmp/gocrs/crs"
)

// ErrUnsupported is returned for coordinate systems or projection
// parameters that have no proj.SR equivalent.
var ErrUnsupported = errors.New("unsupported by proj")

// longlat is the proj name of an unprojected geographic system.
const longlat = "longlat"

// FromCRS builds a spatial reference for a geographic or projected
// coordinate system. Angles are converted to radians using the
// geographic system's angular unit, and false easting/northing to
// metres using the projected system's linear unit.
func FromCRS(cs crs.CoordinateSystem) (*proj.SR, error) {
	sr := proj.NewSR()
	switch cs := cs.(type) {
	case *crs.GeographicCoordinateSystem:
		sr.Name = longlat
		if err := geographic(sr, cs); err != nil {
			return nil, err
		}
		sr.ToMeter = cs.AngularUnit.RadiansPerUnit * sr.A
	case *crs.ProjectedCoordinateSystem:
		if cs.Projection == nil || cs.GeographicCoordinateSystem == nil {
			return nil, fmt.Errorf("%s: %w", cs.Name, crs.ErrMissingComponent)
		}
		sr.Name = cs.Projection.Name
		if err := geographic(sr, cs.GeographicCoordinateSystem); err != nil {
			return nil, err
		}
		sr.SRSCode = cs.Name
		toRadians := cs.GeographicCoordinateSystem.AngularUnit.RadiansPerUnit
		for _, p := range cs.Projection.Parameters {
			if err := parameter(sr, p, toRadians); err != nil {
				return nil, fmt.Errorf("%s: %w", cs.Name, err)
			}
		}
		if cs.LinearUnit != nil {
			sr.ToMeter = cs.LinearUnit.MetersPerUnit
			sr.Units = unitName(cs.LinearUnit.Name)
		}
		sr.X0 *= sr.ToMeter
		sr.Y0 *= sr.ToMeter
		if math.IsNaN(sr.Lat0) {
			sr.Lat0 = sr.Lat1
		}
	case nil:
		return nil, fmt.Errorf("nil coordinate system: %w", crs.ErrMissingComponent)
	default:
		return nil, fmt.Errorf("%T: %w", cs, ErrUnsupported)
	}
	sr.DeriveConstants()
	return sr, nil
}

func geographic(sr *proj.SR, cs *crs.GeographicCoordinateSystem) error {
	if cs.HorizontalDatum == nil || cs.HorizontalDatum.Ellipsoid == nil ||
		cs.AngularUnit == nil || cs.PrimeMeridian == nil {
		return fmt.Errorf("%s: %w", cs.Name, crs.ErrMissingComponent)
	}
	if sr.SRSCode == "" {
		sr.SRSCode = cs.Name
	}
	datum := cs.HorizontalDatum
	sr.DatumCode = DatumCode(datum.Name)
	if w := datum.Wgs84; w != nil {
		sr.DatumParams = []float64{w.Dx, w.Dy, w.Dz}
		if w.HasRotation() {
			sr.DatumParams = append(sr.DatumParams, w.Ex, w.Ey, w.Ez, w.Ppm)
		}
	}

	ellps := datum.Ellipsoid
	sr.Ellps = ellps.Name
	sr.A = ellps.SemiMajorAxis
	if ellps.AxisUnit != nil {
		sr.A *= ellps.AxisUnit.MetersPerUnit
	}
	sr.Rf = ellps.InverseFlattening

	pm := cs.PrimeMeridian
	sr.FromGreenwich = pm.Longitude * cs.AngularUnit.RadiansPerUnit
	if pm.AngularUnit != nil {
		sr.FromGreenwich = pm.Longitude * pm.AngularUnit.RadiansPerUnit
	}
	sr.Units = unitName(cs.AngularUnit.Name)
	return nil
}

// parameter sets the SR field for one projection parameter. Angular
// values are scaled by toRadians.
func parameter(sr *proj.SR, p crs.ProjectionParameter, toRadians float64) error {
	v := p.Value
	switch strings.ToLower(p.Name) {
	case "standard_parallel_1":
		sr.Lat1 = v * toRadians
	case "standard_parallel_2":
		sr.Lat2 = v * toRadians
	case "latitude_of_origin", "central_parallel", "latitude_of_center":
		sr.Lat0 = v * toRadians
	case "latitude_of_true_scale":
		sr.LatTS = v * toRadians
	case "central_meridian":
		sr.Long0 = v * toRadians
	case "longitude_of_center":
		sr.LongC = v * toRadians
	case "azimuth":
		sr.Alpha = v * toRadians
	case "false_easting":
		sr.X0 = v
	case "false_northing":
		sr.Y0 = v
	case "scale_factor":
		sr.K0 = v
	case "auxiliary_sphere_type", "rectified_grid_angle":
	default:
		return &crs.ParameterError{Transform: sr.Name, Parameter: p.Name, Value: v, Err: ErrUnsupported}
	}
	return nil
}

// DatumCode maps a WKT datum name to the code proj uses to look up
// built-in datum definitions.
func DatumCode(name string) string {
	code := strings.ToLower(name)
	code = strings.TrimPrefix(code, "d_")
	code = strings.TrimSuffix(code, "_ferro")
	code = strings.TrimSuffix(code, "_jakarta")
	switch {
	case code == "wgs_1984":
		return "wgs84"
	case code == "new_zealand_geodetic_datum_1949", code == "new_zealand_1949":
		return "nzgd49"
	case strings.Contains(code, "osgb_1936"):
		return "osgb36"
	case strings.Contains(code, "belge"):
		return "rnb72"
	}
	return code
}

func unitName(name string) string {
	u := strings.ToLower(name)
	if u == "metre" {
		return "meter"
	}
	return u
}

// Transformers returns the forward and inverse projection functions
// for cs. Forward maps longitude and latitude in radians to metres.
func Transformers(cs crs.CoordinateSystem) (forward, inverse proj.Transformer, err error) {
	sr, err := FromCRS(cs)
	if err != nil {
		return nil, nil, err
	}
	return sr.Transformers()
}

// NewTransform returns a function that transforms points from src to
// dst. Geographic coordinates are in degrees, projected coordinates in
// the projected system's linear unit.
func NewTransform(src, dst crs.CoordinateSystem) (proj.Transformer, error) {
	from, err := FromCRS(src)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	to, err := FromCRS(dst)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	return from.NewTransform(to)
}
