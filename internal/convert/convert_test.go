package convert

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"

	"github.com/golangsnmp/gocrs/crs"
	"github.com/golangsnmp/gocrs/internal/build"
	"github.com/golangsnmp/gocrs/internal/parser"
	"github.com/golangsnmp/gocrs/internal/testutil"
	"github.com/golangsnmp/gocrs/wkt"
)

const nad83 = `GEOGCS["NAD83(HARN)", DATUM["NAD83_High_Accuracy_Regional_Network", SPHEROID["GRS 1980", 6378137, 298.257222101, AUTHORITY["EPSG","7019"]], TOWGS84[725,685,536,0,0,0,0], AUTHORITY["EPSG","6152"]], PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]], UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]], AUTHORITY["EPSG","4152"]]`

const nebraska = `PROJCS["NAD83(HARN) / Nebraska (ftUS)",` + nad83 + `,
	PROJECTION["Lambert_Conformal_Conic_2SP"],
	PARAMETER["standard_parallel_1",43],
	PARAMETER["standard_parallel_2",40],
	PARAMETER["latitude_of_origin",39.8333333333333],
	PARAMETER["central_meridian",-100.333333333333],
	PARAMETER["false_easting",1640416.6667],
	UNIT["US survey foot",0.304800609601219,AUTHORITY["EPSG","9003"]],
	AUTHORITY["EPSG","2819"]]`

const fitted = `FITTED_CS["local",
	PARAM_MT["Affine",PARAMETER["num_row",3],PARAMETER["num_col",3],PARAMETER["elt_0_0",2],PARAMETER["elt_0_2",100],PARAMETER["elt_1_2",-50]],
	PROJCS["p",GEOGCS["g",DATUM["d",SPHEROID["s",6378137,298.257223563]],PRIMEM["Greenwich",0]],PROJECTION["Transverse_Mercator"]]]`

func parseTree(t *testing.T, src string) wkt.Node {
	t.Helper()
	n, f := parser.New([]byte(src), parser.Builder[wkt.Node](build.Tree{}), parser.Config{}, nil).Parse()
	if f != nil {
		t.Fatalf("parse failed: %v", f)
	}
	return n
}

// countingFactory records how many objects of each kind are created.
type countingFactory struct {
	crs.DefaultFactory
	calls map[string]int
}

func newCountingFactory() *countingFactory {
	return &countingFactory{calls: make(map[string]int)}
}

func (f *countingFactory) CreateLinearUnit(info crs.Info, m float64) (*crs.LinearUnit, error) {
	f.calls["linear"]++
	return f.DefaultFactory.CreateLinearUnit(info, m)
}

func (f *countingFactory) CreateAngularUnit(info crs.Info, r float64) (*crs.AngularUnit, error) {
	f.calls["angular"]++
	return f.DefaultFactory.CreateAngularUnit(info, r)
}

func (f *countingFactory) CreateEllipsoid(info crs.Info, a, invf float64, u *crs.LinearUnit) (*crs.Ellipsoid, error) {
	f.calls["ellipsoid"]++
	return f.DefaultFactory.CreateEllipsoid(info, a, invf, u)
}

func (f *countingFactory) CreateHorizontalDatum(info crs.Info, e *crs.Ellipsoid, w *crs.Wgs84Parameters) (*crs.HorizontalDatum, error) {
	f.calls["datum"]++
	return f.DefaultFactory.CreateHorizontalDatum(info, e, w)
}

// failingFactory fails datum creation.
type failingFactory struct {
	crs.DefaultFactory
}

var errNoDatum = errors.New("datum rejected")

func (failingFactory) CreateHorizontalDatum(crs.Info, *crs.Ellipsoid, *crs.Wgs84Parameters) (*crs.HorizontalDatum, error) {
	return nil, errNoDatum
}

func TestConvertGeographic(t *testing.T) {
	cs, err := Convert(parseTree(t, nad83), crs.DefaultFactory{}, nil)
	testutil.NoError(t, err, "convert")
	g, ok := cs.(*crs.GeographicCoordinateSystem)
	testutil.True(t, ok, "expected geographic system, got %T", cs)

	testutil.Equal(t, "NAD83(HARN)", g.Name, "name")
	testutil.Equal(t, 4152, g.Code, "code")
	testutil.Equal(t, "EPSG", g.Authority, "authority")
	testutil.Equal(t, 6378137.0, g.HorizontalDatum.Ellipsoid.SemiMajorAxis, "semi-major axis")
	testutil.Equal(t, 298.257222101, g.HorizontalDatum.Ellipsoid.InverseFlattening, "inverse flattening")
	testutil.Equal(t, 7019, g.HorizontalDatum.Ellipsoid.Code, "ellipsoid code")
	testutil.Equal(t, 725.0, g.HorizontalDatum.Wgs84.Dx, "towgs84 dx")
	testutil.Equal(t, 0.0174532925199433, g.AngularUnit.RadiansPerUnit, "angular unit")
	testutil.Equal(t, 9122, g.AngularUnit.Code, "angular unit code")
	testutil.Same(t, g.AngularUnit, g.PrimeMeridian.AngularUnit, "prime meridian shares the GEOGCS unit")
	testutil.Equal(t, "metre", g.HorizontalDatum.Ellipsoid.AxisUnit.Name, "ellipsoid axis unit")

	want := []crs.AxisInfo{{Name: "Lon", Orientation: crs.AxisEast}, {Name: "Lat", Orientation: crs.AxisNorth}}
	if diff := cmp.Diff(want, g.Axes()); diff != "" {
		t.Errorf("default axes mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertProjected(t *testing.T) {
	cs, err := Convert(parseTree(t, nebraska), crs.DefaultFactory{}, nil)
	testutil.NoError(t, err, "convert")
	p, ok := cs.(*crs.ProjectedCoordinateSystem)
	testutil.True(t, ok, "expected projected system, got %T", cs)

	testutil.Equal(t, "US survey foot", p.LinearUnit.Name, "linear unit")
	testutil.Equal(t, 0.304800609601219, p.LinearUnit.MetersPerUnit, "linear unit factor")
	testutil.Equal(t, "Lambert_Conformal_Conic_2SP", p.Projection.Name, "projection")
	testutil.Len(t, p.Projection.Parameters, 5, "parameters")
	cm, ok := p.Projection.Parameter("central_meridian")
	testutil.True(t, ok, "central_meridian present")
	testutil.Equal(t, -100.333333333333, cm, "central_meridian")
	testutil.Equal(t, "standard_parallel_1", p.Projection.Parameters[0].Name, "declaration order")
	testutil.Equal(t, "NAD83(HARN)", p.GeographicCoordinateSystem.Name, "base")
	testutil.Equal(t, 2819, p.Code, "code")

	want := []crs.AxisInfo{{Name: "X", Orientation: crs.AxisEast}, {Name: "Y", Orientation: crs.AxisNorth}}
	if diff := cmp.Diff(want, p.Axes()); diff != "" {
		t.Errorf("default axes mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertDefaults(t *testing.T) {
	geog := `GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0]]`
	cs, err := Convert(parseTree(t, geog), crs.DefaultFactory{}, nil)
	testutil.NoError(t, err, "convert geographic")
	g := cs.(*crs.GeographicCoordinateSystem)
	testutil.Equal(t, crs.RadiansPerDegree, g.AngularUnit.RadiansPerUnit, "default angular unit")
	testutil.Equal(t, 9122, g.AngularUnit.Code, "default angular unit code")
	testutil.Same(t, g.AngularUnit, g.PrimeMeridian.AngularUnit, "default degree is shared")
	testutil.Equal(t, crs.NoCode, g.Code, "no authority")

	cs, err = Convert(parseTree(t, `PROJCS["p",`+geog+`,PROJECTION["Mercator_1SP"]]`), crs.DefaultFactory{}, nil)
	testutil.NoError(t, err, "convert projected")
	p := cs.(*crs.ProjectedCoordinateSystem)
	testutil.Equal(t, "metre", p.LinearUnit.Name, "default linear unit")
	testutil.Equal(t, 1.0, p.LinearUnit.MetersPerUnit, "default linear factor")
	testutil.Same(t, p.LinearUnit, p.GeographicCoordinateSystem.HorizontalDatum.Ellipsoid.AxisUnit, "default metre is shared")
	testutil.Len(t, p.Projection.Parameters, 0, "no parameters")

	cs, err = Convert(parseTree(t, `GEOCCS["c",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0],UNIT["US survey foot",0.3048006]]`), crs.DefaultFactory{}, nil)
	testutil.NoError(t, err, "convert geocentric")
	c := cs.(*crs.GeocentricCoordinateSystem)
	testutil.Equal(t, 0.3048006, c.LinearUnit.MetersPerUnit, "generic unit resolved as linear")
	want := []crs.AxisInfo{
		{Name: "X", Orientation: crs.AxisOther},
		{Name: "Y", Orientation: crs.AxisEast},
		{Name: "Z", Orientation: crs.AxisNorth},
	}
	if diff := cmp.Diff(want, c.Axes()); diff != "" {
		t.Errorf("default geocentric axes mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertExplicitAxes(t *testing.T) {
	src := `GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0],UNIT["grad",0.0157079632679489],AXIS["Lat",NORTH],AXIS["Lon",EAST]]`
	cs, err := Convert(parseTree(t, src), crs.DefaultFactory{}, nil)
	testutil.NoError(t, err, "convert")
	g := cs.(*crs.GeographicCoordinateSystem)
	testutil.Equal(t, "grad", g.AngularUnit.Name, "generic unit resolved as angular")
	want := []crs.AxisInfo{{Name: "Lat", Orientation: crs.AxisNorth}, {Name: "Lon", Orientation: crs.AxisEast}}
	if diff := cmp.Diff(want, g.Axes()); diff != "" {
		t.Errorf("axes mismatch (-want +got):\n%s", diff)
	}
}

func TestFindOrCreateIdentity(t *testing.T) {
	root := parseTree(t, nebraska)
	c := New(root, crs.DefaultFactory{}, nil)

	first, err := c.FindOrCreate(root)
	testutil.NoError(t, err, "first")
	second, err := c.FindOrCreate(root)
	testutil.NoError(t, err, "second")
	p1 := first.(*crs.ProjectedCoordinateSystem)
	p2 := second.(*crs.ProjectedCoordinateSystem)
	testutil.Same(t, p1, p2, "root resolves to the same object")

	tree := root.(*wkt.ProjectedCS)
	datum, err := c.FindOrCreate(tree.GeographicCS.Datum)
	testutil.NoError(t, err, "datum")
	testutil.Same(t, p1.GeographicCoordinateSystem.HorizontalDatum, datum.(*crs.HorizontalDatum), "datum identity")

	unit, err := c.FindOrCreate(tree.Unit)
	testutil.NoError(t, err, "unit")
	testutil.Same(t, p1.LinearUnit, unit.(*crs.LinearUnit), "unit identity")
}

func TestConvertSharedNodes(t *testing.T) {
	tree := parseTree(t, nebraska).(*wkt.ProjectedCS)
	geog := tree.GeographicCS
	geog.Unit = tree.Unit
	geog.Authority = tree.Authority

	distinct := make(map[wkt.Node]bool)
	for n := range wkt.All(tree) {
		distinct[n] = true
	}
	f := newCountingFactory()
	c := New(tree, f, nil)
	testutil.Equal(t, len(distinct), c.Len(), "one entry per distinct node")

	obj, err := c.FindOrCreate(tree)
	testutil.NoError(t, err, "convert")
	p := obj.(*crs.ProjectedCoordinateSystem)
	g := p.GeographicCoordinateSystem

	testutil.Equal(t, "US survey foot", g.AngularUnit.Name, "shared unit as angular")
	testutil.Equal(t, 0.304800609601219, g.AngularUnit.RadiansPerUnit, "angular factor")
	testutil.Equal(t, "US survey foot", p.LinearUnit.Name, "shared unit as linear")
	testutil.Same(t, g.AngularUnit, g.PrimeMeridian.AngularUnit, "prime meridian follows the GEOGCS unit")
	testutil.Equal(t, 2819, g.Code, "shared authority")
	testutil.Equal(t, 2819, p.Code, "shared authority")

	unit, err := c.FindOrCreate(tree.Unit)
	testutil.NoError(t, err, "unit slot")
	testutil.Same(t, g.AngularUnit, unit.(*crs.AngularUnit), "slot keeps the first parent's role")
	linear, err := unitAs[*crs.LinearUnit](c, tree.Unit, wkt.UnitLinear)
	testutil.NoError(t, err, "linear use")
	testutil.Same(t, p.LinearUnit, linear, "linear use is memoized")

	testutil.Equal(t, 1, f.calls["angular"], "angular unit creations")
	testutil.Equal(t, 2, f.calls["linear"], "linear unit creations (default metre and US survey foot)")
}

func TestConvertConstructsOnce(t *testing.T) {
	root := parseTree(t, nebraska)
	f := newCountingFactory()
	c := New(root, f, nil)
	_, err := c.FindOrCreate(root)
	testutil.NoError(t, err, "convert")

	for n := range wkt.All(root) {
		_, err := c.FindOrCreate(n)
		testutil.NoError(t, err, "resolve %s", n.Keyword())
	}
	testutil.Equal(t, 1, f.calls["datum"], "datum creations")
	testutil.Equal(t, 1, f.calls["ellipsoid"], "ellipsoid creations")
	testutil.Equal(t, 1, f.calls["angular"], "angular unit creations")
	testutil.Equal(t, 2, f.calls["linear"], "linear unit creations (default metre and US survey foot)")
	testutil.Equal(t, len(slices.Collect(wkt.All(root))), c.Len(), "table size")
}

func TestFindOrCreateNodes(t *testing.T) {
	root := parseTree(t, nad83).(*wkt.GeographicCS)
	c := New(root, crs.DefaultFactory{}, nil)

	obj, err := c.FindOrCreate(root.Authority)
	testutil.NoError(t, err, "authority")
	testutil.Equal(t, crs.Info{Authority: "EPSG", Code: 4152}, obj.(crs.Info), "authority info")

	obj, err = c.FindOrCreate(nil)
	testutil.NoError(t, err, "nil node")
	testutil.True(t, obj == nil, "nil node resolves to nil")

	var none *wkt.Unit
	obj, err = c.FindOrCreate(none)
	testutil.NoError(t, err, "typed nil node")
	testutil.True(t, obj == nil, "typed nil node resolves to nil")

	other := parseTree(t, nad83)
	_, err = c.FindOrCreate(other)
	testutil.ErrorIs(t, err, ErrForeignNode, "foreign node")
}

func TestFindOrCreateGenericUnit(t *testing.T) {
	unit := &wkt.Unit{Element: wkt.NewElement("UNIT"), Name: "US survey foot", Factor: 0.3048006}
	c := New(unit, crs.DefaultFactory{}, nil)
	obj, err := c.FindOrCreate(unit)
	testutil.NoError(t, err, "unit")
	u, ok := obj.(*crs.Unit)
	testutil.True(t, ok, "unit without context stays generic, got %T", obj)
	testutil.Equal(t, 0.3048006, u.Factor, "factor")

	_, err = Convert(unit, crs.DefaultFactory{}, nil)
	testutil.ErrorIs(t, err, ErrNotCoordinateSystem, "convert on unit")
}

func TestConvertFitted(t *testing.T) {
	cs, err := Convert(parseTree(t, fitted), crs.DefaultFactory{}, nil)
	testutil.NoError(t, err, "convert")
	f := cs.(*crs.FittedCoordinateSystem)
	want := mat.NewDense(3, 3, []float64{
		2, 0, 100,
		0, 1, -50,
		0, 0, 1,
	})
	testutil.True(t, mat.Equal(want, f.ToBase.Matrix), "matrix = %v", mat.Formatted(f.ToBase.Matrix))
	testutil.Equal(t, "Transverse_Mercator", f.Base.Projection.Name, "base projection")

	got, err := f.ToBase.Apply([]float64{1, 1})
	testutil.NoError(t, err, "apply")
	testutil.Equal(t, 102.0, got[0], "x")
	testutil.Equal(t, -49.0, got[1], "y")
}

func TestConvertErrors(t *testing.T) {
	_, err := Convert(parseTree(t, nad83), failingFactory{}, nil)
	testutil.ErrorIs(t, err, errNoDatum, "factory error propagates")

	missing := `FITTED_CS["f",PARAM_MT["Affine",PARAMETER["num_col",3]],PROJCS["p",GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0]],PROJECTION["x"]]]`
	_, err = Convert(parseTree(t, missing), crs.DefaultFactory{}, nil)
	testutil.ErrorIs(t, err, crs.ErrMissingParameter, "missing num_row")
	var pe *crs.ParameterError
	testutil.True(t, errors.As(err, &pe), "ParameterError in chain")
	testutil.Equal(t, "num_row", pe.Parameter, "parameter")
	testutil.Equal(t, "Affine", pe.Transform, "transform")
}

func TestAffineMatrix(t *testing.T) {
	p := func(name string, v float64) crs.ProjectionParameter { return crs.ProjectionParameter{Name: name, Value: v} }
	tests := []struct {
		name   string
		params []crs.ProjectionParameter
		want   *mat.Dense
		err    error
	}{
		{
			name:   "square",
			params: []crs.ProjectionParameter{p("num_row", 2), p("num_col", 2), p("elt_0_1", 3), p("elt_1_0", 4)},
			want:   mat.NewDense(2, 2, []float64{1, 3, 4, 1}),
		},
		{
			name:   "rectangular identity",
			params: []crs.ProjectionParameter{p("num_row", 2), p("num_col", 3)},
			want:   mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0}),
		},
		{
			name:   "out of range and unknown ignored",
			params: []crs.ProjectionParameter{p("num_row", 1), p("num_col", 1), p("elt_1_0", 9), p("elt_0_5", 9), p("scale", 9), p("elt_x_0", 9), p("elt_0", 9)},
			want:   mat.NewDense(1, 1, []float64{1}),
		},
		{
			name:   "four by four",
			params: []crs.ProjectionParameter{p("num_row", 4), p("num_col", 4), p("elt_3_3", 7)},
			want:   mat.NewDense(4, 4, []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 7}),
		},
		{name: "missing row", params: []crs.ProjectionParameter{p("num_col", 2)}, err: crs.ErrMissingParameter},
		{name: "missing col", params: []crs.ProjectionParameter{p("num_row", 2)}, err: crs.ErrMissingParameter},
		{name: "zero rows", params: []crs.ProjectionParameter{p("num_row", 0), p("num_col", 2)}, err: crs.ErrInvalidParameter},
		{name: "negative cols", params: []crs.ProjectionParameter{p("num_row", 2), p("num_col", -1)}, err: crs.ErrInvalidParameter},
		{name: "too large", params: []crs.ProjectionParameter{p("num_row", 5), p("num_col", 2)}, err: crs.ErrInvalidParameter},
		{name: "fractional", params: []crs.ProjectionParameter{p("num_row", 2.5), p("num_col", 2)}, err: crs.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AffineMatrix("Affine", tt.params)
			if tt.err != nil {
				testutil.ErrorIs(t, err, tt.err, "error")
				return
			}
			testutil.NoError(t, err, "AffineMatrix")
			testutil.True(t, mat.Equal(tt.want, got), "matrix = %v", mat.Formatted(got))
		})
	}
}

func TestOrientation(t *testing.T) {
	pairs := map[wkt.AxisDirection]crs.AxisOrientation{
		wkt.AxisOther: crs.AxisOther,
		wkt.AxisNorth: crs.AxisNorth,
		wkt.AxisSouth: crs.AxisSouth,
		wkt.AxisEast:  crs.AxisEast,
		wkt.AxisWest:  crs.AxisWest,
		wkt.AxisUp:    crs.AxisUp,
		wkt.AxisDown:  crs.AxisDown,
	}
	for d, want := range pairs {
		testutil.Equal(t, want, Orientation(d), "Orientation(%s)", d)
	}
}
