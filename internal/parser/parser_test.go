package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/golangsnmp/gocrs/internal/testutil"
	"github.com/golangsnmp/gocrs/wkt"
)

// sexpr renders each element as a compact string so tests can compare
// whole parses at once. Absent optional children are "".
type sexpr struct {
	frames []Frame
}

func (s *sexpr) record(f Frame) { s.frames = append(s.frames, f) }

func opt(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func (s *sexpr) Authority(f Frame, name string, code int, codeText string) string {
	s.record(f)
	return fmt.Sprintf("auth(%s:%d)", name, code)
}

func (s *sexpr) Axis(f Frame, name string, dir wkt.AxisDirection) string {
	s.record(f)
	return fmt.Sprintf("axis(%s %s)", name, dir)
}

func (s *sexpr) ToWgs84(f Frame, v [7]float64, desc string) string {
	s.record(f)
	return fmt.Sprintf("towgs84(%v %q)", v, desc)
}

func (s *sexpr) Unit(f Frame, name string, factor float64, auth string) string {
	s.record(f)
	return fmt.Sprintf("unit(%s %v %s)", name, factor, opt(auth))
}

func (s *sexpr) Ellipsoid(f Frame, name string, a, invf float64, auth string) string {
	s.record(f)
	return fmt.Sprintf("%s(%s %v %v %s)", strings.ToLower(f.Keyword), name, a, invf, opt(auth))
}

func (s *sexpr) PrimeMeridian(f Frame, name string, lon float64, auth string) string {
	s.record(f)
	return fmt.Sprintf("primem(%s %v %s)", name, lon, opt(auth))
}

func (s *sexpr) Datum(f Frame, name string, ellipsoid, shift, auth string) string {
	s.record(f)
	return fmt.Sprintf("datum(%s %s %s %s)", name, ellipsoid, opt(shift), opt(auth))
}

func (s *sexpr) Projection(f Frame, name string, auth string) string {
	s.record(f)
	return fmt.Sprintf("projection(%s %s)", name, opt(auth))
}

func (s *sexpr) Parameter(f Frame, name string, value float64) string {
	s.record(f)
	return fmt.Sprintf("%s=%v", name, value)
}

func (s *sexpr) Extension(f Frame, name, value string) string {
	s.record(f)
	return fmt.Sprintf("ext(%s %s)", name, value)
}

func (s *sexpr) GeographicCS(f Frame, name string, datum, pm, unit string, axes []string, auth string) string {
	s.record(f)
	return fmt.Sprintf("geogcs(%s %s %s %s [%s] %s)", name, datum, pm, opt(unit), strings.Join(axes, " "), opt(auth))
}

func (s *sexpr) GeocentricCS(f Frame, name string, datum, pm, unit string, axes []string, auth string) string {
	s.record(f)
	return fmt.Sprintf("geoccs(%s %s %s %s [%s] %s)", name, datum, pm, unit, strings.Join(axes, " "), opt(auth))
}

func (s *sexpr) ProjectedCS(f Frame, name string, geog, proj string, params []string, unit string, axes []string, ext, auth string) string {
	s.record(f)
	return fmt.Sprintf("projcs(%s %s %s [%s] %s [%s] %s %s)", name, geog, proj,
		strings.Join(params, " "), opt(unit), strings.Join(axes, " "), opt(ext), opt(auth))
}

func (s *sexpr) ParamMT(f Frame, name string, params []string) string {
	s.record(f)
	return fmt.Sprintf("param_mt(%s [%s])", name, strings.Join(params, " "))
}

func (s *sexpr) FittedCS(f Frame, name string, toBase, base, auth string) string {
	s.record(f)
	return fmt.Sprintf("fitted(%s %s %s %s)", name, toBase, base, opt(auth))
}

func parse(t *testing.T, src string, config Config) (string, *Failure, *sexpr) {
	t.Helper()
	b := &sexpr{}
	p := New([]byte(src), Builder[string](b), config, nil)
	n, f := p.Parse()
	return n, f, b
}

func mustParse(t *testing.T, src string) string {
	t.Helper()
	n, f, _ := parse(t, src, Config{})
	if f != nil {
		t.Fatalf("Parse(%q) failed: %v", src, f)
	}
	return n
}

const nad83 = `GEOGCS["NAD83(HARN)", DATUM["NAD83_High_Accuracy_Regional_Network", SPHEROID["GRS 1980", 6378137, 298.257222101, AUTHORITY["EPSG","7019"]], TOWGS84[725,685,536,0,0,0,0], AUTHORITY["EPSG","6152"]], PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]], UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]], AUTHORITY["EPSG","4152"]]`

const nad83Parsed = "geogcs(NAD83(HARN) " +
	"datum(NAD83_High_Accuracy_Regional_Network spheroid(GRS 1980 6.378137e+06 298.257222101 auth(EPSG:7019)) " +
	"towgs84([725 685 536 0 0 0 0] \"\") auth(EPSG:6152)) " +
	"primem(Greenwich 0 auth(EPSG:8901)) " +
	"unit(degree 0.0174532925199433 auth(EPSG:9122)) [] auth(EPSG:4152))"

func TestParseGeographic(t *testing.T) {
	testutil.Equal(t, nad83Parsed, mustParse(t, nad83), "parse result")
}

func TestParseGeographicMinimal(t *testing.T) {
	src := `GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0]]`
	want := "geogcs(g datum(d spheroid(s 1 2 -) - -) primem(p 0 -) - [] -)"
	testutil.Equal(t, want, mustParse(t, src), "parse result")
}

func TestParseGeographicAxes(t *testing.T) {
	src := `GEOGCS["g",DATUM["d",ELLIPSOID["s",1,2]],PRIMEM["p",0],AXIS["Lat",north],AXIS["Lon",East],AUTHORITY["EPSG",4326]]`
	want := "geogcs(g datum(d ellipsoid(s 1 2 -) - -) primem(p 0 -) - [axis(Lat NORTH) axis(Lon EAST)] auth(EPSG:4326))"
	testutil.Equal(t, want, mustParse(t, src), "parse result")
}

const lccParams = `PARAMETER["standard_parallel_1",43.6666666666667],PARAMETER["standard_parallel_2",42.1666666666667],PARAMETER["latitude_of_origin",41.6666666666667],PARAMETER["central_meridian",-100.333333333333],PARAMETER["false_easting",1640416.667]`

func TestParseProjected(t *testing.T) {
	src := `PROJCS["NAD83(HARN) / Nebraska (ftUS)",` + nad83 + `,PROJECTION["Lambert_Conformal_Conic_2SP"],` + lccParams +
		`,UNIT["US survey foot",0.304800609601219,AUTHORITY["EPSG","9003"]],AXIS["X",EAST],AXIS["Y",NORTH],EXTENSION["PROJ4","+proj=lcc"],AUTHORITY["EPSG","2819"]]`
	want := "projcs(NAD83(HARN) / Nebraska (ftUS) " + nad83Parsed + " projection(Lambert_Conformal_Conic_2SP -) " +
		"[standard_parallel_1=43.6666666666667 standard_parallel_2=42.1666666666667 latitude_of_origin=41.6666666666667 central_meridian=-100.333333333333 false_easting=1.640416667e+06] " +
		"unit(US survey foot 0.304800609601219 auth(EPSG:9003)) [axis(X EAST) axis(Y NORTH)] ext(PROJ4 +proj=lcc) auth(EPSG:2819))"
	testutil.Equal(t, want, mustParse(t, src), "parse result")
}

func TestParseProjectedUnitBeforeProjection(t *testing.T) {
	geog := `GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0]]`
	src := `PROJCS["p",` + geog + `,UNIT["metre",1],PROJECTION["Mercator_1SP"],PARAMETER["k",1]]`
	want := "projcs(p geogcs(g datum(d spheroid(s 1 2 -) - -) primem(p 0 -) - [] -) projection(Mercator_1SP -) [k=1] unit(metre 1 -) [] - -)"
	testutil.Equal(t, want, mustParse(t, src), "parse result")

	_, f, _ := parse(t, `PROJCS["p",`+geog+`,UNIT["metre",1],PROJECTION["Mercator_1SP"],UNIT["metre",1]]`, Config{})
	testutil.NotNil(t, f, "second UNIT after PROJECTION must be rejected")
}

func TestParseGeocentric(t *testing.T) {
	for _, kw := range []string{"GEOCCS", "GEOCS", "geoccs"} {
		src := kw + `["c",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0],UNIT["metre",1],AXIS["X",OTHER],AXIS["Y",EAST],AXIS["Z",NORTH]]`
		want := "geoccs(c datum(d spheroid(s 1 2 -) - -) primem(p 0 -) unit(metre 1 -) [axis(X OTHER) axis(Y EAST) axis(Z NORTH)] -)"
		testutil.Equal(t, want, mustParse(t, src), "parse result for %s", kw)
	}

	_, f, _ := parse(t, `GEOCCS["c",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0]]`, Config{})
	testutil.NotNil(t, f, "GEOCCS without UNIT must fail")
}

func TestParseFitted(t *testing.T) {
	geog := `GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0]]`
	proj := `PROJCS["p",` + geog + `,PROJECTION["Transverse_Mercator"]]`
	src := `FITTED_CS["f",PARAM_MT["Affine",PARAMETER["num_row",3],PARAMETER["num_col",3],PARAMETER["elt_0_2",10]],` + proj + `,AUTHORITY["X","1"]]`
	got := mustParse(t, src)
	testutil.True(t, strings.HasPrefix(got, "fitted(f param_mt(Affine [num_row=3 num_col=3 elt_0_2=10]) projcs(p "), "got %s", got)
	testutil.True(t, strings.HasSuffix(got, " auth(X:1))"), "got %s", got)
}

func TestParseToWgs84Description(t *testing.T) {
	src := `GEOGCS["g",DATUM["d",SPHEROID["s",1,2],TOWGS84[-1.5,+2,3e1,0,0,0,1.2,"approx"]],PRIMEM["p",0]]`
	got := mustParse(t, src)
	testutil.Contains(t, got, `towgs84([-1.5 2 30 0 0 0 1.2] "approx")`, "towgs84")
}

func TestParseAuthorityCodes(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{`"4326"`, "auth(EPSG:4326)"},
		{`4326`, "auth(EPSG:4326)"},
		{`"abc"`, "auth(EPSG:-1)"},
		{`""`, "auth(EPSG:-1)"},
		{`-5`, "auth(EPSG:-1)"},
		{`4.5`, "auth(EPSG:-1)"},
		{`"99999999999"`, "auth(EPSG:-1)"},
	}
	for _, tt := range tests {
		src := `GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0],AUTHORITY["EPSG",` + tt.code + `]]`
		testutil.Contains(t, mustParse(t, src), tt.want, "code %s", tt.code)
	}
}

func TestParseFrames(t *testing.T) {
	src := `geogcs("g", Datum("d", SPHEROID["s",1,2)], primem["p",0])`
	_, f, b := parse(t, src, Config{})
	testutil.Nil(t, f, "lenient parse")
	testutil.Len(t, b.frames, 4, "frames")

	sph := b.frames[0]
	testutil.Equal(t, "SPHEROID", sph.Keyword, "spheroid keyword")
	testutil.Equal(t, byte('['), sph.Left, "spheroid left")
	testutil.Equal(t, byte(')'), sph.Right, "spheroid right")
	testutil.Equal(t, strings.Index(src, "SPHEROID"), sph.Offset, "spheroid offset")

	datum := b.frames[1]
	testutil.Equal(t, "Datum", datum.Keyword, "datum keyword keeps spelling")
	testutil.Equal(t, byte('('), datum.Left, "datum left")
	testutil.Equal(t, byte(']'), datum.Right, "datum right")

	root := b.frames[3]
	testutil.Equal(t, "geogcs", root.Keyword, "root keyword")
	testutil.Equal(t, 0, root.Offset, "root offset")
}

func TestParseStrictDelimiters(t *testing.T) {
	mismatched := `GEOGCS["g",DATUM["d",SPHEROID["s",1,2)],PRIMEM["p",0]]`
	_, f, _ := parse(t, mismatched, Config{})
	testutil.Nil(t, f, "lenient parse accepts mismatched delimiters")

	_, f, _ = parse(t, mismatched, Config{StrictDelimiters: true})
	testutil.NotNil(t, f, "strict parse rejects mismatched delimiters")
	if f != nil {
		testutil.Equal(t, strings.Index(mismatched, ")"), f.Offset, "failure offset")
		testutil.ContainsElem(t, f.Expected, "']'", "expected set")
	}

	matched := `GEOGCS("g",DATUM("d",SPHEROID("s",1,2)),PRIMEM["p",0])`
	_, f, _ = parse(t, matched, Config{StrictDelimiters: true})
	testutil.Nil(t, f, "strict parse accepts matched delimiters")
}

func TestParseDelimiterInvariance(t *testing.T) {
	square := mustParse(t, nad83)
	round := strings.NewReplacer("[", "(", "]", ")").Replace(nad83)
	testutil.Equal(t, square, mustParse(t, round), "square and round delimiters")
}

func TestParseFailures(t *testing.T) {
	unterminated := `PROJCS["X", GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0]]`
	tests := []struct {
		name     string
		src      string
		offset   int
		expected []string
		found    string
		message  string
	}{
		{
			name:     "empty",
			src:      "",
			offset:   0,
			expected: []string{"PROJCS", "GEOGCS", "GEOCCS", "GEOCS", "FITTED_CS"},
			found:    "end of input",
		},
		{
			name:     "unknown root",
			src:      `POINT(1 2)`,
			offset:   0,
			expected: []string{"PROJCS", "GEOGCS", "GEOCCS", "GEOCS", "FITTED_CS"},
			found:    `"POINT"`,
		},
		{
			name:     "unterminated bracket",
			src:      unterminated,
			offset:   len(unterminated),
			expected: []string{"','"},
			found:    "end of input",
		},
		{
			name:     "missing prime meridian",
			src:      `GEOGCS["g",DATUM["d",SPHEROID["s",1,2]]]`,
			offset:   len(`GEOGCS["g",DATUM["d",SPHEROID["s",1,2]]`),
			expected: []string{"','"},
			found:    `"]"`,
		},
		{
			name:     "bad number",
			src:      `GEOGCS["g",DATUM["d",SPHEROID["s",x,2]],PRIMEM["p",0]]`,
			offset:   len(`GEOGCS["g",DATUM["d",SPHEROID["s",`),
			expected: []string{"number"},
			found:    `"x"`,
		},
		{
			name:     "bad axis direction",
			src:      `GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0],AXIS["a",LEFT]]`,
			offset:   len(`GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0],AXIS["a",`),
			expected: []string{"OTHER", "NORTH", "SOUTH", "EAST", "WEST", "UP", "DOWN"},
			found:    `"LEFT"`,
		},
		{
			name:     "trailing input",
			src:      `GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0]] extra`,
			offset:   len(`GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0]] `),
			expected: []string{"end of input"},
			found:    `"extra"`,
		},
		{
			name:     "unterminated name",
			src:      `GEOGCS["g`,
			offset:   len(`GEOGCS[`),
			expected: []string{"quoted name"},
			found:    `"\"g"`,
			message:  "unterminated quoted name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, f, _ := parse(t, tt.src, Config{})
			if f == nil {
				t.Fatalf("Parse(%q) succeeded, want failure", tt.src)
			}
			testutil.Equal(t, tt.offset, f.Offset, "offset")
			for _, e := range tt.expected {
				testutil.ContainsElem(t, f.Expected, e, "expected set %v", f.Expected)
			}
			testutil.Equal(t, tt.found, f.Found, "found")
			testutil.Equal(t, tt.message, f.Message, "message")
		})
	}
}

func TestFailureError(t *testing.T) {
	f := &Failure{Offset: 3, Expected: []string{"','", "']'"}, Found: `"x"`}
	testutil.Equal(t, `expected ',' or ']', found "x"`, f.Error(), "error text")

	f = &Failure{Found: "end of input", Message: "unterminated quoted name"}
	testutil.Equal(t, "unterminated quoted name: found end of input", f.Error(), "error text")
}

func TestJoinExpected(t *testing.T) {
	testutil.Equal(t, "", JoinExpected(nil), "empty")
	testutil.Equal(t, "a", JoinExpected([]string{"a"}), "one")
	testutil.Equal(t, "a or b", JoinExpected([]string{"a", "b"}), "two")
	testutil.Equal(t, "a, b or c", JoinExpected([]string{"a", "b", "c"}), "three")
}

func TestParseNoPartialResult(t *testing.T) {
	n, f, _ := parse(t, `PROJCS["X", GEOGCS["g",DATUM["d",SPHEROID["s",1,2]],PRIMEM["p",0]]`, Config{})
	testutil.NotNil(t, f, "failure")
	testutil.Equal(t, "", n, "no partial result on failure")
}
