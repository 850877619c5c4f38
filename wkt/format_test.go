package wkt

import (
	"strings"
	"testing"
)

const nad83Compact = `GEOGCS["NAD83(HARN)",DATUM["NAD83_High_Accuracy_Regional_Network",SPHEROID["GRS 1980",6378137,298.257222101,AUTHORITY["EPSG","7019"]],TOWGS84[725,685,536,0,0,0,0],AUTHORITY["EPSG","6152"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4152"]]`

const nad83Pretty = `GEOGCS["NAD83(HARN)",
  DATUM["NAD83_High_Accuracy_Regional_Network",
    SPHEROID["GRS 1980",6378137,298.257222101,
      AUTHORITY["EPSG","7019"]],
    TOWGS84[725,685,536,0,0,0,0],
    AUTHORITY["EPSG","6152"]],
  PRIMEM["Greenwich",0,
    AUTHORITY["EPSG","8901"]],
  UNIT["degree",0.0174532925199433,
    AUTHORITY["EPSG","9122"]],
  AUTHORITY["EPSG","4152"]]`

func TestFormatDefault(t *testing.T) {
	if got := Format(nad83()); got != nad83Compact {
		t.Errorf("Format() =\n%s\nwant\n%s", got, nad83Compact)
	}
}

func TestFormatPretty(t *testing.T) {
	if got := Format(nad83(), Pretty()); got != nad83Pretty {
		t.Errorf("Format(Pretty) =\n%s\nwant\n%s", got, nad83Pretty)
	}
}

func TestFormatOptions(t *testing.T) {
	u := &Unit{Element: el("UNIT"), Name: "metre", Factor: 1, Authority: epsg(9001)}

	tests := []struct {
		name string
		opts []FormatOption
		want string
	}{
		{"default", nil, `UNIT["metre",1,AUTHORITY["EPSG","9001"]]`},
		{"space", []FormatOption{WithSpace(" ")}, `UNIT["metre", 1, AUTHORITY["EPSG", "9001"]]`},
		{"separator", []FormatOption{WithSeparator(" ,")}, `UNIT["metre" ,1 ,AUTHORITY["EPSG" ,"9001"]]`},
		{"round", []FormatOption{WithDelimiters('(', ')')}, `UNIT("metre",1,AUTHORITY("EPSG","9001"))`},
		{"newline without indent", []FormatOption{WithNewline("\n")}, "UNIT[\"metre\",1,\nAUTHORITY[\"EPSG\",\"9001\"]]"},
		{"tab indent", []FormatOption{WithNewline("\n"), WithIndent("\t")}, "UNIT[\"metre\",1,\n\tAUTHORITY[\"EPSG\",\"9001\"]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewFormatter(tt.opts...).Format(u); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatKeepsNodeDelimitersAndKeyword(t *testing.T) {
	e := &Ellipsoid{
		Element:           Element{KeywordText: "Ellipsoid", Left: '(', Right: ')', Pos: 0},
		Name:              "WGS 84",
		SemiMajorAxis:     6378137,
		InverseFlattening: 298.257223563,
	}
	want := `Ellipsoid("WGS 84",6378137,298.257223563)`
	if got := Format(e); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatZeroElement(t *testing.T) {
	p := &Parameter{Name: "false_easting", Value: 500000}
	want := `PARAMETER["false_easting",500000]`
	if got := Format(p); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatAuthorityCode(t *testing.T) {
	tests := []struct {
		auth *Authority
		want string
	}{
		{&Authority{Name: "EPSG", Code: 4326}, `AUTHORITY["EPSG","4326"]`},
		{&Authority{Name: "EPSG", Code: 4326, CodeText: "04326"}, `AUTHORITY["EPSG","04326"]`},
		{&Authority{Name: "ESRI", Code: NoCode, CodeText: "abc"}, `AUTHORITY["ESRI","abc"]`},
		{&Authority{Name: "X", Code: NoCode}, `AUTHORITY["X",""]`},
	}
	for _, tt := range tests {
		if got := Format(tt.auth); got != tt.want {
			t.Errorf("Format() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatKeepInside(t *testing.T) {
	g := nad83()
	g.Axes = []*Axis{
		{Element: el("AXIS"), Name: "Lon", Direction: AxisEast},
		{Element: el("AXIS"), Name: "Lat", Direction: AxisNorth},
	}
	g.Datum.ToWgs84.Description = "approx"
	got := Format(g, Pretty())
	for _, want := range []string{
		"\n    TOWGS84[725,685,536,0,0,0,0,\"approx\"],\n",
		"\n  AXIS[\"Lon\",EAST],\n",
		"\n  AXIS[\"Lat\",NORTH],\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format(Pretty) missing %q in\n%s", want, got)
		}
	}
}

func TestFormatNumbers(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{-100.333333333333, "-100.333333333333"},
		{0.304800609601219, "0.304800609601219"},
		{1e21, "1000000000000000000000"},
		{0.02104, "0.02104"},
	}
	for _, tt := range tests {
		p := &Parameter{Name: "v", Value: tt.v}
		want := `PARAMETER["v",` + tt.want + `]`
		if got := Format(p); got != want {
			t.Errorf("Format(%v) = %q, want %q", tt.v, got, want)
		}
	}
}

func TestFormatNil(t *testing.T) {
	var g *GeographicCS
	if got := Format(g); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}
