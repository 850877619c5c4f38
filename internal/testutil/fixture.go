package testutil

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// Fixture is one WKT corpus entry loaded from a txtar archive.
//
// Archive layout:
//
//	-- input.wkt --   source text (required)
//	-- pretty.wkt --  expected pretty-printed rendering (optional)
//	-- error --       expected syntax error substring (optional)
type Fixture struct {
	Name    string
	Comment string
	Input   string
	Pretty  string
	Error   string
}

// LoadCorpus reads every *.txtar file in dir, sorted by name.
func LoadCorpus(t testing.TB, dir string) []Fixture {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
	if err != nil {
		t.Fatalf("glob %s: %v", dir, err)
	}
	slices.Sort(paths)
	if len(paths) == 0 {
		t.Fatalf("no fixtures in %s", dir)
	}

	fixtures := make([]Fixture, 0, len(paths))
	for _, path := range paths {
		ar, err := txtar.ParseFile(path)
		if err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		fx := Fixture{
			Name:    strings.TrimSuffix(filepath.Base(path), ".txtar"),
			Comment: strings.TrimSpace(string(ar.Comment)),
		}
		for _, f := range ar.Files {
			data := strings.TrimRight(string(f.Data), "\n")
			switch f.Name {
			case "input.wkt":
				fx.Input = data
			case "pretty.wkt":
				fx.Pretty = data
			case "error":
				fx.Error = data
			default:
				t.Fatalf("%s: unknown section %q", path, f.Name)
			}
		}
		if fx.Input == "" {
			t.Fatalf("%s: missing input.wkt section", path)
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures
}
