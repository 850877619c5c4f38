package main

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the file extensions recognized as WKT files
// when walking a directory. Files named explicitly are always read.
var DefaultExtensions = []string{".wkt", ".prj"}

// stdinName stands for standard input in path arguments.
const stdinName = "-"

// collectFiles expands args into file paths. Files are kept as given;
// directories are walked recursively for files with one of exts.
// No arguments means standard input.
func collectFiles(args []string, exts []string) ([]string, error) {
	if len(args) == 0 {
		return []string{stdinName}, nil
	}
	extSet := makeExtensionSet(exts)
	var files []string
	for _, arg := range args {
		if arg == stdinName {
			files = append(files, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasValidExtension(path, extSet) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		slices.Sort(found)
		files = append(files, found...)
	}
	return files, nil
}

// readInput reads a file, or stdin for "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdinName {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func makeExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func hasValidExtension(path string, extSet map[string]struct{}) bool {
	_, ok := extSet[strings.ToLower(filepath.Ext(path))]
	return ok
}
