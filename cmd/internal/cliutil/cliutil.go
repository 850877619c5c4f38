// Package cliutil provides shared CLI utilities for the gocrs command.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// GetOutput opens the output file, or returns stdout for "" and "-".
func GetOutput(outputFile string, stdout io.Writer) (io.Writer, func(), error) {
	if outputFile == "" || outputFile == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// PrintError writes a formatted error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}

// UseColor reports whether output to w should be colored: w must be a
// terminal and neither disabled nor NO_COLOR may be set.
func UseColor(w io.Writer, disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Palette holds the formatting functions for status output.
type Palette struct {
	OK     func(format string, a ...any) string
	Fail   func(format string, a ...any) string
	Warn   func(format string, a ...any) string
	Insert func(format string, a ...any) string
	Delete func(format string, a ...any) string
	Faint  func(format string, a ...any) string
}

// NewPalette returns a colored palette, or plain fmt.Sprintf for every
// role when enabled is false.
func NewPalette(enabled bool) Palette {
	if !enabled {
		return Palette{
			OK:     fmt.Sprintf,
			Fail:   fmt.Sprintf,
			Warn:   fmt.Sprintf,
			Insert: fmt.Sprintf,
			Delete: fmt.Sprintf,
			Faint:  fmt.Sprintf,
		}
	}
	sprintf := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return Palette{
		OK:     sprintf(color.FgGreen),
		Fail:   sprintf(color.FgRed, color.Bold),
		Warn:   sprintf(color.FgYellow),
		Insert: sprintf(color.FgGreen),
		Delete: sprintf(color.FgRed),
		Faint:  sprintf(color.Faint),
	}
}
