package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/golangsnmp/gocrs/cmd/internal/cliutil"
	"github.com/golangsnmp/gocrs/wkt"
)

func (c *cli) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff a b",
		Short: "Compare two coordinate systems",
		Long: `diff compares two inputs semantically. Keyword spelling, delimiters,
whitespace and number formatting are ignored. When the systems differ
their pretty renderings are diffed line by line and the exit status is 3.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.parseFile(args[0])
			if err != nil {
				return err
			}
			b, err := c.parseFile(args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if wkt.Equal(a, b) {
				fmt.Fprintln(out, c.palette.OK("equivalent"))
				return nil
			}
			f := wkt.NewFormatter(wkt.Pretty(), wkt.WithDelimiters('[', ']'))
			fmt.Fprintf(out, "--- %s\n+++ %s\n", displayName(args[0]), displayName(args[1]))
			writeLineDiff(out, f.Format(a), f.Format(b), c.palette)
			return exitCode(exitDifferent)
		},
	}
}

// writeLineDiff prints a line-oriented diff of from and to.
func writeLineDiff(w io.Writer, from, to string, p cliutil.Palette) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from+"\n", to+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Fprintln(w, p.Insert("+%s", line))
			case diffmatchpatch.DiffDelete:
				fmt.Fprintln(w, p.Delete("-%s", line))
			default:
				fmt.Fprintf(w, " %s\n", line)
			}
		}
	}
}
