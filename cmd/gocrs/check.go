package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/golangsnmp/gocrs"
	"github.com/golangsnmp/gocrs/crs"
	"github.com/golangsnmp/gocrs/wkt"
)

type checkResult struct {
	path string
	root wkt.CoordinateSystem
	cs   crs.CoordinateSystem
	err  error
}

func (c *cli) newCheckCmd() *cobra.Command {
	var (
		parseOnly bool
		quiet     bool
	)
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Parse and convert inputs, reporting errors",
		Long: `check parses every input and converts it to domain objects.
Each input is reported on its own line. The exit status is 2 if any
input failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectFiles(args, DefaultExtensions)
			if err != nil {
				return err
			}
			results := c.checkFiles(files, parseOnly)

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
					fmt.Fprintf(out, "%s %v\n", c.palette.Fail("FAIL"), r.err)
					continue
				}
				if quiet {
					continue
				}
				fmt.Fprintf(out, "%s   %s: %s %q\n", c.palette.OK("ok"),
					displayName(r.path), r.root.Keyword(), r.root.CSName())
			}
			if !quiet {
				fmt.Fprintf(out, "%d checked, %d failed\n", len(results), failed)
			}
			if failed > 0 {
				return exitCode(exitInvalid)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&parseOnly, "parse-only", false, "skip conversion to domain objects")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "report failures only")
	return cmd
}

// checkFiles processes files concurrently; results keep input order.
func (c *cli) checkFiles(files []string, parseOnly bool) []checkResult {
	results := make([]checkResult, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			r := checkResult{path: path}
			r.root, r.err = c.parseFile(path)
			if r.err == nil && !parseOnly {
				r.cs, r.err = gocrs.Convert(r.root, c.options()...)
				if r.err != nil {
					r.err = fmt.Errorf("%s: %w", displayName(path), r.err)
				}
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()
	return results
}
