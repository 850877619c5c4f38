package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ctessum/geom/proj"
	"github.com/spf13/cobra"

	"github.com/golangsnmp/gocrs"
	"github.com/golangsnmp/gocrs/crs"
	"github.com/golangsnmp/gocrs/projsr"
)

func (c *cli) newProjCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "proj path [x,y...]",
		Short: "Show the proj spatial reference or transform points",
		Long: `proj converts the input to a spatial reference for the proj
library and prints its parameters. With --to, each x,y argument is
transformed from the input system to the target system. Geographic
coordinates are longitude,latitude in degrees.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.loadCRS(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if to == "" {
				if len(args) > 1 {
					return fmt.Errorf("points need --to")
				}
				sr, err := projsr.FromCRS(src)
				if err != nil {
					return err
				}
				writeSR(out, sr)
				return nil
			}

			dst, err := c.loadCRS(to)
			if err != nil {
				return err
			}
			transform, err := projsr.NewTransform(src, dst)
			if err != nil {
				return err
			}
			for _, arg := range args[1:] {
				x, y, err := parsePoint(arg)
				if err != nil {
					return err
				}
				tx, ty, err := transform(x, y)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				fmt.Fprintf(out, "%s,%s\n", formatCoord(tx), formatCoord(ty))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target coordinate system file")
	return cmd
}

func (c *cli) loadCRS(path string) (crs.CoordinateSystem, error) {
	data, err := readInput(path, c.stdin)
	if err != nil {
		return nil, err
	}
	cs, err := gocrs.ParseCRS(data, c.options(gocrs.WithEagerBuild())...)
	if err != nil {
		return nil, inputError(path, err)
	}
	return cs, nil
}

func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("point %q: want x,y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	return x, y, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

const radToDeg = 180 / math.Pi

func writeSR(w io.Writer, sr *proj.SR) {
	row := func(name string, v any) {
		if f, ok := v.(float64); ok {
			if math.IsNaN(f) {
				return
			}
			v = strconv.FormatFloat(f, 'g', -1, 64)
		}
		fmt.Fprintf(w, "%-14s %v\n", name, v)
	}
	angle := func(name string, f float64) {
		if !math.IsNaN(f) {
			row(name, f*radToDeg)
		}
	}
	row("name", sr.Name)
	row("srs", sr.SRSCode)
	row("datum", sr.DatumCode)
	row("ellipsoid", sr.Ellps)
	row("a", sr.A)
	row("b", sr.B)
	row("rf", sr.Rf)
	if len(sr.DatumParams) > 0 {
		row("towgs84", sr.DatumParams)
	}
	angle("lat_0", sr.Lat0)
	angle("lat_1", sr.Lat1)
	angle("lat_2", sr.Lat2)
	angle("lat_ts", sr.LatTS)
	angle("lon_0", sr.Long0)
	angle("lonc", sr.LongC)
	angle("alpha", sr.Alpha)
	row("x_0", sr.X0)
	row("y_0", sr.Y0)
	row("k_0", sr.K0)
	row("to_meter", sr.ToMeter)
	row("units", sr.Units)
}
