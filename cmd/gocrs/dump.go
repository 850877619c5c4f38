package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/gocrs"
)

func (c *cli) newDumpCmd() *cobra.Command {
	var (
		format  string
		compact bool
		nodes   bool
	)
	cmd := &cobra.Command{
		Use:   "dump [path]",
		Short: "Output the converted coordinate system as JSON or YAML",
		Example: `  gocrs dump nad83.prj
  gocrs dump --format yaml nad83.prj
  gocrs dump --nodes nad83.prj | jq '.[].keyword'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := c.parseOne(args)
			if err != nil {
				return err
			}
			var v any
			if nodes {
				v = buildNodesJSON(root)
			} else {
				cs, err := gocrs.Convert(root, c.options()...)
				if err != nil {
					return err
				}
				v = buildCRSJSON(cs)
			}

			var data []byte
			switch format {
			case "json":
				data, err = marshalJSON(v, !compact)
			case "yaml":
				data, err = yaml.Marshal(v)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("marshal %s: %w", format, err)
			}
			out := cmd.OutOrStdout()
			_, err = out.Write(data)
			if err == nil && format == "json" {
				_, err = fmt.Fprintln(out)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&compact, "compact", false, "minified JSON")
	cmd.Flags().BoolVar(&nodes, "nodes", false, "list parsed tree nodes in traversal order instead")
	return cmd
}
