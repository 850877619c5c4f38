package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/gocrs/cmd/internal/cliutil"
	"github.com/golangsnmp/gocrs/wkt"
)

type fmtFlags struct {
	pretty     bool
	indent     string
	separator  string
	space      string
	delimiters string
	write      bool
	list       bool
	output     string
}

func (c *cli) newFmtCmd() *cobra.Command {
	var f fmtFlags
	cmd := &cobra.Command{
		Use:   "fmt [path...]",
		Short: "Reformat WKT",
		Long: `fmt parses each input and prints it in canonical form. Settings
come from the [format] section of the config file; flags override them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := c.formatter(cmd, f)
			if err != nil {
				return err
			}
			files, err := collectFiles(args, DefaultExtensions)
			if err != nil {
				return err
			}
			if f.write && len(args) == 0 {
				return fmt.Errorf("-w needs a file argument")
			}

			out, done, err := cliutil.GetOutput(f.output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer done()

			for _, path := range files {
				root, orig, err := c.parseSource(path)
				if err != nil {
					return err
				}
				text := formatter.Format(root) + "\n"
				switch {
				case f.list:
					if !bytes.Equal(orig, []byte(text)) {
						fmt.Fprintln(out, displayName(path))
					}
				case f.write && path != stdinName:
					if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
						return err
					}
				default:
					fmt.Fprint(out, text)
				}
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&f.pretty, "pretty", "p", false, "one nested element per line")
	flags.StringVar(&f.indent, "indent", "  ", "indent per nesting level (with --pretty)")
	flags.StringVar(&f.separator, "separator", ",", "field separator")
	flags.StringVar(&f.space, "space", "", "whitespace after separators that stay on the line")
	flags.StringVar(&f.delimiters, "delimiters", "keep", "keep, square or round")
	flags.BoolVarP(&f.write, "write", "w", false, "write result back to the source file")
	flags.BoolVarP(&f.list, "list", "l", false, "list files whose formatting differs")
	flags.StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

// formatter layers changed flags over the config file.
func (c *cli) formatter(cmd *cobra.Command, f fmtFlags) (*wkt.Formatter, error) {
	opts := c.config.Format.options()
	changed := cmd.Flags().Changed
	if f.pretty {
		opts = append(opts, wkt.Pretty())
	}
	if changed("indent") {
		opts = append(opts, wkt.WithIndent(f.indent))
	}
	if changed("separator") {
		opts = append(opts, wkt.WithSeparator(f.separator))
	}
	if changed("space") {
		opts = append(opts, wkt.WithSpace(f.space))
	}
	if changed("delimiters") {
		opt, err := delimiterOption(f.delimiters)
		if err != nil {
			return nil, err
		}
		if opt == nil {
			opt = wkt.WithDelimiters(0, 0)
		}
		opts = append(opts, opt)
	}
	return wkt.NewFormatter(opts...), nil
}
