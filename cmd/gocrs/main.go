// Command gocrs is a CLI tool for checking, formatting and inspecting
// WKT coordinate reference systems.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/gocrs"
	"github.com/golangsnmp/gocrs/cmd/internal/cliutil"
	"github.com/golangsnmp/gocrs/wkt"
)

// Exit codes.
const (
	exitOK        = 0 // success
	exitError     = 1 // user error or processing failure
	exitInvalid   = 2 // some inputs failed to parse or convert
	exitDifferent = 3 // diff found a semantic difference
)

// exitCode carries a non-zero status out of a command whose output has
// already been written.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

type cli struct {
	verbose    int
	configFile string
	noColor    bool
	strict     bool

	config  fileConfig
	palette cliutil.Palette

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var code exitCode
	if errors.As(err, &code) {
		return int(code)
	}
	cliutil.PrintError(stderr, "%v", err)
	return exitError
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gocrs",
		Short: "WKT coordinate reference system parser and query tool",
		Long: `gocrs parses coordinate reference systems written as OGC well-known text.

Paths may be files or directories; directories are searched for .wkt and
.prj files. With no path, standard input is read.`,
		Example: `  gocrs check testdata/corpus
  gocrs fmt --pretty nad83.prj
  gocrs dump --format yaml nad83.prj
  gocrs diff a.prj b.prj
  gocrs proj --to wgs84.wkt nad83.prj 1640416.67,0`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(c.configFile)
			if err != nil {
				return err
			}
			c.config = cfg
			c.palette = cliutil.NewPalette(cliutil.UseColor(c.stdout, c.noColor))
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.CountVarP(&c.verbose, "verbose", "v", "enable debug logging (-vv for trace)")
	flags.StringVar(&c.configFile, "config", "", "config file (.toml, .yaml or .yml)")
	flags.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&c.strict, "strict", false, "require matching delimiter pairs")

	root.AddCommand(
		c.newCheckCmd(),
		c.newFmtCmd(),
		c.newDumpCmd(),
		c.newDiffCmd(),
		c.newProjCmd(),
		c.newVersionCmd(),
	)
	return root
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = gocrs.LevelTrace
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// options returns the library options selected by flags and config.
func (c *cli) options(extra ...gocrs.Option) []gocrs.Option {
	var opts []gocrs.Option
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, gocrs.WithLogger(logger))
	}
	if c.strict || c.config.Parse.StrictDelimiters {
		opts = append(opts, gocrs.WithStrictDelimiters())
	}
	return append(opts, extra...)
}

// parseFile reads and parses one input.
func (c *cli) parseFile(path string) (wkt.CoordinateSystem, error) {
	root, _, err := c.parseSource(path)
	return root, err
}

// parseSource is parseFile that also returns the bytes read, since
// stdin can only be read once.
func (c *cli) parseSource(path string) (wkt.CoordinateSystem, []byte, error) {
	data, err := readInput(path, c.stdin)
	if err != nil {
		return nil, nil, err
	}
	root, err := gocrs.Parse(data, c.options()...)
	if err != nil {
		return nil, data, inputError(path, err)
	}
	return root, data, nil
}

// inputError prefixes err with the input name. Syntax errors already
// start with line:col, giving the usual path:line:col form.
func inputError(path string, err error) error {
	var se *gocrs.SyntaxError
	if errors.As(err, &se) {
		return fmt.Errorf("%s:%w", displayName(path), err)
	}
	return fmt.Errorf("%s: %w", displayName(path), err)
}

// parseOne collects exactly one input from args.
func (c *cli) parseOne(args []string) (wkt.CoordinateSystem, string, error) {
	files, err := collectFiles(args, DefaultExtensions)
	if err != nil {
		return nil, "", err
	}
	if len(files) != 1 {
		return nil, "", fmt.Errorf("want exactly one input, got %d", len(files))
	}
	root, err := c.parseFile(files[0])
	return root, files[0], err
}

func displayName(path string) string {
	if path == stdinName {
		return "<stdin>"
	}
	return path
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			version := "(devel)"
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				version = info.Main.Version
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gocrs %s\n", version)
		},
	}
}
