package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/gocrs/wkt"
)

// fileConfig is the --config file layout. TOML example:
//
//	[format]
//	pretty = true
//	indent = "    "
//	delimiters = "round"
//
//	[parse]
//	strict_delimiters = true
type fileConfig struct {
	Format formatSection `toml:"format" yaml:"format"`
	Parse  parseSection  `toml:"parse" yaml:"parse"`
}

// formatSection fields are pointers so that an absent key leaves the
// formatter default in place.
type formatSection struct {
	Pretty     *bool   `toml:"pretty" yaml:"pretty"`
	Newline    *string `toml:"newline" yaml:"newline"`
	Indent     *string `toml:"indent" yaml:"indent"`
	Separator  *string `toml:"separator" yaml:"separator"`
	Space      *string `toml:"space" yaml:"space"`
	Delimiters string  `toml:"delimiters" yaml:"delimiters"`
}

type parseSection struct {
	StrictDelimiters bool `toml:"strict_delimiters" yaml:"strict_delimiters"`
}

// loadConfig reads a TOML or YAML config file, chosen by extension.
// An empty path yields the zero config.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%s: unknown config format (want .toml, .yaml or .yml)", path)
	}
	if _, err := delimiterOption(cfg.Format.Delimiters); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// options converts the section into formatter options.
func (s formatSection) options() []wkt.FormatOption {
	var opts []wkt.FormatOption
	if s.Pretty != nil && *s.Pretty {
		opts = append(opts, wkt.Pretty())
	}
	if s.Newline != nil {
		opts = append(opts, wkt.WithNewline(*s.Newline))
	}
	if s.Indent != nil {
		opts = append(opts, wkt.WithIndent(*s.Indent))
	}
	if s.Separator != nil {
		opts = append(opts, wkt.WithSeparator(*s.Separator))
	}
	if s.Space != nil {
		opts = append(opts, wkt.WithSpace(*s.Space))
	}
	if opt, _ := delimiterOption(s.Delimiters); opt != nil {
		opts = append(opts, opt)
	}
	return opts
}

// delimiterOption maps keep, square and round to a formatter option.
// keep and the empty string return a nil option.
func delimiterOption(mode string) (wkt.FormatOption, error) {
	switch strings.ToLower(mode) {
	case "", "keep":
		return nil, nil
	case "square":
		return wkt.WithDelimiters('[', ']'), nil
	case "round":
		return wkt.WithDelimiters('(', ')'), nil
	default:
		return nil, fmt.Errorf("unknown delimiters %q (want keep, square or round)", mode)
	}
}
