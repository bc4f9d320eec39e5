package config

import (
	"strings"

	"github.com/FrenchBear/myglob/pkg/errors"
)

// Output formats accepted by output.format
const (
	FormatAuto = "auto"
	FormatTerm = "term"
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the effective myglob configuration
type Config struct {
	Search SearchConfig `koanf:"search" toml:"search"`
	Output OutputConfig `koanf:"output" toml:"output"`
}

// SearchConfig holds the options passed to the glob builder
type SearchConfig struct {
	Autorecurse     bool     `koanf:"autorecurse" toml:"autorecurse"`
	IgnoreDirs      []string `koanf:"ignore_dirs" toml:"ignore_dirs"`
	ExtraIgnoreDirs []string `koanf:"extra_ignore_dirs" toml:"extra_ignore_dirs"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format     string `koanf:"format" toml:"format"`
	Sort       bool   `koanf:"sort" toml:"sort"`
	ShowErrors bool   `koanf:"show_errors" toml:"show_errors"`
	Styles     string `koanf:"styles" toml:"styles"`
}

// EffectiveIgnoreDirs returns ignore_dirs followed by extra_ignore_dirs,
// without blanks or case-insensitive duplicates
func (c *Config) EffectiveIgnoreDirs() []string {
	seen := make(map[string]bool)
	var names []string
	for _, list := range [][]string{c.Search.IgnoreDirs, c.Search.ExtraIgnoreDirs} {
		for _, name := range list {
			name = strings.TrimSpace(name)
			key := strings.ToLower(name)
			if name == "" || seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, name)
		}
	}
	return names
}

// Validate checks values the decoder cannot check by type alone
func (c *Config) Validate() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case "":
		c.Output.Format = FormatAuto
	case FormatAuto, FormatTerm, FormatText, FormatJSON:
	default:
		return errors.Newf(errors.ErrConfigValid, "invalid output.format %q", c.Output.Format).
			WithDetail("allowed", []string{FormatAuto, FormatTerm, FormatText, FormatJSON})
	}
	return nil
}
