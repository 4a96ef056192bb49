package config

import (
	"fmt"
	"strings"

	"github.com/dshills/stabilize/internal/engine/block"
)

// Placeholder is replaced by the feature name in Expand.
const Placeholder = "{feature}"

// Config is the complete run configuration.
type Config struct {
	// Root is the source tree the process changes into before running.
	Root    string  `toml:"root"`
	Promote Promote `toml:"promote"`
	Sweep   Sweep   `toml:"sweep"`
}

// Promote configures moving a feature entry into the accepted table.
type Promote struct {
	Enabled bool `toml:"enabled"`
	// File is the feature table, relative to Root.
	File string `toml:"file"`
	// Entry identifies the feature's line; matched literally.
	Entry string `toml:"entry"`
	// Destination marks the accepted table; the entry lands after its
	// last occurrence.
	Destination string `toml:"destination"`
	FromState   string `toml:"from_state"`
	ToState     string `toml:"to_state"`
	// DocLines is how many lines travel with the entry.
	DocLines           int    `toml:"doc_lines"`
	Direction          string `toml:"direction"`
	CollapseBlankLines bool   `toml:"collapse_blank_lines"`
	// Normalizer is an optional Lua script run before the move.
	Normalizer string `toml:"normalizer"`
}

// Sweep configures removing the feature gate from test files.
type Sweep struct {
	Enabled    bool     `toml:"enabled"`
	Dir        string   `toml:"dir"`
	Marker     string   `toml:"marker"`
	KeepGoing  bool     `toml:"keep_going"`
	Ignore     []string `toml:"ignore"`
	SkipBinary bool     `toml:"skip_binary"`
	// SkipVendor skips whatever go-enry classifies as vendored, which
	// includes directories such as extern/ and deps/. Off by default.
	SkipVendor bool `toml:"skip_vendor"`
}

// Default returns the configuration for a rustc checkout next to the
// working directory.
func Default() *Config {
	return &Config{
		Root: "../rust",
		Promote: Promote{
			Enabled:            true,
			File:               "src/libsyntax/feature_gate.rs",
			Entry:              "(active, " + Placeholder + ",",
			Destination:        "(accepted, ",
			FromState:          "(active,",
			ToState:            "(accepted,",
			DocLines:           1,
			Direction:          "above",
			CollapseBlankLines: true,
		},
		Sweep: Sweep{
			Enabled:    true,
			Dir:        "src/test/ui",
			Marker:     "#![feature(" + Placeholder + ")]",
			Ignore:     []string{".git/", "*.stderr"},
			SkipBinary: true,
		},
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Sweep.Ignore = append([]string(nil), c.Sweep.Ignore...)
	return &out
}

// Expand returns a copy of c with every Placeholder replaced by feature.
func (c *Config) Expand(feature string) (*Config, error) {
	if err := ValidateFeature(feature); err != nil {
		return nil, err
	}
	out := c.Clone()
	sub := func(s string) string {
		return strings.ReplaceAll(s, Placeholder, feature)
	}
	out.Promote.Entry = sub(out.Promote.Entry)
	out.Promote.Destination = sub(out.Promote.Destination)
	out.Promote.FromState = sub(out.Promote.FromState)
	out.Promote.ToState = sub(out.Promote.ToState)
	out.Sweep.Marker = sub(out.Sweep.Marker)
	return out, nil
}

// ValidateFeature rejects names that cannot be matched within one line.
func ValidateFeature(feature string) error {
	if strings.TrimSpace(feature) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidFeature)
	}
	if strings.ContainsAny(feature, "\r\n") {
		return fmt.Errorf("%w: %q spans lines", ErrInvalidFeature, feature)
	}
	return nil
}

// ParsedDirection parses Direction.
func (p Promote) ParsedDirection() (block.Direction, error) {
	return block.ParseDirection(p.Direction)
}

// Validate checks the fields used by the enabled workflows.
func (c *Config) Validate() error {
	var problems []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, name+" is empty")
		}
	}

	require("root", c.Root)
	if c.Promote.Enabled {
		require("promote.file", c.Promote.File)
		require("promote.entry", c.Promote.Entry)
		require("promote.destination", c.Promote.Destination)
		require("promote.from_state", c.Promote.FromState)
		require("promote.to_state", c.Promote.ToState)
		if c.Promote.DocLines < 0 {
			problems = append(problems, fmt.Sprintf("promote.doc_lines is negative (%d)", c.Promote.DocLines))
		}
		if _, err := c.Promote.ParsedDirection(); err != nil {
			problems = append(problems, "promote.direction: "+err.Error())
		}
	}
	if c.Sweep.Enabled {
		require("sweep.dir", c.Sweep.Dir)
		require("sweep.marker", c.Sweep.Marker)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
