package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/stabilize/internal/project/vfs"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STABILIZE_"

// Load reads the TOML file at path over Default(). An empty path or a
// missing file yields the defaults.
func Load(fsys vfs.FS, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := Parse(path, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg. Keys absent from data leave cfg
// untouched. source is only used in errors.
func Parse(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return newParseError(source, err)
	}
	return nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		first := strict.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = fmt.Sprintf("unknown key %v", first.Key())
		return pe
	}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		pe.Line, pe.Column = decErr.Position()
		pe.Message = decErr.Error()
	}
	return pe
}

// ApplyEnv overrides cfg from STABILIZE_* variables found by lookup:
// ROOT, PROMOTE_FILE, SWEEP_DIR, NORMALIZER, KEEP_GOING, PROMOTE and SWEEP.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"ROOT":         &cfg.Root,
		"PROMOTE_FILE": &cfg.Promote.File,
		"SWEEP_DIR":    &cfg.Sweep.Dir,
		"NORMALIZER":   &cfg.Promote.Normalizer,
	}
	for name, dst := range str {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	flags := map[string]*bool{
		"KEEP_GOING": &cfg.Sweep.KeepGoing,
		"PROMOTE":    &cfg.Promote.Enabled,
		"SWEEP":      &cfg.Sweep.Enabled,
	}
	for name, dst := range flags {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalidConfig, EnvPrefix, name, v)
		}
		*dst = b
	}
	return nil
}
