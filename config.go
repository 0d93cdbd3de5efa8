package pgmap

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config selects which shape families a chain installs.
type Config struct {
	// Families lists family names in resolution order.
	Families []string `yaml:"families"`

	// Validate builds every registry when the chain is created.
	Validate bool `yaml:"validate"`
}

// DefaultConfig enables every family and validates eagerly.
func DefaultConfig() Config {
	families := Families()
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.String()
	}
	return Config{Families: names, Validate: true}
}

// LoadConfig decodes YAML from r over DefaultConfig. Keys absent from the
// document keep their default; an empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if _, err := cfg.ParseFamilies(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseFamilies parses Families, rejecting unknown and duplicate names.
func (c Config) ParseFamilies() ([]Family, error) {
	out := make([]Family, 0, len(c.Families))
	seen := make(map[Family]bool, len(c.Families))
	for _, name := range c.Families {
		f, err := ParseFamily(name)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFamily, f)
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}
