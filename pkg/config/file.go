package config

import (
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/comparator/pkg/errors"
)

// File is the TOML form of a Config. Zero values mean "use the default".
type File struct {
	States   *int          `toml:"states,omitempty"`
	Target   []int         `toml:"target,omitempty"`
	Goal     string        `toml:"goal,omitempty"`
	Families []string      `toml:"families,omitempty"`
	Workers  int           `toml:"workers,omitempty"`
	Search   SearchFile    `toml:"search"`
	Progress *ProgressFile `toml:"progress,omitempty"`
}

// SearchFile is the [search] table.
type SearchFile struct {
	MaxDepth      int    `toml:"max_depth,omitempty"`
	CacheCapacity int    `toml:"cache_capacity,omitempty"`
	MaxExpansions int64  `toml:"max_expansions,omitempty"`
	Timeout       string `toml:"timeout,omitempty"` // time.ParseDuration syntax, e.g. "30s"
}

// ProgressFile is the [progress] table.
type ProgressFile struct {
	Initial  bool `toml:"initial"`
	Generate bool `toml:"generate"`
	Build    bool `toml:"build"`
}

// DefaultFile returns an empty File; every value takes its default in New.
func DefaultFile() File {
	return File{}
}

// Load decodes a TOML configuration from r.
// Unknown keys are rejected so that typos do not silently fall back to defaults.
func Load(r io.Reader) (File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := checkUndecoded(md); err != nil {
		return File{}, err
	}
	return f, nil
}

// LoadFile decodes the TOML configuration at path.
func LoadFile(path string) (File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if err := checkUndecoded(md); err != nil {
		return File{}, err
	}
	return f, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(names, ", "))
}

// Write encodes f as TOML to w.
func (f File) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}
