// Package config loads the optional debclose.toml defaults file: base
// URLs, a package list, and the index/output directories. CLI flags
// always take precedence over values loaded from file.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// File is the shape of an optional debclose.toml.
type File struct {
	BaseURL []string `toml:"base-url"`
	Packages []string `toml:"packages"`
	IndexDir string   `toml:"index-dir"`
	OutDir   string   `toml:"out-dir"`
}

// Load reads and parses path. A missing file is not an error: it returns
// a zero-value File so callers can fall through to built-in defaults.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	return &f, nil
}
