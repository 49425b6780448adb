// Package report renders a resolved closure as TOML: a deterministic,
// purely diagnostic record of a completed run, never required for a
// closure to be considered complete.
package report

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/BigBIueWhale/debclose/internal/apt"
)

// Entry is one resolved package in a run's closure report.
type Entry struct {
	Name     string `toml:"name"`
	Version  string `toml:"version"`
	Arch     string `toml:"arch"`
	Filename string `toml:"filename"`
}

// Document is the top-level shape written to --report.
type Document struct {
	Package []Entry `toml:"package"`
}

// Write renders recs (in the order the closure walk resolved them) as
// TOML at path.
func Write(path string, recs []*apt.PackageRecord) error {
	doc := Document{Package: make([]Entry, 0, len(recs))}
	for _, r := range recs {
		doc.Package = append(doc.Package, Entry{
			Name:     r.Name,
			Version:  r.Version,
			Arch:     r.Arch,
			Filename: r.Filename,
		})
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshaling report")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing report file %s", path)
	}
	return nil
}
