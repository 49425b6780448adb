// Package control opens a downloaded .deb archive and extracts its control
// stanza, so the closure walker can re-parse Depends/Pre-Depends from the
// artifact actually fetched rather than trusting the index blindly (an
// index and the mirror it describes can drift out of sync).
package control

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"strings"

	"github.com/blakesmith/ar"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// Fields holds the subset of the control stanza the closure walker cares
// about: enough to re-derive Depends/Pre-Depends after download.
type Fields struct {
	Package       string
	Version       string
	Architecture  string
	Depends       string
	PreDepends    string
}

// ReadFields opens a .deb (a Unix ar archive containing, among other
// members, a "control.tar.<ext>" member whose top-level "control" file is
// one RFC822 stanza) and returns its control fields.
func ReadFields(r io.Reader) (*Fields, error) {
	arReader := ar.NewReader(r)
	for {
		hdr, err := arReader.Next()
		if err == io.EOF {
			return nil, errors.New("no control.tar member found in .deb archive")
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading ar archive")
		}
		name := strings.TrimPrefix(strings.TrimSpace(hdr.Name), "./")
		if !strings.HasPrefix(name, "control.tar") {
			continue
		}

		body, err := io.ReadAll(arReader)
		if err != nil {
			return nil, errors.Wrap(err, "reading control.tar member")
		}
		return parseControlTar(name, body)
	}
}

func parseControlTar(memberName string, body []byte) (*Fields, error) {
	tr, err := tarReaderFor(memberName, body)
	if err != nil {
		return nil, err
	}

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, errors.New("no control file found inside control.tar")
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading control.tar")
		}
		base := strings.TrimPrefix(hdr.Name, "./")
		if base != "control" {
			continue
		}
		raw, err := io.ReadAll(tr)
		if err != nil {
			return nil, errors.Wrap(err, "reading control file")
		}
		return parseControlStanza(raw)
	}
}

func tarReaderFor(memberName string, body []byte) (*tar.Reader, error) {
	switch {
	case strings.HasSuffix(memberName, ".gz"):
		gz, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, errors.Wrap(err, "opening control.tar.gz")
		}
		return tar.NewReader(gz), nil
	case strings.HasSuffix(memberName, ".xz"):
		xr, err := xz.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, errors.Wrap(err, "opening control.tar.xz")
		}
		return tar.NewReader(xr), nil
	case strings.HasSuffix(memberName, ".zst"):
		zr, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, errors.Wrap(err, "opening control.tar.zst")
		}
		return tar.NewReader(zr.IOReadCloser()), nil
	default: // "control.tar" with no compression suffix
		return tar.NewReader(bytes.NewReader(body)), nil
	}
}

// parseControlStanza parses the same RFC822-style fields as a Packages
// index stanza, but from a single-stanza control file rather than an
// index: continuation lines indented with space/tab append to the most
// recently seen key.
func parseControlStanza(raw []byte) (*Fields, error) {
	values := make(map[string]string)
	var lastKey string

	lines := strings.Split(string(raw), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if lastKey == "" {
				continue
			}
			values[lastKey] += "\n" + strings.TrimLeft(line, " \t")
			continue
		}
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		values[key] = val
		lastKey = key
	}

	if values["Package"] == "" {
		return nil, errors.New("control file missing Package field")
	}

	return &Fields{
		Package:      values["Package"],
		Version:      values["Version"],
		Architecture: values["Architecture"],
		Depends:      values["Depends"],
		PreDepends:   values["Pre-Depends"],
	}, nil
}
