// Package fetch materializes a .deb file locally from an ordered list of
// mirror base URLs, with memoization across runs via a plain existence
// check.
package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	shutil "github.com/termie/go-shutil"

	"github.com/BigBIueWhale/debclose/internal/apt"
	"github.com/BigBIueWhale/debclose/internal/dlog"
)

// Fetcher downloads .deb artifacts into a flat local directory, trying
// each of a fixed, ordered list of mirror base URLs per artifact.
type Fetcher struct {
	Dir      string
	BaseURLs []string
	Client   *http.Client
	Log      *dlog.Logger
}

// New returns a Fetcher rooted at dir, trying baseURLs in order.
func New(dir string, baseURLs []string, log *dlog.Logger) *Fetcher {
	return &Fetcher{
		Dir:      dir,
		BaseURLs: baseURLs,
		Client:   &http.Client{Timeout: 2 * time.Minute},
		Log:      log,
	}
}

// LocalPath returns the path the record's artifact would be materialized
// at: DOWNLOAD_DIR/basename(record.Filename).
func (f *Fetcher) LocalPath(rec *apt.PackageRecord) string {
	return filepath.Join(f.Dir, filepath.Base(rec.Filename))
}

// Fetch materializes rec's .deb locally. If the local file already
// exists this is a no-op (idempotent across runs). It tries each base
// URL in order; on any transport/HTTP error it logs and continues to
// the next. If every base URL fails, it raises a FetchFailureError
// naming the relative path and every URL tried.
func (f *Fetcher) Fetch(ctx context.Context, rec *apt.PackageRecord) (string, error) {
	local := f.LocalPath(rec)
	if _, err := os.Stat(local); err == nil {
		f.Log.Tracef("| already have %s", local)
		return local, nil
	}

	relPath := strings.TrimPrefix(rec.Filename, "/")

	var attempts []string
	for _, base := range f.BaseURLs {
		url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(relPath, "/")
		if err := f.fetchOne(ctx, url, local); err != nil {
			f.Log.Tracef("| fetch %s failed: %v", url, err)
			attempts = append(attempts, err.Error())
			continue
		}
		return local, nil
	}

	return "", &apt.FetchFailureError{RelPath: relPath, BaseURLs: f.BaseURLs, Attempts: attempts}
}

func (f *Fetcher) fetchOne(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return errors.Wrap(err, "performing request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("unexpected status %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Wrap(err, "creating download directory")
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "writing response body")
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "closing temp file")
	}

	// Rename into place; the temp file sits beside the destination, but if
	// os.Rename still fails, fall back to a copy.
	if err := os.Rename(tmp, dest); err != nil {
		if cerr := shutil.CopyFile(tmp, dest, false); cerr != nil {
			os.Remove(tmp)
			return errors.Wrap(cerr, "copying temp file into place")
		}
		os.Remove(tmp)
	}

	return nil
}
