// Package fetch downloads the flatc compiler from the flatbuffers releases.
package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/simonhull/firebird-suite/wren/internal/logger"
)

// ErrEntryNotFound is returned when the archive does not contain the binary.
var ErrEntryNotFound = errors.New("archive entry not found")

// maxArchiveSize bounds how much of a response body is buffered.
const maxArchiveSize = 256 << 20

// Fetcher downloads and unpacks flatc.
type Fetcher struct {
	client *http.Client
	url    string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default retrying client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithURL downloads from url instead of the platform's release archive.
// The archive member name still comes from the platform.
func WithURL(url string) Option {
	return func(f *Fetcher) {
		f.url = url
	}
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = NewHTTPClient()
	}
	return f
}

// Download fetches the archive for p and extracts the flatc binary to dest,
// replacing any existing file, with execute permission for the owner.
func (f *Fetcher) Download(ctx context.Context, p Platform, dest string) error {
	release, err := p.Release()
	if err != nil {
		return err
	}

	url := release.URL
	if f.url != "" {
		url = f.url
	}

	logger.Default().Info("downloading flatc", logger.F("url", url), logger.F("dest", dest))

	archive, err := f.get(ctx, url)
	if err != nil {
		return err
	}

	return extract(archive, release.Entry, dest)
}

// Ensure downloads flatc to dest unless a file is already there. It reports
// whether a download happened.
func (f *Fetcher) Ensure(ctx context.Context, p Platform, dest string) (bool, error) {
	if _, err := os.Stat(dest); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", dest, err)
	}

	if err := f.Download(ctx, p, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("downloading %s: archive larger than %d bytes", url, maxArchiveSize)
	}
	return data, nil
}

// extract writes the archive member named entry to dest. Members are matched
// on their base name so archives that nest the binary in a folder still work.
func extract(archive []byte, entry, dest string) error {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	var member *zip.File
	for _, zf := range zr.File {
		if zf.Name == entry {
			member = zf
			break
		}
		if member == nil && !zf.FileInfo().IsDir() && path.Base(zf.Name) == entry {
			member = zf
		}
	}
	if member == nil {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, entry)
	}

	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", member.Name, err)
	}
	defer rc.Close()

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	// Staged next to dest; dest only ever holds a complete binary.
	tmp, err := os.CreateTemp(dir, ".flatc-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		return fmt.Errorf("extracting %s: %w", member.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	mode := member.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	if err := os.Chmod(tmp.Name(), mode|0100); err != nil {
		return fmt.Errorf("setting execute permission: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("installing %s: %w", dest, err)
	}
	return nil
}
