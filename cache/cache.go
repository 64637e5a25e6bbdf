// Package cache provides a read-through page cache for fetched HTML,
// implemented as a vikinglink.Fetcher decorator over an afero
// filesystem.
package cache

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"github.com/streamplay/vikinglink"
)

// Ensure Fetcher implements vikinglink.Fetcher at compile time.
var _ vikinglink.Fetcher = (*Fetcher)(nil)

// Fetcher serves page bodies from a directory of cached files, falling
// back to the wrapped fetcher on a miss and storing its result. Entries
// are keyed by a hash of the URL and never expire; viking file pages
// are immutable for the lifetime of a file ID.
type Fetcher struct {
	next vikinglink.Fetcher
	fs   afero.Fs
	dir  string
}

// NewFetcher creates a caching fetcher around next, storing bodies
// under dir on the given filesystem.
func NewFetcher(next vikinglink.Fetcher, fs afero.Fs, dir string) *Fetcher {
	return &Fetcher{next: next, fs: fs, dir: dir}
}

// Fetch returns the cached body for the URL if present, otherwise
// delegates to the wrapped fetcher and caches its result. Cache write
// failures are ignored; a broken cache must not fail a successful
// fetch.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	path := f.path(url)

	if body, err := afero.ReadFile(f.fs, path); err == nil {
		return string(body), nil
	}

	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := f.fs.MkdirAll(f.dir, 0o755); err == nil {
		_ = afero.WriteFile(f.fs, path, []byte(html), 0o644)
	}

	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}

func (f *Fetcher) path(url string) string {
	return filepath.Join(f.dir, fmt.Sprintf("%x.html", xxhash.Sum64String(url)))
}
