package media

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// Downloader fetches attachment bytes with the tracker credential
// attached. Satisfied by linear.Client.
type Downloader interface {
	DownloadAttachment(ctx context.Context, url string) ([]byte, error)
}

// Cache maps a reference URL to a locally resident file, fetching on miss
// and reusing on hit.
type Cache interface {
	// Resolve returns the local path holding the content of url.
	Resolve(ctx context.Context, url string) (string, error)
	// Dispose removes everything the cache owns. Best-effort: a missing
	// directory is not an error.
	Dispose() error
}

// DiskCache stores downloads under one process-owned directory, keyed by
// a BLAKE3 digest of the URL plus the URL's file extension. Entries are
// never invalidated: attachment content is assumed immutable once
// published, so a hit skips the network entirely. Two concurrent misses
// on the same URL may both download; last writer wins with identical
// content, which is accepted rather than serialized.
type DiskCache struct {
	dir        string
	downloader Downloader
}

func NewDiskCache(dir string, downloader Downloader) *DiskCache {
	return &DiskCache{dir: dir, downloader: downloader}
}

// Key returns the cache file name for a URL: the hex BLAKE3 digest of the
// full URL joined with the extension of its path component, ".png" when
// the path carries none.
func Key(rawURL string) string {
	sum := blake3.Sum256([]byte(rawURL))
	ext := ".png"
	if u, err := url.Parse(rawURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	return hex.EncodeToString(sum[:]) + ext
}

func (c *DiskCache) Resolve(ctx context.Context, rawURL string) (string, error) {
	target := filepath.Join(c.dir, Key(rawURL))

	if _, err := os.Stat(target); err == nil {
		slog.DebugContext(ctx, "media cache hit", "url", rawURL, "path", target)
		return target, nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	data, err := c.downloader.DownloadAttachment(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("writing cache entry: %w", err)
	}

	slog.DebugContext(ctx, "media cached", "url", rawURL, "path", target, "bytes", len(data))
	return target, nil
}

func (c *DiskCache) Dispose() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("removing cache dir: %w", err)
	}
	return nil
}
