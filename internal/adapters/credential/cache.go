package credential

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is a cached token and the time it was written.
type Entry struct {
	Token    string
	Modified time.Time
}

// TokenCache persists the encoded session token between runs.
type TokenCache interface {
	// Load returns the cached entry, or ErrNoToken when nothing is stored.
	Load(ctx context.Context) (Entry, error)
	// Store replaces the cached token.
	Store(ctx context.Context, token string) error
}

const cacheFileMode = 0o600

// FileCache keeps the token in a single file. Freshness is keyed off the
// file's modification time.
type FileCache struct {
	path string
}

// NewFileCache returns a cache backed by path (conventionally cookie.txt).
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Path returns the backing file path.
func (c *FileCache) Path() string { return c.path }

// Load implements TokenCache.
func (c *FileCache) Load(_ context.Context) (Entry, error) {
	info, err := os.Stat(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Entry{}, ErrNoToken
	}
	if err != nil {
		return Entry{}, fmt.Errorf("%w: stat %s: %w", ErrCache, c.path, err)
	}
	b, err := os.ReadFile(c.path)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: read %s: %w", ErrCache, c.path, err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return Entry{}, ErrNoToken
	}
	return Entry{Token: token, Modified: info.ModTime()}, nil
}

// Store implements TokenCache.
func (c *FileCache) Store(_ context.Context, token string) error {
	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrCache, err)
		}
	}
	if err := os.WriteFile(c.path, []byte(token), cacheFileMode); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrCache, c.path, err)
	}
	return nil
}
