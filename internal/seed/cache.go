package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/tradui/internal/logger"
	"github.com/mrlokans/tradui/internal/platform"
)

// Validator checks a fetched document before it may replace the cached copy.
type Validator func(name string, data []byte) error

// CachedSource keeps the last good copy of every document read from a remote source, and
// serves that copy when the remote cannot be reached or returns a document that fails
// validation.
type CachedSource struct {
	inner    Source
	cacheDir string
	validate Validator
	log      *logger.Logger
}

// NewCachedSource wraps inner with a document cache at cacheDir. A nil validate accepts
// every document.
func NewCachedSource(inner Source, cacheDir string, validate Validator, log *logger.Logger) (*CachedSource, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}

	return &CachedSource{
		inner:    inner,
		cacheDir: cacheDir,
		validate: validate,
		log:      log.WithComponent("seed"),
	}, nil
}

// ReadFile fetches name from the wrapped source and refreshes the cached copy with it once
// it validates. A fatal error, such as a document missing on the server, is returned as is;
// a fetch failure or a rejected document falls back to the cached copy when there is one.
func (c *CachedSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	cachePath := filepath.Join(c.cacheDir, filepath.Base(name))

	data, err := c.inner.ReadFile(ctx, name)
	if err == nil && c.validate != nil {
		err = c.validate(name, data)
	}
	if err == nil {
		if err := c.store(cachePath, data); err != nil {
			c.log.Warn("Failed to cache seed file", "file", name, "error", err)
		}
		return data, nil
	}
	if platform.IsFatal(err) {
		return nil, err
	}

	cached, cacheErr := os.ReadFile(cachePath)
	if cacheErr != nil {
		return nil, err
	}
	c.log.Warn("Using cached seed file", "file", name, "source", c.inner.String(), "error", err)
	return cached, nil
}

func (c *CachedSource) String() string {
	return c.inner.String() + " (cache " + c.cacheDir + ")"
}

// store writes data through a temp file in the cache directory and renames it into place.
func (c *CachedSource) store(cachePath string, data []byte) error {
	tmpFile, err := os.CreateTemp(c.cacheDir, "seed_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // Clean up if we didn't rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, cachePath)
}
