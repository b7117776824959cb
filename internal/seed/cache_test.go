package seed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tradui/internal/platform"
)

const goodCategories = `<categories><category categoryId="1"><cattrans language="English">Food</cattrans></category></categories>`

func TestNewCachedSource(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "seed-cache")

	cache, err := NewCachedSource(Embedded(), cacheDir, nil, nil)
	require.NoError(t, err)

	assert.DirExists(t, cacheDir)
	assert.Contains(t, cache.String(), "embedded")
	assert.Contains(t, cache.String(), cacheDir)
}

func TestCachedSource_FetchAndCache(t *testing.T) {
	var down atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(goodCategories))
	}))
	defer server.Close()

	cacheDir := t.TempDir()
	cache, err := NewCachedSource(NewHTTPSource(server.URL, 0), cacheDir, DefaultFiles().Validate, nil)
	require.NoError(t, err)
	ctx := context.Background()

	data, err := cache.ReadFile(ctx, "categories.xml")
	require.NoError(t, err)
	assert.Equal(t, goodCategories, string(data))

	cached, err := os.ReadFile(filepath.Join(cacheDir, "categories.xml"))
	require.NoError(t, err)
	assert.Equal(t, goodCategories, string(cached))

	// Server failure falls back to the cached copy
	down.Store(true)
	data, err = cache.ReadFile(ctx, "categories.xml")
	require.NoError(t, err)
	assert.Equal(t, goodCategories, string(data))

	// Nothing cached for this one
	_, err = cache.ReadFile(ctx, "phrases.xml")
	assert.ErrorContains(t, err, "unexpected status code 502")
}

func TestCachedSource_RejectedDocumentKeepsCachedCopy(t *testing.T) {
	var body atomic.Value
	body.Store(goodCategories)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body.Load().(string)))
	}))

	cacheDir := t.TempDir()
	cache, err := NewCachedSource(NewHTTPSource(server.URL, 0), cacheDir, DefaultFiles().Validate, nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = cache.ReadFile(ctx, "categories.xml")
	require.NoError(t, err)

	for _, broken := range []string{
		"<html>maintenance page",
		"<html><body>Down for maintenance</body></html>",
		`<categories><category categoryId="x"></category></categories>`,
	} {
		body.Store(broken)
		data, err := cache.ReadFile(ctx, "categories.xml")
		require.NoError(t, err)
		assert.Equal(t, goodCategories, string(data), broken)
	}

	server.Close()
	data, err := cache.ReadFile(ctx, "categories.xml")
	require.NoError(t, err)
	assert.Equal(t, goodCategories, string(data))

	records, err := ParseCategories("categories.xml", data)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCachedSource_RejectedDocumentWithoutCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance page"))
	}))
	defer server.Close()

	cacheDir := t.TempDir()
	cache, err := NewCachedSource(NewHTTPSource(server.URL, 0), cacheDir, DefaultFiles().Validate, nil)
	require.NoError(t, err)

	_, err = cache.ReadFile(context.Background(), "categories.xml")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "categories.xml", parseErr.File)
	assert.NoFileExists(t, filepath.Join(cacheDir, "categories.xml"))
}

func TestCachedSource_FatalErrorsBypassCache(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	cacheDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "phrases.xml"), []byte("<phrases/>"), 0644))

	cache, err := NewCachedSource(NewHTTPSource(server.URL, 0), cacheDir, nil, nil)
	require.NoError(t, err)

	_, err = cache.ReadFile(context.Background(), "phrases.xml")
	require.Error(t, err)
	assert.True(t, platform.IsFatal(err))
}

func TestCachedSource_NoLeftoverTempFiles(t *testing.T) {
	cacheDir := t.TempDir()
	cache, err := NewCachedSource(Embedded(), cacheDir, DefaultFiles().Validate, nil)
	require.NoError(t, err)

	_, err = cache.ReadFile(context.Background(), "categories.xml")
	require.NoError(t, err)

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "categories.xml", entries[0].Name())
}

func TestFilesValidate(t *testing.T) {
	files := DefaultFiles()

	assert.NoError(t, files.Validate("categories.xml", []byte(goodCategories)))
	assert.NoError(t, files.Validate("notes.xml", []byte("<notes/>")))

	err := files.Validate("categories.xml", []byte("<categories/>"))
	assert.ErrorContains(t, err, "document holds no records")

	err = files.Validate("word_dictionary.xml", []byte("<html><body/></html>"))
	assert.ErrorContains(t, err, "document holds no records")

	assert.Error(t, files.Validate("phrases.xml", []byte("<phrases>")))
}
