package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFetchesAndCaches(t *testing.T) {
	var hits int
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		require.Equal(t, "/titanic.csv", r.URL.Path)
		w.Write(sampleCSV)
	}))
	defer catalog.Close()

	cacheDir := t.TempDir()
	opts := LoadOptions{CatalogURL: catalog.URL, CacheDir: cacheDir}

	table, err := Load(context.Background(), "titanic", opts)
	require.NoError(t, err)
	assert.Equal(t, 3, table.NumRows())
	assert.Equal(t, 1, hits)

	// Cached copy written to disk.
	_, err = os.Stat(filepath.Join(cacheDir, "titanic.csv"))
	require.NoError(t, err)

	// Second load is served from cache, not the catalog.
	table, err = Load(context.Background(), "titanic", opts)
	require.NoError(t, err)
	assert.Equal(t, 3, table.NumRows())
	assert.Equal(t, 1, hits)
}

func TestLoadRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "Titanic", "../etc/passwd", "a b"} {
		_, err := Load(context.Background(), name, LoadOptions{})
		assert.Error(t, err, "name %q should be rejected", name)
	}
}

func TestLoadCatalogError(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer catalog.Close()

	_, err := Load(context.Background(), "nosuch", LoadOptions{CatalogURL: catalog.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
