package dataset

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/pkg/errors"
)

// ============================================================================
// CATALOG — Named reference datasets
// ============================================================================
// Datasets are fetched by name from the seaborn-data catalog and cached on
// disk, so a process restart does not need the network again. Load is the
// only startup I/O in the system; if it fails the process has no purpose.
// ============================================================================

// DefaultCatalogURL is the base URL of the public reference dataset catalog.
const DefaultCatalogURL = "https://raw.githubusercontent.com/mwaskom/seaborn-data/master"

// datasetNameRe restricts names to catalog-style identifiers so a name can
// never escape the cache directory.
var datasetNameRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// LoadOptions configure where Load looks for a dataset.
type LoadOptions struct {
	CatalogURL string       // base URL; DefaultCatalogURL when empty
	CacheDir   string       // on-disk cache; no caching when empty
	Client     *http.Client // HTTP client; a 30s-timeout client when nil
}

// Load fetches the named dataset from the catalog and returns it as an
// immutable Table. A cached copy in opts.CacheDir is used when present.
func Load(ctx context.Context, name string, opts LoadOptions) (*Table, error) {
	if !datasetNameRe.MatchString(name) {
		return nil, errors.Errorf("invalid dataset name %q", name)
	}

	if opts.CacheDir != "" {
		cachePath := filepath.Join(opts.CacheDir, name+".csv")
		if data, err := os.ReadFile(cachePath); err == nil {
			log.Printf("📂 Dataset %q loaded from cache (%s)", name, cachePath)
			return ParseCSV(data, name)
		}
	}

	data, err := fetch(ctx, name, opts)
	if err != nil {
		return nil, err
	}

	if opts.CacheDir != "" {
		if err := writeCache(opts.CacheDir, name, data); err != nil {
			// Cache misses are survivable; the table is already in memory.
			log.Printf("⚠️ Failed to cache dataset %q: %v", name, err)
		}
	}

	return ParseCSV(data, name)
}

func fetch(ctx context.Context, name string, opts LoadOptions) ([]byte, error) {
	base := opts.CatalogURL
	if base == "" {
		base = DefaultCatalogURL
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	url := base + "/" + name + ".csv"
	log.Printf("🌐 Fetching dataset %q from %s", name, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for dataset %q", name)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching dataset %q", name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("dataset %q: catalog returned %d", name, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading dataset %q", name)
	}
	return data, nil
}

func writeCache(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating cache dir")
	}
	return errors.Wrap(os.WriteFile(filepath.Join(dir, name+".csv"), data, 0o644), "writing cache file")
}
