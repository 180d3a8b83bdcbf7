package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"salesdash/internal/models"
)

// SourceFiles is the ordered fallback chain: the freshest enhanced export
// first, the raw export next, then the bundled samples. The first file that
// loads wins.
var SourceFiles = []string{
	"enhanced_latest.json",
	"latest.json",
	"enhanced_sample.json",
	"sample.json",
}

// LoadDataset walks the fallback chain under dataDir and returns the first
// dataset that decodes, along with the filename that produced it. The core
// never drops records here; schema enforcement is the producer's job.
func LoadDataset(dataDir string) (*models.Dataset, string, error) {
	start := time.Now()

	var lastErr error
	for _, name := range SourceFiles {
		path := filepath.Join(dataDir, name)
		ds, err := decodeDataset(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("loader: skipping %s: %v", name, err)
			}
			lastErr = err
			continue
		}
		log.Printf("loader: loaded %s (%d records) in %v", name, len(ds.Records), time.Since(start))
		return ds, name, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no source files configured")
	}
	return nil, "", fmt.Errorf("no data files found under %s: %w", dataDir, lastErr)
}

func decodeDataset(path string) (*models.Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ds models.Dataset
	if err := json.Unmarshal(content, &ds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return &ds, nil
}
