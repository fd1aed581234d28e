// Package index loads and saves the flat JSON file index the search engine
// runs over.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iotsystems/hdlbot/internal/models"
)

// Load reads the index file. Two layouts are accepted: a JSON array of
// records, and an object keyed by path with record values (the layout older
// crawler versions produced).
func Load(path string) ([]models.DocumentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var records []models.DocumentRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var keyed map[string]models.DocumentRecord
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("parse index %s: %w", path, err)
	}
	records = make([]models.DocumentRecord, 0, len(keyed))
	for path, rec := range keyed {
		if rec.Path == "" {
			rec.Path = path
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save writes records as an indented JSON array, creating parent directories
// as needed.
func Save(path string, records []models.DocumentRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}
