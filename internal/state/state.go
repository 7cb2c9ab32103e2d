// Package state persists the tracked PR list between runs.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/npratt/prdash/internal/build"
)

// Save writes the records to path as indented JSON, creating parent
// directories as needed.
func Save(path string, records []build.Record) error {
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Load reads the records from path. A missing file is not an error and
// yields an empty list.
func Load(path string) ([]build.Record, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var records []build.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	return records, nil
}
