// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package wiki

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadRecords reads an ordered record sequence from a JSON file.
func LoadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing records file %q: %w", path, err)
	}

	return records, nil
}

// SaveRecords writes the record sequence as pretty-printed JSON,
// preserving input order and struct field order.
func SaveRecords(path string, records []Record) error {
	output, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}

	if err := os.WriteFile(path, output, 0o600); err != nil {
		return fmt.Errorf("writing records file %q: %w", path, err)
	}

	return nil
}

// Checkpointer persists partial batch progress so an interrupted run
// can resume without reprocessing finished records.
type Checkpointer interface {
	Save(records []Record) error
}

// FileCheckpointer checkpoints the batch to a JSON file, which is also
// the final output file.
type FileCheckpointer struct {
	Path string
}

// Save writes the current state of the whole record sequence.
func (c *FileCheckpointer) Save(records []Record) error {
	return SaveRecords(c.Path, records)
}
