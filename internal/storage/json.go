package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rsvp-bot/internal/models"
)

// JSONStore keeps the guest list as a single JSON array on disk.
type JSONStore struct {
	file string
}

// NewJSONStore creates a JSON-file backed store at filePath.
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{file: filePath}
}

// LoadAll reads the full guest list from file.
func (s *JSONStore) LoadAll() ([]models.Guest, error) {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read guest file: %w", err)
	}

	if len(data) == 0 {
		return []models.Guest{}, nil
	}

	var guests []models.Guest
	if err := json.Unmarshal(data, &guests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guests: %w", err)
	}
	return guests, nil
}

// SaveAll writes the full guest list, replacing the file atomically via a
// temp file and rename.
func (s *JSONStore) SaveAll(guests []models.Guest) error {
	data, err := json.MarshalIndent(guests, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal guests: %w", err)
	}

	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".guests-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return os.Rename(tmp.Name(), s.file)
}
