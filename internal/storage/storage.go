// Package storage persists the guest list as a full snapshot: load
// everything, save everything. Backends guarantee atomic replace on save, so
// a failed save leaves the previous snapshot intact.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"rsvp-bot/internal/models"
)

// GuestStore is the guest record store. LoadAll returns records in stable
// insertion order; SaveAll overwrites the whole set.
type GuestStore interface {
	LoadAll() ([]models.Guest, error)
	SaveAll(guests []models.Guest) error
}

// Open selects a backend by file extension: .xlsx, .json, or a SQLite
// database (.db, .sqlite, .sqlite3).
func Open(path string) (GuestStore, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return NewExcelStore(path), nil
	case ".json":
		return NewJSONStore(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unsupported guest store %q: want .xlsx, .json, .db, .sqlite or .sqlite3", path)
	}
}
