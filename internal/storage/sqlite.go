package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"rsvp-bot/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS guests (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	full_name   TEXT NOT NULL,
	phone       TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT '',
	last_sent   TEXT NOT NULL DEFAULT '',
	answered_at TEXT NOT NULL DEFAULT ''
);
`

// SQLiteStore keeps the guest list in a SQLite database. Row order follows
// the autoincrement id, so LoadAll preserves insertion order.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies the
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadAll reads all guests ordered by insertion.
func (s *SQLiteStore) LoadAll() ([]models.Guest, error) {
	rows, err := s.db.Query(`SELECT full_name, phone, status, last_sent, answered_at FROM guests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	guests := []models.Guest{}
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.FullName, &g.Phone, &g.Status, &g.LastSent, &g.AnsweredAt); err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read guests: %w", err)
	}
	return guests, nil
}

// SaveAll replaces the whole guest set in one transaction.
func (s *SQLiteStore) SaveAll(guests []models.Guest) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM guests`); err != nil {
		return fmt.Errorf("failed to clear guests: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO guests (full_name, phone, status, last_sent, answered_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range guests {
		if _, err := stmt.Exec(g.FullName, g.Phone, g.Status, g.LastSent, g.AnsweredAt); err != nil {
			return fmt.Errorf("failed to insert guest %q: %w", g.FullName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit guests: %w", err)
	}
	return nil
}
