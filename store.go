package atomicsite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/eringen/atomicsite/catalog"
)

// Store wraps a SQLite database holding chronicle entries. The site reads it
// once at startup; writes happen offline through the import command.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS chronicles (
    position INTEGER PRIMARY KEY,
    date TEXT NOT NULL,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL
);
`)
	return err
}

// ListEntries returns every chronicle in catalog order.
func (s *Store) ListEntries() ([]catalog.Entry, error) {
	rows, err := s.db.Query(`SELECT date, title, excerpt FROM chronicles ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.Date, &e.Title, &e.Excerpt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceEntries swaps the stored chronicles for entries, keeping their
// order, in a single transaction.
func (s *Store) ReplaceEntries(entries []catalog.Entry) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM chronicles`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO chronicles (position, date, title, excerpt) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err = stmt.Exec(i, e.Date, e.Title, e.Excerpt); err != nil {
			return fmt.Errorf("insert chronicle %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// CountEntries returns the number of stored chronicles.
func (s *Store) CountEntries() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM chronicles`).Scan(&n)
	return n, err
}
