// Package session persists the CLI's working state: the selected subject,
// cached derived tables keyed by (operation, subject), and export history.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matsen/dblp2wd/internal/table"
)

// FileName is the session database name inside the workspace directory.
const FileName = "session.db"

// Store wraps the session SQLite database.
type Store struct {
	db *sql.DB
}

// Export is one recorded artifact write.
type Export struct {
	RunID     string    `json:"run_id"`
	Operation string    `json:"operation"`
	Subject   string    `json:"subject"`
	Path      string    `json:"path"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// Open opens or creates the session database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		-- Derived tables, one per (operation, subject)
		CREATE TABLE IF NOT EXISTS tables (
			op TEXT NOT NULL,
			subject TEXT NOT NULL,
			table_json TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (op, subject)
		);

		CREATE TABLE IF NOT EXISTS exports (
			run_id TEXT PRIMARY KEY,
			op TEXT NOT NULL,
			subject TEXT NOT NULL,
			path TEXT NOT NULL,
			rows INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Subject returns the selected subject identifier, or "" when none is set.
func (s *Store) Subject() (string, error) {
	var subject string
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = 'subject'`).Scan(&subject)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading subject: %w", err)
	}
	return subject, nil
}

// SelectSubject makes id the current subject. Selecting a different subject
// drops every cached table; reselecting the current one keeps them.
// It reports whether the subject changed.
func (s *Store) SelectSubject(id string) (bool, error) {
	current, err := s.Subject()
	if err != nil {
		return false, err
	}
	if current == id {
		return false, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tables`); err != nil {
		return false, fmt.Errorf("clearing cached tables: %w", err)
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO state (key, value) VALUES ('subject', ?)`, id); err != nil {
		return false, fmt.Errorf("storing subject: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing subject: %w", err)
	}
	return true, nil
}

// CachedTable returns the table stored for (op, subject), or nil if none.
func (s *Store) CachedTable(op, subject string) (*table.Table, error) {
	var data string
	err := s.db.QueryRow(
		`SELECT table_json FROM tables WHERE op = ? AND subject = ?`, op, subject,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached %s: %w", op, err)
	}

	var t table.Table
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, fmt.Errorf("decoding cached %s: %w", op, err)
	}
	return &t, nil
}

// PutTable stores t for (op, subject), replacing any previous entry.
func (s *Store) PutTable(op, subject string, t *table.Table) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", op, err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO tables (op, subject, table_json, fetched_at) VALUES (?, ?, ?, ?)`,
		op, subject, string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("caching %s: %w", op, err)
	}
	return nil
}

// CachedOps lists the operations with a cached table for subject.
func (s *Store) CachedOps(subject string) ([]string, error) {
	rows, err := s.db.Query(`SELECT op FROM tables WHERE subject = ? ORDER BY op`, subject)
	if err != nil {
		return nil, fmt.Errorf("listing cached tables: %w", err)
	}
	defer rows.Close()

	ops := []string{}
	for rows.Next() {
		var op string
		if err := rows.Scan(&op); err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// Clear forgets the subject and every cached table. Export history is kept.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM tables`); err != nil {
		return fmt.Errorf("clearing cached tables: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM state`); err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	return nil
}

// RecordExport appends an export to the history and returns it.
func (s *Store) RecordExport(op, subject, path string, rows int) (Export, error) {
	e := Export{
		RunID:     uuid.NewString(),
		Operation: op,
		Subject:   subject,
		Path:      path,
		Rows:      rows,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err := s.db.Exec(
		`INSERT INTO exports (run_id, op, subject, path, rows, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Operation, e.Subject, e.Path, e.Rows, e.CreatedAt.Unix(),
	)
	if err != nil {
		return Export{}, fmt.Errorf("recording export: %w", err)
	}
	return e, nil
}

// Exports lists recorded exports, oldest first.
func (s *Store) Exports() ([]Export, error) {
	rows, err := s.db.Query(
		`SELECT run_id, op, subject, path, rows, created_at FROM exports ORDER BY created_at, rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	defer rows.Close()

	exports := []Export{}
	for rows.Next() {
		var e Export
		var created int64
		if err := rows.Scan(&e.RunID, &e.Operation, &e.Subject, &e.Path, &e.Rows, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(created, 0).UTC()
		exports = append(exports, e)
	}
	return exports, rows.Err()
}
