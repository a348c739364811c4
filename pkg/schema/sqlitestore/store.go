// Package sqlitestore provides SQLite-based snapshot persistence for loaded
// schema registries, so a checked schema can be saved and reloaded without
// re-running the evaluator against its manifest and dependencies.
package sqlitestore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"ecsc/pkg/schema"
)

// Store handles SQLite database operations for schema snapshots.
type Store struct {
	db *sql.DB
}

// Record is one saved snapshot row.
type Record struct {
	Package  string
	SavedAt  time.Time
	Snapshot schema.Snapshot
}

// Open creates or opens the snapshot database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		package TEXT PRIMARY KEY,
		saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		data TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save upserts the snapshot of pkg into the database, keyed by package name.
func (s *Store) Save(reg schema.Registry, pkg schema.PackageID) error {
	snap := schema.BuildSnapshot(reg, pkg)
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshots (package, saved_at, data) VALUES (?, CURRENT_TIMESTAMP, ?)
		ON CONFLICT(package) DO UPDATE SET saved_at = CURRENT_TIMESTAMP, data = excluded.data
	`, snap.Package, string(data))
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.Package, err)
	}
	return nil
}

// Load retrieves the most recently saved snapshot for packageName.
func (s *Store) Load(packageName string) (*Record, error) {
	row := s.db.QueryRow(`SELECT package, saved_at, data FROM snapshots WHERE package = ?`, packageName)

	var rec Record
	var savedAt time.Time
	var data string
	if err := row.Scan(&rec.Package, &savedAt, &data); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no snapshot saved for package %q", packageName)
		}
		return nil, fmt.Errorf("load snapshot %s: %w", packageName, err)
	}
	rec.SavedAt = savedAt
	if err := json.Unmarshal([]byte(data), &rec.Snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", packageName, err)
	}
	return &rec, nil
}

// List returns the names of every package with a saved snapshot, most
// recently saved first.
func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT package FROM snapshots ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the saved snapshot for packageName, if any.
func (s *Store) Delete(packageName string) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE package = ?`, packageName)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", packageName, err)
	}
	return nil
}
