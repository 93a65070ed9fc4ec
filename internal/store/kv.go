// Package store persists tracker state in a string key-value scope. DB keeps
// it in SQLite on disk; Memory keeps it in process.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// KV is a persistent string key-value scope.
type KV interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// batchSetter is implemented by stores that can write several keys at once.
type batchSetter interface {
	SetAll(pairs map[string]string) error
}

// DB is a SQLite-backed KV.
type DB struct {
	db *sql.DB
}

var (
	_ KV          = (*DB)(nil)
	_ batchSetter = (*DB)(nil)
)

// Open opens or creates the database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Get returns the value stored under key.
func (d *DB) Get(key string) (string, bool, error) {
	var v string
	err := d.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (d *DB) Set(key, value string) error {
	return d.SetAll(map[string]string{key: value})
}

// SetAll writes every pair in a single transaction.
func (d *DB) SetAll(pairs map[string]string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for k, v := range pairs {
		_, err = tx.Exec(`INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)`, k, v, now)
		if err != nil {
			return fmt.Errorf("writing %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// Remove deletes key. Removing an absent key is not an error.
func (d *DB) Remove(key string) error {
	if _, err := d.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// KeyInfo describes one stored key.
type KeyInfo struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

// Keys lists the stored keys with their value sizes, sorted by key.
func (d *DB) Keys() ([]KeyInfo, error) {
	rows, err := d.db.Query("SELECT key, length(value), updated_at FROM kv")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []KeyInfo
	for rows.Next() {
		var ki KeyInfo
		var updated string
		if err := rows.Scan(&ki.Key, &ki.Size, &updated); err != nil {
			return nil, err
		}
		ki.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, ki)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
