// Package store is the persistence collaborator: a string key/value store
// with a versioned schema. Writes are best-effort; a failed write leaves
// the session running in memory only.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Current schema keys.
const (
	KeySchemaVersion  = "schema_version"
	KeyRules          = "rules"
	KeyCategoryFilter = "filter.category"
	KeyMonthFilter    = "filter.month"
	KeyCollapsed      = "txns.collapsed"
	KeyTransactions   = "txns.json"
)

// schemaVersion is the version written after migration.
const schemaVersion = "2"

// Store is the key/value contract the application persists through.
type Store interface {
	Get(key string) (string, bool)
	Put(key, value string)
	Delete(key string)
	Close() error
}

// SQLite is a Store backed by a single kv table.
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the store and runs the legacy-key migration.
func Open(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating store: %w", err)
	}
	return s, nil
}

// legacyKeys maps the key names earlier releases wrote onto the current
// schema, in fold order: later entries only apply when the current key is
// still unset.
var legacyKeys = []struct {
	old, current string
}{
	{"spendlite_rules_v6626", KeyRules},
	{"spendlite_filter_v6626", KeyCategoryFilter},
	{"spendlite_month_v6627", KeyMonthFilter},
	{"spendlite_txns_collapsed_v7", KeyCollapsed},
	{"spendlite_txns_json_v7", KeyTransactions},
	{"spendlite_txns_json", KeyTransactions},
}

// migrate folds legacy mirror keys into the current schema once, then
// stamps the schema version and drops the legacy keys.
func (s *SQLite) migrate() error {
	if v, ok := s.Get(KeySchemaVersion); ok && v == schemaVersion {
		return nil
	}

	for _, m := range legacyKeys {
		if _, ok := s.Get(m.current); ok {
			continue
		}
		if value, ok := s.Get(m.old); ok {
			if err := s.put(m.current, value); err != nil {
				return err
			}
		}
	}
	for _, m := range legacyKeys {
		if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, m.old); err != nil {
			return err
		}
	}
	return s.put(KeySchemaVersion, schemaVersion)
}

// Get returns the value for key and whether it was present.
func (s *SQLite) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Put stores a value, best-effort. Failures are swallowed.
func (s *SQLite) Put(key, value string) {
	_ = s.put(key, value)
}

func (s *SQLite) put(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Delete removes a key, best-effort.
func (s *SQLite) Delete(key string) {
	_, _ = s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Memory is an in-memory Store for sessions where the backing file cannot
// be opened. It satisfies the same best-effort contract.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Put stores a value.
func (m *Memory) Put(key, value string) {
	m.values[key] = value
}

// Delete removes a key.
func (m *Memory) Delete(key string) {
	delete(m.values, key)
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
