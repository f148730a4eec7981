// Package storage persists the match, roster and event snapshot in SQLite.
package storage

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is written to PRAGMA user_version. Bump it with schema.sql.
const schemaVersion = 1

const dateLayout = "2006-01-02"

// DB is the record store handle.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the database at path. ":memory:" gives a private in-memory store.
func Open(path string) (*DB, error) {
	pragmas := []string{"busy_timeout(5000)"}
	if path != ":memory:" {
		pragmas = append(pragmas, "journal_mode(WAL)")
	}
	dsn := "file:" + path + "?_pragma=" + strings.Join(pragmas, "&_pragma=")

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection: writers never race, and ":memory:" stays a single database.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) migrate() error {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("%s was written by a newer teamstats (schema %d, want %d)", db.path, version, schemaVersion)
	}
	if _, err := db.conn.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := db.conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

// Path is the file the store was opened from.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) Close() error {
	return db.conn.Close()
}
