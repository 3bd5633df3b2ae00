package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// BusyTimeoutMs is how long a connection waits on another writer's lock
// before failing with SQLITE_BUSY.
const BusyTimeoutMs = 5000

// connPragmas are applied by the driver to every pooled connection. Foreign
// keys in particular are per-connection; day and activity rows rely on them to
// cascade when a trip is replaced or deleted. Transactions begin IMMEDIATE so
// a revision that reads before it writes cannot race another writer.
var connPragmas = fmt.Sprintf("?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_txlock=immediate", BusyTimeoutMs)

// OpenDB opens the trip history database at path, creating its directory.
// ":memory:" gives a private in-memory database pinned to one connection.
// File databases use WAL so history listings do not block on a save.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+connPragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if memory {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		db.Close()
		return nil, fmt.Errorf("checking foreign keys: %w", err)
	}
	if fk != 1 {
		db.Close()
		return nil, errors.New("foreign keys are not enabled")
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
