// Package store keeps the patient's event log in a local SQLite file.
// Every survey, check-in and AI request is appended as an event and never
// updated in place.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// Registers the cgo-free "sqlite" driver.
	_ "modernc.org/sqlite"
)

const memoryDSN = ":memory:"

var pragmas = []string{
	"busy_timeout = 5000",
	"foreign_keys = ON",
	"synchronous = NORMAL",
}

type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open connects to the database at path, creating and migrating it as
// needed. ":memory:" opens a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: SQLite has a single writer, and pragmas and
	// in-memory databases are per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db)}
	if err := s.init(context.Background(), path != memoryDSN); err != nil {
		s.drv.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context, wal bool) error {
	list := pragmas
	if wal {
		list = append([]string{"journal_mode = WAL"}, pragmas...)
	}
	for _, p := range list {
		if _, err := s.db.ExecContext(ctx, "PRAGMA "+p); err != nil {
			return fmt.Errorf("pragma %s: %w", p, err)
		}
	}

	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	s.seq, err = newSequenceCounter(s.db)
	return err
}

// DB exposes the connection for ad-hoc queries.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) EventRepo() EventRepo {
	return newEventRepo(s.db, s.seq)
}

// DefaultDBPath returns $CURANOSTICS_DB when set, otherwise
// curanostics/curanostics.db under $XDG_DATA_HOME or ~/.local/share.
// The parent directory is created.
func DefaultDBPath() (string, error) {
	path := os.Getenv("CURANOSTICS_DB")
	if path == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home dir: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		path = filepath.Join(base, "curanostics", "curanostics.db")
	}
	return path, EnsureDir(path)
}

// EnsureDir creates the directory that will hold the database file.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
