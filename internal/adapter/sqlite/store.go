// Package sqlite implements the client's local key-value store on a single
// SQLite file. The draft and the offline queue each live under one key.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"

	"github.com/heartmarshall/ironlog/internal/domain"
)

// Schema version tracking:
// 1 - kv table
const currentSchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at TEXT NOT NULL
) WITHOUT ROWID;
`

// Store is a durable key-value store backed by SQLite in WAL mode.
// Transactions take the write lock up front (BEGIN IMMEDIATE), so a
// read-modify-write through Update is atomic even across processes.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Open creates or opens the SQLite database at path and applies the schema.
func Open(path string, clock clockwork.Clock) (*Store, error) {
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_synchronous", "NORMAL")
	q.Set("_busy_timeout", "5000")
	q.Set("_txlock", "immediate")

	db, err := sql.Open("sqlite3", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer; one connection avoids SQLITE_BUSY
	// and keeps per-connection pragmas in effect.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, clock: clock}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the value stored under key.
// Returns domain.ErrNotFound if the key is absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("kv %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("kv %q: get: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := put(ctx, s.db, key, value, s.now()); err != nil {
		return fmt.Errorf("kv %q: put: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv %q: delete: %w", key, err)
	}
	return nil
}

// Update runs fn on the current value of key inside one transaction and
// stores what it returns. found is false when the key is absent. A nil
// result deletes the key; an error from fn aborts without writing.
func (s *Store) Update(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("kv %q: begin: %w", key, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var current []byte
	found := true
	err = tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		found = false
	} else if err != nil {
		return fmt.Errorf("kv %q: read: %w", key, err)
	}

	next, err := fn(current, found)
	if err != nil {
		return err
	}

	if next == nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	} else {
		err = put(ctx, tx, key, next, s.now())
	}
	if err != nil {
		return fmt.Errorf("kv %q: write: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("kv %q: commit: %w", key, err)
	}
	return nil
}

// RequestDurability switches the connection to synchronous=FULL so every
// commit is fsynced before returning. It is advisory: callers may ignore a
// failure and keep the default durability.
func (s *Store) RequestDurability(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA synchronous = FULL`); err != nil {
		return fmt.Errorf("request durability: %w", err)
	}
	return nil
}

func (s *Store) now() string {
	return s.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func put(ctx context.Context, db execer, key string, value []byte, updatedAt string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, updatedAt,
	)
	return err
}

// migrate applies incremental schema changes based on PRAGMA user_version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if _, err := db.Exec(schemaV1); err != nil {
			return fmt.Errorf("create kv table: %w", err)
		}
	}

	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}
