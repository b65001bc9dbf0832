// Package store implements the append-only SQLite event log.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/Tiliavir/timetrack/internal/model"
)

// schemaVersion is the current value of PRAGMA user_version.
const schemaVersion = 1

// ErrDuplicateEvent is returned by Append when an event with the same kind
// and timestamp already exists in the log.
var ErrDuplicateEvent = errors.New("duplicate event")

// Store is an append-only log of work events backed by a SQLite database.
// Timestamps are persisted as Unix nanoseconds and read back in local time.
type Store struct {
	db *sql.DB
}

// Open opens the event log at path, creating and initializing the database
// if it does not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	// Append's read-validate-insert transaction must not interleave with a
	// second connection of the same process.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening event log %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	switch {
	case version == 0:
		const ddl = `
CREATE TABLE IF NOT EXISTS events (
    kind TEXT NOT NULL CHECK (kind IN ('arrive', 'break', 'resume', 'leave')),
    ts   INTEGER NOT NULL,
    PRIMARY KEY (kind, ts)
)`
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("creating events table: %w", err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("setting schema version: %w", err)
		}
	case version > schemaVersion:
		return fmt.Errorf("event log has schema version %d, this build supports up to %d", version, schemaVersion)
	}
	// Upgrade steps for future schema versions go here.

	return nil
}

// Append records ev after guard approves the transition. The most recent
// event is read, guard is called with it (nil when the log is empty), and ev
// is inserted only when guard returns nil — all inside a single transaction,
// so a rejected operation leaves the log untouched and a concurrent append
// cannot slip between the read and the write. A nil guard skips validation.
func (s *Store) Append(ev model.Event, guard func(last *model.Event) error) error {
	if !ev.Kind.Valid() {
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	last, err := scanEvent(tx.QueryRow(`SELECT kind, ts FROM events ORDER BY ts DESC LIMIT 1`))
	if err != nil {
		return err
	}
	if guard != nil {
		if err := guard(last); err != nil {
			return err
		}
	}

	_, err = tx.Exec(`INSERT INTO events (kind, ts) VALUES (?, ?)`, string(ev.Kind), ev.Time.UnixNano())
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return fmt.Errorf("%w: %s at %s", ErrDuplicateEvent, ev.Kind, ev.Time.Format(time.RFC3339Nano))
		}
		return fmt.Errorf("inserting event: %w", err)
	}
	return tx.Commit()
}

// LastEvent returns the most recent event by timestamp, or nil if the log is
// empty.
func (s *Store) LastEvent() (*model.Event, error) {
	return scanEvent(s.db.QueryRow(`SELECT kind, ts FROM events ORDER BY ts DESC LIMIT 1`))
}

// FirstArrivalBetween returns the earliest arrive event with
// from <= timestamp < to, or nil when none exists.
func (s *Store) FirstArrivalBetween(from, to time.Time) (*model.Event, error) {
	return scanEvent(s.db.QueryRow(
		`SELECT kind, ts FROM events WHERE kind = ? AND ts >= ? AND ts < ? ORDER BY ts ASC LIMIT 1`,
		string(model.Arrive), from.UnixNano(), to.UnixNano()))
}

// EventsBetween returns all events with from <= timestamp < to, ascending by
// timestamp.
func (s *Store) EventsBetween(from, to time.Time) ([]model.Event, error) {
	rows, err := s.db.Query(
		`SELECT kind, ts FROM events WHERE ts >= ? AND ts < ? ORDER BY ts ASC`,
		from.UnixNano(), to.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var kind string
		var nanos int64
		if err := rows.Scan(&kind, &nanos); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, model.Event{Kind: model.Kind(kind), Time: time.Unix(0, nanos).In(time.Local)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return events, nil
}

// AllEvents returns every recorded event, ascending by timestamp.
func (s *Store) AllEvents() ([]model.Event, error) {
	rows, err := s.db.Query(`SELECT kind, ts FROM events ORDER BY ts ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var kind string
		var nanos int64
		if err := rows.Scan(&kind, &nanos); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, model.Event{Kind: model.Kind(kind), Time: time.Unix(0, nanos).In(time.Local)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var kind string
	var nanos int64
	err := row.Scan(&kind, &nanos)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading event: %w", err)
	}
	return &model.Event{Kind: model.Kind(kind), Time: time.Unix(0, nanos).In(time.Local)}, nil
}

func isPrimaryKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
