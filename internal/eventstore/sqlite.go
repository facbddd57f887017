package eventstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-based event store.
// Use ":memory:" for in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, wrap(ErrDatabaseOpenFailed, err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, wrap(ErrInitializeSchemaFailed, err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		payload BLOB NOT NULL,
		metadata TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_build_id ON events(build_id);
	CREATE INDEX IF NOT EXISTS idx_timestamp ON events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_event_type ON events(event_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a new event to the store. A zero event timestamp is replaced
// by the current time.
func (s *SQLiteStore) Append(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var metadataJSON []byte
	if md := event.Metadata(); md != nil {
		var err error
		metadataJSON, err = json.Marshal(md)
		if err != nil {
			return wrap(ErrEventAppendFailed, fmt.Errorf("marshal metadata: %w", err))
		}
	}

	ts := event.Timestamp()
	if ts.IsZero() {
		ts = time.Now()
	}
	payload := event.Payload()
	if payload == nil {
		payload = []byte("{}")
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (build_id, event_type, timestamp, payload, metadata) VALUES (?, ?, ?, ?, ?)",
		event.BuildID(), event.Type(), ts.UnixMilli(), payload, metadataJSON,
	)
	if err != nil {
		return wrap(ErrEventAppendFailed, err)
	}
	return nil
}

// GetByBuildID retrieves all events for a specific build.
func (s *SQLiteStore) GetByBuildID(ctx context.Context, buildID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, build_id, event_type, timestamp, payload, metadata FROM events WHERE build_id = ? ORDER BY id",
		buildID,
	)
	if err != nil {
		return nil, wrap(ErrEventQueryFailed, err)
	}
	defer rows.Close()

	return s.scanEvents(rows)
}

// GetRange retrieves events within a time range, inclusive.
func (s *SQLiteStore) GetRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, build_id, event_type, timestamp, payload, metadata FROM events WHERE timestamp >= ? AND timestamp <= ? ORDER BY id",
		start.UnixMilli(), end.UnixMilli(),
	)
	if err != nil {
		return nil, wrap(ErrEventQueryFailed, err)
	}
	defer rows.Close()

	return s.scanEvents(rows)
}

// RecentBuildIDs returns up to limit build ids ordered by their BuildStarted
// event, newest first.
func (s *SQLiteStore) RecentBuildIDs(ctx context.Context, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT build_id FROM events WHERE event_type = ? ORDER BY timestamp DESC, id DESC LIMIT ?",
		TypeBuildStarted, limit,
	)
	if err != nil {
		return nil, wrap(ErrEventQueryFailed, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrap(ErrEventQueryFailed, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(ErrEventQueryFailed, err)
	}
	return ids, nil
}

func (s *SQLiteStore) scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e BaseEvent
		var timestampMillis int64
		var metadataJSON []byte

		err := rows.Scan(&e.EventID, &e.EventBuildID, &e.EventType, &timestampMillis, &e.EventPayload, &metadataJSON)
		if err != nil {
			return nil, wrap(ErrEventQueryFailed, fmt.Errorf("scan event: %w", err))
		}

		e.EventTimestamp = time.UnixMilli(timestampMillis)

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &e.EventMetadata); err != nil {
				return nil, wrap(ErrEventQueryFailed, fmt.Errorf("unmarshal metadata: %w", err))
			}
		}

		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap(ErrEventQueryFailed, err)
	}

	return events, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
