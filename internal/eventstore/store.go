// Package eventstore records build events in SQLite so past builds can be
// listed after the fact.
package eventstore

import (
	"context"
	"time"
)

// Store defines the interface for persisting and retrieving events.
type Store interface {
	// Append adds a new event to the store.
	Append(ctx context.Context, event Event) error

	// GetByBuildID retrieves all events for a specific build.
	GetByBuildID(ctx context.Context, buildID string) ([]Event, error)

	// GetRange retrieves events within a time range.
	GetRange(ctx context.Context, start, end time.Time) ([]Event, error)

	// RecentBuildIDs returns the ids of the most recently started builds,
	// newest first.
	RecentBuildIDs(ctx context.Context, limit int) ([]string, error)

	// Close closes the store and releases resources.
	Close() error
}
