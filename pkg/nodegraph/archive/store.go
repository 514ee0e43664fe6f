// Package archive provides revisioned persistence for serialized
// graph snapshots. A graph has no persistence of its own; callers
// snapshot its wire-format JSON into a Store and rehydrate later.
package archive

import (
	"errors"
	"time"
)

// Store persists graph snapshots keyed by graph id and revision.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a new snapshot for a graph and returns its revision.
	// Revisions start at 1 and increase monotonically per graph.
	Save(graphID string, data []byte) (int, error)

	// Load retrieves a specific snapshot revision.
	// Returns ErrNotFound if it doesn't exist.
	Load(graphID string, revision int) ([]byte, error)

	// LoadLatest retrieves the highest-revision snapshot for a graph.
	// Returns ErrNotFound if the graph has no snapshots.
	LoadLatest(graphID string) ([]byte, error)

	// List returns all snapshots for a graph, ordered by revision.
	// Returns an empty slice (not an error) if the graph has none.
	List(graphID string) ([]Info, error)

	// Delete removes a specific snapshot revision.
	// Returns nil if the snapshot doesn't exist.
	Delete(graphID string, revision int) error

	// DeleteGraph removes all snapshots for a graph.
	// Returns nil if the graph has no snapshots.
	DeleteGraph(graphID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides snapshot metadata without loading the data.
type Info struct {
	GraphID   string
	Revision  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for archive operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("archive store closed")
)
