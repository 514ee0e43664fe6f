package archive

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory snapshot store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[int]storedSnapshot // graphID -> revision -> snapshot
	closed bool
}

// storedSnapshot holds snapshot data with metadata for List().
type storedSnapshot struct {
	data      []byte
	timestamp time.Time
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[int]storedSnapshot),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(graphID string, data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	if m.data[graphID] == nil {
		m.data[graphID] = make(map[int]storedSnapshot)
	}

	revision := 1
	for rev := range m.data[graphID] {
		if rev >= revision {
			revision = rev + 1
		}
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[graphID][revision] = storedSnapshot{
		data:      stored,
		timestamp: time.Now().UTC(),
	}
	return revision, nil
}

// Load implements Store.
func (m *MemoryStore) Load(graphID string, revision int) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	snap, exists := m.data[graphID][revision]
	if !exists {
		return nil, ErrNotFound
	}

	out := make([]byte, len(snap.data))
	copy(out, snap.data)
	return out, nil
}

// LoadLatest implements Store.
func (m *MemoryStore) LoadLatest(graphID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	latest := 0
	for rev := range m.data[graphID] {
		if rev > latest {
			latest = rev
		}
	}
	if latest == 0 {
		return nil, ErrNotFound
	}

	snap := m.data[graphID][latest]
	out := make([]byte, len(snap.data))
	copy(out, snap.data)
	return out, nil
}

// List implements Store.
func (m *MemoryStore) List(graphID string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data[graphID]))
	for rev, snap := range m.data[graphID] {
		infos = append(infos, Info{
			GraphID:   graphID,
			Revision:  rev,
			Timestamp: snap.timestamp,
			Size:      int64(len(snap.data)),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Revision < infos[j].Revision
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(graphID string, revision int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data[graphID], revision)
	return nil
}

// DeleteGraph implements Store.
func (m *MemoryStore) DeleteGraph(graphID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, graphID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}
