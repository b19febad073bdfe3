package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/helmward/helmboard/pkg/graph"
	"github.com/helmward/helmboard/pkg/observability"
)

// MemoryStore is an in-memory record store for tests and for serving a
// fixture file without a database. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records []graph.Record
	index   map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]int)}
}

// LoadFile creates a memory store pre-populated from a JSON file containing
// an array of subsystem records.
func LoadFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records []graph.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	s := NewMemoryStore()
	for _, rec := range records {
		if err := s.Put(context.Background(), rec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Snapshot returns a coherent copy of all records under one lock hold.
func (s *MemoryStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]graph.Record, len(s.records))
	for i, rec := range s.records {
		rec.DependsOn = append([]string(nil), rec.DependsOn...)
		records[i] = rec
	}
	observability.Store().OnSnapshotFetch(ctx, len(records), time.Since(start), nil)
	return &Snapshot{
		ID:      uuid.NewString(),
		TakenAt: time.Now(),
		Records: records,
	}, nil
}

// Put inserts or replaces a record by ID, preserving insertion order for
// existing IDs so snapshots stay stable across status updates.
func (s *MemoryStore) Put(ctx context.Context, rec graph.Record) error {
	if rec.ID == "" {
		return graph.ErrInvalidNodeID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[rec.ID]; ok {
		s.records[i] = rec
		return nil
	}
	s.index[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	return nil
}

// Delete removes a record by ID. Missing IDs are ignored.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.records); j++ {
		s.index[s.records[j].ID] = j
	}
	return nil
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Writer = (*MemoryStore)(nil)
)
