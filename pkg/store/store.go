// Package store provides access to the subsystem record store.
//
// The store is the engine's upstream collaborator: it owns the persistent
// subsystem records that the scenario engine and the editing UI mutate. The
// engine never writes through this package during a computation pass - it
// only takes snapshots.
//
// # Snapshots
//
// A [Snapshot] is one coherent, immutable set of records taken at a single
// point in time. The engine contract is fetch-then-compute: every
// computation pass operates on exactly one snapshot, so an interactive edit
// and a poll-driven refresh can never be interleaved into a single pass.
// Implementations must produce each snapshot from a single atomic read.
package store

import (
	"context"
	"time"

	"github.com/helmward/helmboard/pkg/graph"
)

// Snapshot is one coherent, immutable set of subsystem records.
// Records are in stable store order; the slice and its contents must not be
// mutated after the snapshot is taken.
type Snapshot struct {
	// ID uniquely identifies this snapshot (a fresh UUID per fetch).
	ID string `json:"id" bson:"id"`

	// TakenAt is the fetch time, used by the last-snapshot-wins guard:
	// a result computed from an older snapshot is discarded once a fresher
	// one has been applied.
	TakenAt time.Time `json:"taken_at" bson:"taken_at"`

	Records []graph.Record `json:"records" bson:"records"`
}

// Store reads subsystem records.
type Store interface {
	// Snapshot returns one coherent snapshot of all records.
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Writer is the mutation surface used by the scenario engine and the
// editing UI. The computation engine itself never writes.
type Writer interface {
	// Put inserts or replaces a record by ID.
	Put(ctx context.Context, rec graph.Record) error

	// Delete removes a record by ID. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}
