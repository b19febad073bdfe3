package pipeline

import (
	"sync"
	"time"

	"github.com/helmward/helmboard/pkg/store"
)

// Sequencer enforces last-snapshot-wins across concurrent computations.
//
// When edits and poll refreshes overlap, two passes over different snapshots
// can finish out of order. The sequencer orders results by snapshot fetch
// time, not by pass completion: a result is committed only if no result from
// a fresher snapshot has been committed already. Callers discard any result
// whose commit is refused.
type Sequencer struct {
	mu        sync.Mutex
	appliedAt time.Time
	appliedID string
}

// NewSequencer creates a sequencer with no committed snapshot.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Commit records snap's result as the latest if it is at least as fresh as
// the newest committed snapshot. It reports whether the result should be
// applied; false means a fresher snapshot already won and the caller's
// result is stale.
//
// Ties on TakenAt commit, so re-computing the same snapshot (for example
// after a cache flush) still applies.
func (s *Sequencer) Commit(snap *store.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.TakenAt.Before(s.appliedAt) {
		return false
	}
	s.appliedAt = snap.TakenAt
	s.appliedID = snap.ID
	return true
}

// Applied returns the ID and fetch time of the newest committed snapshot.
// The ID is empty before the first commit.
func (s *Sequencer) Applied() (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appliedID, s.appliedAt
}
