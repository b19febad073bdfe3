package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for malformed record sets.
var (
	// ErrInvalidNodeID is returned by Build when a record has an empty ID.
	ErrInvalidNodeID = errors.New("invalid node id")

	// ErrDuplicateNodeID is returned by Build when two records share an ID.
	ErrDuplicateNodeID = errors.New("duplicate node id")
)

// UnknownDependencyError reports a DependsOn entry referencing an ID that is
// not present in the snapshot. The dangling edge is never silently dropped.
type UnknownDependencyError struct {
	NodeID    string // the record declaring the dependency
	MissingID string // the referenced ID absent from the snapshot
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("subsystem %q depends on unknown subsystem %q", e.NodeID, e.MissingID)
}

// SelfDependencyError reports a record listing its own ID in DependsOn, the
// degenerate single-node cycle.
type SelfDependencyError struct {
	NodeID string
}

func (e *SelfDependencyError) Error() string {
	return fmt.Sprintf("subsystem %q depends on itself", e.NodeID)
}

// CycleDetectedError reports a dependency cycle. Path is one witness cycle
// along depends-on edges; its first and last elements are the same ID.
type CycleDetectedError struct {
	Path []string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}
