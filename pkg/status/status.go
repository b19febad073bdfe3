// Package status defines the health-status scale shared by all subsystems.
//
// Statuses form a fixed total order from worst to best:
//
//	destroyed < critical < compromised < degraded < offline < operational < fully_operational
//
// Every comparison in the engine goes through this ordering - never string
// equality or declaration order. "Worse" always means lower in this order,
// and cascading a status through the dependency graph can only move a node
// down the scale, never up.
package status

import "fmt"

// Status is a health-status label for a subsystem.
type Status string

// The seven status labels, declared worst to best.
const (
	Destroyed        Status = "destroyed"
	Critical         Status = "critical"
	Compromised      Status = "compromised"
	Degraded         Status = "degraded"
	Offline          Status = "offline"
	Operational      Status = "operational"
	FullyOperational Status = "fully_operational"
)

// scale lists all statuses in ordinal order (index 0 = worst).
// This slice is the single source of truth for the ordering.
var scale = []Status{
	Destroyed,
	Critical,
	Compromised,
	Degraded,
	Offline,
	Operational,
	FullyOperational,
}

// ordinals maps each status to its position on the scale.
var ordinals = func() map[Status]int {
	m := make(map[Status]int, len(scale))
	for i, s := range scale {
		m[s] = i
	}
	return m
}()

// All returns the statuses in ordinal order, worst first.
// The returned slice is a copy and can be modified freely.
func All() []Status {
	out := make([]Status, len(scale))
	copy(out, scale)
	return out
}

// Valid reports whether s is one of the seven known labels.
func Valid(s Status) bool {
	_, ok := ordinals[s]
	return ok
}

// Parse converts a raw string into a Status.
// Returns an error naming the bad value if it is not on the scale.
func Parse(raw string) (Status, error) {
	s := Status(raw)
	if !Valid(s) {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// Ordinal returns the position of s on the scale (0 = worst).
// Panics if s is not a valid status; callers are expected to validate
// input at the boundary via Parse or Valid.
func Ordinal(s Status) int {
	ord, ok := ordinals[s]
	if !ok {
		panic(fmt.Sprintf("status: invalid status %q", s))
	}
	return ord
}

// Worse reports whether a is strictly worse than b.
func Worse(a, b Status) bool {
	return Ordinal(a) < Ordinal(b)
}

// Worst returns the worse of a and b (the ordinal minimum).
func Worst(a, b Status) Status {
	if Ordinal(a) <= Ordinal(b) {
		return a
	}
	return b
}
