package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several vessels (or several simulation runs) share
// one cache backend and need separate key namespaces.
//
// Example usage:
//
//	// Per-vessel keys
//	vesselKeyer := NewScopedKeyer(NewDefaultKeyer(), "vessel:aurora:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ViewKey generates a prefixed key for a computed view.
func (k *ScopedKeyer) ViewKey(snapshotHash string, opts ViewKeyOpts) string {
	return k.prefix + k.inner.ViewKey(snapshotHash, opts)
}

// SnapshotKey generates a prefixed key for a raw snapshot payload.
func (k *ScopedKeyer) SnapshotKey(snapshotID string) string {
	return k.prefix + k.inner.SnapshotKey(snapshotID)
}
