package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 of data as a 64-character hex string. Pipeline
// view keys are built from the hash of a snapshot's canonical record
// encoding, so identical record sets share a key across processes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced key "prefix:sha256(parts)". The full 256-bit
// digest is kept; truncating would trade collision safety for nothing.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
