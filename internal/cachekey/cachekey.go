// Package cachekey derives stable storage keys from request fields.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

const keyLength = 24

// Derive builds a deterministic, collision-resistant key from the given
// field map. Insertion order never matters: encoding/json writes map keys
// in sorted order, so identical field values always hash identically.
// Fields must be JSON-safe; marshalling such values cannot fail.
func Derive(fields map[string]any) string {
	data, _ := json.Marshal(fields)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:keyLength]
}
