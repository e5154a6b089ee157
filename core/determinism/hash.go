// Package determinism - Reproducible request identity
// Two requests with equal content always hash equally, across processes
// and releases, so a hash can be quoted back to reproduce an estimate.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"reuse-cost/internal/errors"
)

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// HashJSON hashes the JSON encoding of v under namespace. Struct fields
// encode in declaration order and map keys sorted, so the encoding is
// canonical for the request types it is used with.
func HashJSON(namespace string, v interface{}) (ContentHash, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return ContentHash{}, errors.Internal("hash "+namespace+" content", err)
	}
	buf := make([]byte, 0, len(namespace)+1+len(data))
	buf = append(buf, namespace...)
	buf = append(buf, ':')
	buf = append(buf, data...)
	return ComputeHash(buf), nil
}
