// Package checksum computes content digests of published files.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Algo names the digest algorithm recorded in manifests.
const Algo = "sha256"

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
