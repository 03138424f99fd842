package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short hex fingerprint of an identifier.
//
// It hashes with SHA-256 and truncates to 6 bytes (12 hex chars); enough to
// correlate log lines without exposing the identifier itself.
func Fingerprint(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:6])
}
