package corrector

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the content digest of text used to detect whether a
// rule's original_text has changed since its last correction attempt
// (spec.md §4.3, Idempotence). Unlike rule IDs, this digest never needs
// to be collision-resistant across rules, only stable for one rule's
// text over time, so plain SHA-256 hex is sufficient.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
