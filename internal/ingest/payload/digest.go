package payload

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Digest computes the dedup digest for a payload: SHA-256 over the
// canonical JSON serialization. Struct field order is fixed and map keys
// are sorted by encoding/json, so byte-identical resubmissions always hash
// to the same value.
func Digest(f *CreditFile) (string, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("serialize payload for digest: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
