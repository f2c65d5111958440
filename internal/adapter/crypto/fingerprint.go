package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint is the hex BLAKE2b-256 digest of the exact source bytes
func Fingerprint(sourceText string) string {
	sum := blake2b.Sum256([]byte(sourceText))
	return hex.EncodeToString(sum[:])
}
