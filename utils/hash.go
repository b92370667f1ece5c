package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash generates a stable identity for document content: the SHA-256
// digest of the UTF-8 bytes as 64 lowercase hex characters. Equal content
// always produces an equal hash, which is what deduplication keys on.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
