package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the lowercase hex SHA-256 digest of text.
//
// Passwords are verified by comparing digests for equality, so the digest
// must be deterministic: the same plaintext always produces the same value.
// Salted schemes (bcrypt, argon2id) cannot satisfy that contract.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
