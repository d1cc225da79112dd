package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

const saltBytes = 16

// hashPassword digests password+salt. Deterministic: the same pair always
// produces the same hex digest.
func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// NewPasswordRecord generates a fresh random salt and returns an opaque
// "salt$digest" record. Hex encoding guarantees the separator never occurs
// inside either component.
func NewPasswordRecord(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	salt := hex.EncodeToString(raw)
	return salt + "$" + hashPassword(password, salt), nil
}

// VerifyPassword recomputes the digest from the record's salt and compares in
// constant time. Malformed records verify false.
func VerifyPassword(password, record string) bool {
	salt, digest, ok := strings.Cut(record, "$")
	if !ok {
		return false
	}
	got := hashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(digest)) == 1
}
