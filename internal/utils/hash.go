package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// TokenMatchesHash compares in constant time.
func TokenMatchesHash(token string, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashToken(token)), []byte(hash)) == 1
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
