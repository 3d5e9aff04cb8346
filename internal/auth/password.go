package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Stored credential format: hex(salt || derivedKey) with a 32-byte random
// salt and PBKDF2-SHA256 at 100000 iterations.
const (
	saltLen    = 32
	keyLen     = 32
	iterations = 100_000
)

func HashPassword(plain string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(plain), salt, iterations, keyLen, sha256.New)
	return hex.EncodeToString(append(salt, key...)), nil
}

func VerifyPassword(plain, stored string) bool {
	raw, err := hex.DecodeString(stored)
	if err != nil || len(raw) != saltLen+keyLen {
		return false
	}
	salt, storedKey := raw[:saltLen], raw[saltLen:]
	key := pbkdf2.Key([]byte(plain), salt, iterations, keyLen, sha256.New)
	return subtle.ConstantTimeCompare(key, storedKey) == 1
}
