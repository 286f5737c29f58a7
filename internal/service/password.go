package service

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-SHA512 parameters. The stored representation self-describes the
// iteration count and salt, so these can be raised later without breaking
// verification of existing hashes.
const (
	pbkdf2Iterations = 100_000
	pbkdf2SaltLen    = 16
	pbkdf2KeyLen     = 64
)

// HashPassword derives a salted PBKDF2-SHA512 hash of password and returns
// it in the form "iterations:saltHex:hashHex".
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}

	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return fmt.Sprintf("%d:%s:%s", pbkdf2Iterations, hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// VerifyPassword recomputes the derivation with the stored salt and
// iteration count and compares in constant time. Any malformed stored
// hash fails closed (returns false).
func VerifyPassword(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}

	parts := strings.Split(stored, ":")
	if len(parts) != 3 {
		return false
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations < 1 {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return false
	}
	expected, err := hex.DecodeString(parts[2])
	if err != nil || len(expected) == 0 {
		return false
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha512.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}
