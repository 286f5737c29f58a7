package service

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/pbkdf2"
)

func TestHashPasswordFormat(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	parts := strings.Split(hash, ":")
	if len(parts) != 3 {
		t.Fatalf("expected 3 colon-separated parts, got %d: %s", len(parts), hash)
	}
	if parts[0] != fmt.Sprint(pbkdf2Iterations) {
		t.Errorf("iterations = %s, want %d", parts[0], pbkdf2Iterations)
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) != pbkdf2SaltLen {
		t.Errorf("salt %q: err=%v len=%d", parts[1], err, len(salt))
	}
	key, err := hex.DecodeString(parts[2])
	if err != nil || len(key) != pbkdf2KeyLen {
		t.Errorf("key %q: err=%v len=%d", parts[2], err, len(key))
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("samepassword")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("samepassword")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password must not be equal")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatal(err)
	}

	if !VerifyPassword("s3cret-password", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("", hash) {
		t.Error("empty password accepted")
	}
}

// lowCostHash builds a valid stored hash with few iterations so malformed
// variants can be derived from a known-good baseline quickly.
func lowCostHash(password string, iterations int) string {
	salt := []byte("0123456789abcdef")
	key := pbkdf2.Key([]byte(password), salt, iterations, 32, sha512.New)
	return fmt.Sprintf("%d:%s:%s", iterations, hex.EncodeToString(salt), hex.EncodeToString(key))
}

func TestVerifyPasswordHonorsStoredIterations(t *testing.T) {
	stored := lowCostHash("pw", 10)
	if !VerifyPassword("pw", stored) {
		t.Error("hash with non-default iteration count rejected")
	}
}

func TestVerifyPasswordMalformedStored(t *testing.T) {
	good := lowCostHash("pw", 10)
	parts := strings.Split(good, ":")

	cases := map[string]string{
		"empty":              "",
		"no separators":      "deadbeef",
		"two parts":          parts[0] + ":" + parts[1],
		"four parts":         good + ":extra",
		"bad iterations":     "abc:" + parts[1] + ":" + parts[2],
		"zero iterations":    "0:" + parts[1] + ":" + parts[2],
		"bad salt hex":       parts[0] + ":zzzz:" + parts[2],
		"empty salt":         parts[0] + "::" + parts[2],
		"bad key hex":        parts[0] + ":" + parts[1] + ":zzzz",
		"empty key":          parts[0] + ":" + parts[1] + ":",
		"bcrypt-shaped hash": "$2a$10$N9qo8uLOickgx2ZMRZoMye",
	}

	for name, stored := range cases {
		if VerifyPassword("pw", stored) {
			t.Errorf("%s: malformed stored hash verified", name)
		}
	}
}
