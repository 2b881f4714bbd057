package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSHA256 produces deterministic keyed digests. It suits short-lived
// secrets such as reset codes where a slow KDF adds nothing.
type HMACSHA256 struct {
	secret []byte
}

// NewHMACSHA256 creates a keyed hasher.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

// Hash returns the hex encoded HMAC-SHA256 of plaintext.
func (s *HMACSHA256) Hash(plaintext string) ([]byte, error) {
	sum := s.sum(plaintext)
	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum)
	return out, nil
}

// Verify compares in constant time.
func (s *HMACSHA256) Verify(hashed, plaintext string) bool {
	want, err := hex.DecodeString(hashed)
	if err != nil || len(want) != sha256.Size {
		return false
	}
	return hmac.Equal(want, s.sum(plaintext))
}

func (s *HMACSHA256) sum(plaintext string) []byte {
	m := hmac.New(sha256.New, s.secret)
	m.Write([]byte(plaintext))
	return m.Sum(nil)
}
