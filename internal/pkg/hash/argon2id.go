package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var errArgon2Format = errors.New("hash: malformed argon2id digest")

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// Argon2id hashes secrets with argon2id using the PHC string format.
type Argon2id struct {
	params    argon2Params
	saltLen   uint32
	keyLen    uint32
	pepper    string
	semaphore chan struct{}
}

// NewArgon2id returns an argon2id hasher (32MB, t=3, p=2). At most two
// digests are computed concurrently to cap memory use.
func NewArgon2id(pepper string) *Argon2id {
	return &Argon2id{
		params:    argon2Params{memory: 32 * 1024, iterations: 3, parallelism: 2},
		saltLen:   16,
		keyLen:    32,
		pepper:    pepper,
		semaphore: make(chan struct{}, 2),
	}
}

func (a *Argon2id) Hash(plaintext string) ([]byte, error) {
	salt := make([]byte, a.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("hash: generate salt: %w", err)
	}

	key := a.derive(plaintext, salt, a.params, a.keyLen)
	b64 := base64.RawStdEncoding

	return fmt.Appendf(nil, "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.params.memory, a.params.iterations, a.params.parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

func (a *Argon2id) Verify(hashed, plaintext string) bool {
	p, salt, want, err := parseArgon2id(hashed)
	if err != nil || plaintext == "" {
		return false
	}

	got := a.derive(plaintext, salt, p, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1
}

func (a *Argon2id) derive(plaintext string, salt []byte, p argon2Params, keyLen uint32) []byte {
	a.semaphore <- struct{}{}
	defer func() { <-a.semaphore }()

	return argon2.IDKey([]byte(plaintext+a.pepper), salt, p.iterations, p.memory, p.parallelism, keyLen)
}

func parseArgon2id(encoded string) (argon2Params, []byte, []byte, error) {
	var p argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, errArgon2Format
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, errArgon2Format
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, errArgon2Format
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, errArgon2Format
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, errArgon2Format
	}

	return p, salt, key, nil
}
