package hash

import (
	"fmt"
	"strings"
)

// Hash is a one-way function with a verify step.
type Hash interface {
	// Hash returns the encoded digest of plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches an encoded digest produced by Hash.
	Verify(hashed, plaintext string) bool
}

const (
	// AlgoBcrypt selects bcrypt for password storage.
	AlgoBcrypt = "bcrypt"
	// AlgoArgon2id selects argon2id for password storage.
	AlgoArgon2id = "argon2id"
)

// PasswordConfig configures the password hasher picked by NewPassword.
type PasswordConfig struct {
	Algorithm  string
	BcryptCost int
	Pepper     string
}

// NewPassword returns the password hasher for cfg.Algorithm.
func NewPassword(cfg PasswordConfig) (Hash, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Algorithm)) {
	case "", AlgoBcrypt:
		return NewBcrypt(cfg.BcryptCost, cfg.Pepper), nil
	case AlgoArgon2id:
		return NewArgon2id(cfg.Pepper), nil
	default:
		return nil, fmt.Errorf("hash: unknown password algorithm %q", cfg.Algorithm)
	}
}
