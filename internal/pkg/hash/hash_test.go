package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashers_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		h    Hash
	}{
		{name: "bcrypt", h: NewBcrypt(bcrypt.MinCost, "pepper")},
		{name: "argon2id", h: NewArgon2id("pepper")},
		{name: "hmac", h: NewHMACSHA256("secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := tt.h.Hash("483920")
			require.NoError(t, err)
			require.NotEmpty(t, digest)

			assert.True(t, tt.h.Verify(string(digest), "483920"))
			assert.False(t, tt.h.Verify(string(digest), "000000"))
			assert.False(t, tt.h.Verify("", "483920"))
		})
	}
}

func TestHMACSHA256_Deterministic(t *testing.T) {
	h := NewHMACSHA256("secret")
	a, _ := h.Hash("123456")
	b, _ := h.Hash("123456")
	assert.Equal(t, a, b)

	other := NewHMACSHA256("other")
	assert.False(t, other.Verify(string(a), "123456"))
}

func TestArgon2id_RejectsMalformed(t *testing.T) {
	h := NewArgon2id("")
	assert.False(t, h.Verify("$argon2id$v=19$m=1,t=1$bad", "x"))
	assert.False(t, h.Verify("$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5", "x"))
}

func TestNewPassword(t *testing.T) {
	h, err := NewPassword(PasswordConfig{Algorithm: "argon2id"})
	require.NoError(t, err)
	assert.IsType(t, &Argon2id{}, h)

	h, err = NewPassword(PasswordConfig{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.IsType(t, &Bcrypt{}, h)

	_, err = NewPassword(PasswordConfig{Algorithm: "md5"})
	assert.Error(t, err)
}
