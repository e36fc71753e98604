package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("pw123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "pw123", hash)
	assert.True(t, CheckPassword("pw123", hash))
}

func TestHashPassword_SaltRandomization(t *testing.T) {
	first, err := HashPassword("same-password")
	assert.NoError(t, err)
	second, err := HashPassword("same-password")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("same-password", first))
	assert.True(t, CheckPassword("same-password", second))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("correct-password")
	assert.NoError(t, err)
	assert.False(t, CheckPassword("wrong-password", hash))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty hash", hash: ""},
		{name: "not a bcrypt hash", hash: "plaintext-in-db"},
		{name: "truncated hash", hash: "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, CheckPassword("anything", tt.hash))
		})
	}
}
