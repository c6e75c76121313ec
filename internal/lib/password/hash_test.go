package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	tests := []struct {
		name  string
		plain string
	}{
		{name: "regular", plain: "password123"},
		{name: "special chars", plain: "p@ssw0rd!#$%^&*()"},
		{name: "unicode", plain: "пароль-администратора"},
		{name: "empty", plain: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.plain)
			require.NoError(t, err)
			assert.NotEqual(t, tt.plain, hash)
			assert.True(t, h.Verify(tt.plain, hash))
			assert.False(t, h.Verify(tt.plain+"x", hash))
		})
	}
}

func TestHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same", first))
	assert.True(t, h.Verify("same", second))
}

func TestHasher_VerifyAcrossCosts(t *testing.T) {
	hash, err := NewHasher(bcrypt.MinCost).Hash("s3cret")
	require.NoError(t, err)

	assert.True(t, NewHasher(0).Verify("s3cret", hash))
}

func TestHasher_CorruptHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("anything", ""))
	assert.False(t, h.Verify("anything", "not-a-bcrypt-hash"))
}

func TestHasher_Errors(t *testing.T) {
	_, err := NewHasher(bcrypt.MaxCost+1).Hash("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password.Hash")

	_, err = NewHasher(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	require.Error(t, err)
}

func TestNewHasher_DefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, 5, NewHasher(5).cost)
}
