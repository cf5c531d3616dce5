package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pass123")
	require.NoError(t, err)
	assert.NotEqual(t, "pass123", hash)
	assert.True(t, h.Compare(hash, "pass123"))
	assert.False(t, h.Compare(hash, "pass124"))
	assert.False(t, h.Compare("not-a-hash", "pass123"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_CostOutOfRange(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
}

func TestBcryptHasher_LongMultibytePassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	password := strings.Repeat("é", 50)
	require.Greater(t, len(password), 72)

	hash, err := h.Hash(password)
	require.NoError(t, err)
	assert.True(t, h.Compare(hash, password))
	assert.False(t, h.Compare(hash, strings.Repeat("é", 49)+"e"))
}

func TestBcryptHasher_DistinguishesBeyond72Bytes(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	base := strings.Repeat("a", 72)

	hash, err := h.Hash(base + "x")
	require.NoError(t, err)
	assert.False(t, h.Compare(hash, base+"y"))
}
