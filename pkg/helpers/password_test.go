package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(4) // minimal cost keeps the test fast

	hash, err := h.Hash("hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, h.Compare(hash, "hunter2"))
	assert.False(t, h.Compare(hash, "hunter3"))
	assert.False(t, h.Compare("not-a-hash", "hunter2"))
}

func TestBcryptHasher_HashesDiffer(t *testing.T) {
	h := NewBcryptHasher(4)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b) // salted
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, 10, NewBcryptHasher(99).Cost)
	assert.Equal(t, 10, NewBcryptHasher(0).Cost)
	assert.Equal(t, 12, NewBcryptHasher(12).Cost)
}
