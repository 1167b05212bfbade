package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotContains(t, digest, "correct horse")

	assert.NoError(t, hasher.Compare(digest, "correct horse battery staple"))
	assert.Error(t, hasher.Compare(digest, "wrong password"))
}

func TestBcryptHasher_DistinctDigests(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	// Each digest embeds a fresh salt.
	assert.NotEqual(t, first, second)
	assert.NoError(t, hasher.Compare(first, "same password"))
	assert.NoError(t, hasher.Compare(second, "same password"))
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	assert.Error(t, hasher.Compare("not-a-bcrypt-digest", "anything"))
	assert.Error(t, hasher.Compare("", "anything"))
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	t.Parallel()

	// Out-of-range costs fall back to the library default.
	for _, cost := range []int{-1, 0, 3, 32} {
		hasher := NewBcryptHasher(cost)
		assert.Equal(t, bcrypt.DefaultCost, hasher.cost, "cost %d", cost)
	}

	hasher := NewBcryptHasher(12)
	assert.Equal(t, 12, hasher.cost)
}
