package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndCompare(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	hasher := NewBcryptPasswordHasher(bcrypt.MinCost)

	hashed, err := hasher.Hash(ctx, "correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.NoError(t, hasher.Compare(ctx, hashed, "correct horse battery staple"))
	assert.Error(t, hasher.Compare(ctx, hashed, "wrong password"))
}

func TestBcryptHashRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	hasher := NewBcryptPasswordHasher(bcrypt.MinCost)

	_, err := hasher.Hash(ctx, "")
	assert.Error(t, err)

	_, err = hasher.Hash(ctx, strings.Repeat("a", bcryptMaxPasswordLength+1))
	assert.Error(t, err)
}

func TestBcryptHashesAreSalted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	hasher := NewBcryptPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash(ctx, "same password")
	require.NoError(t, err)
	second, err := hasher.Hash(ctx, "same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, hasher.Compare(ctx, first, "same password"))
	assert.NoError(t, hasher.Compare(ctx, second, "same password"))
}

func TestBcryptCompareMalformedHash(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	hasher := NewBcryptPasswordHasher(bcrypt.MinCost)

	assert.Error(t, hasher.Compare(ctx, "not-a-bcrypt-hash", "anything"))
}

func TestNewBcryptPasswordHasherCostFallback(t *testing.T) {
	t.Parallel()

	hasher, ok := NewBcryptPasswordHasher(999).(*bcryptPasswordHasher)
	require.True(t, ok)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
