package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptMaxPasswordLength is the longest password bcrypt will accept.
// Anything longer is silently truncated by the algorithm, so we reject it
// up front.
const bcryptMaxPasswordLength = 72

// PasswordHasher defines the operations for hashing and verifying
// credentials. Implementations must never log or store the plaintext.
type PasswordHasher interface {
	// Hash derives a one-way hash from a plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Compare checks a plaintext password against a stored hash. It returns
	// nil when they match and a non-nil error when they do not, or when the
	// hash is malformed.
	Compare(ctx context.Context, hashedPassword, password string) error
}

// bcryptPasswordHasher implements PasswordHasher using bcrypt.
type bcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher creates a PasswordHasher with the given bcrypt
// cost. A cost outside bcrypt's valid range falls back to the default.
func NewBcryptPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptPasswordHasher{cost: cost}
}

func (h *bcryptPasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("cannot hash an empty password")
	}
	if len(password) > bcryptMaxPasswordLength {
		return "", fmt.Errorf("password exceeds maximum length of %d bytes", bcryptMaxPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (h *bcryptPasswordHasher) Compare(ctx context.Context, hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return fmt.Errorf("password comparison failed: %w", err)
	}
	return nil
}
