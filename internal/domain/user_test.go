package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("creates valid user with normalized email", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("Alice", "  Alice@Example.COM ", "secret123")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "secret123", user.Password)
		assert.Empty(t, user.HashedPassword)
		assert.False(t, user.CreatedAt.IsZero())
	})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "empty name",
			userName: "",
			email:    "a@x.com",
			password: "secret123",
			wantErr:  ErrEmptyName,
		},
		{
			name:     "empty email",
			userName: "Alice",
			email:    "",
			password: "secret123",
			wantErr:  ErrEmptyEmail,
		},
		{
			name:     "email without at sign",
			userName: "Alice",
			email:    "not-an-email",
			password: "secret123",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "email without domain dot",
			userName: "Alice",
			email:    "a@localhost",
			password: "secret123",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "empty password",
			userName: "Alice",
			email:    "a@x.com",
			password: "",
			wantErr:  ErrEmptyPassword,
		},
		{
			name:     "password beyond bcrypt limit",
			userName: "Alice",
			email:    "a@x.com",
			password: strings.Repeat("p", 73),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			user, err := NewUser(tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, user)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from the store has no plaintext password, only a hash.
	user := &User{
		ID:             uuid.New(),
		Name:           "Alice",
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a@x.com", NormalizeEmail(" A@X.Com\t"))
	assert.Equal(t, "a@x.com", NormalizeEmail("a@x.com"))
}
