package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func testUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Test User", email, "password123")
	require.NoError(t, err)
	user.HashedPassword = "hashed:password123"
	user.Password = ""
	return user
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name      string
		userStore *mocks.MockUserStore
		hasher    *mocks.MockPasswordHasher
		wantErr   error
	}{
		{
			name: "valid credentials",
			userStore: &mocks.MockUserStore{
				GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
					return testUser(t, email), nil
				},
			},
			hasher: &mocks.MockPasswordHasher{},
		},
		{
			name:      "unknown email",
			userStore: &mocks.MockUserStore{},
			hasher:    &mocks.MockPasswordHasher{},
			wantErr:   ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			userStore: &mocks.MockUserStore{
				GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
					return testUser(t, email), nil
				},
			},
			hasher: &mocks.MockPasswordHasher{
				CompareFn: func(ctx context.Context, hashedPassword, password string) error {
					return errors.New("mismatch")
				},
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewAuthService(tc.userStore, tc.hasher, &mocks.MockJWTService{}, nil)
			user, err := svc.Authenticate(ctx, "alice@example.com", "password123")

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice@example.com", user.Email)
		})
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthenticateFailuresAreUniform(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	unknownEmail := NewAuthService(&mocks.MockUserStore{}, &mocks.MockPasswordHasher{}, &mocks.MockJWTService{}, nil)
	_, errUnknown := unknownEmail.Authenticate(ctx, "nobody@example.com", "whatever")

	wrongPassword := NewAuthService(
		&mocks.MockUserStore{
			GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return testUser(t, email), nil
			},
		},
		&mocks.MockPasswordHasher{
			CompareFn: func(ctx context.Context, hashedPassword, password string) error {
				return errors.New("mismatch")
			},
		},
		&mocks.MockJWTService{},
		nil,
	)
	_, errWrong := wrongPassword.Authenticate(ctx, "alice@example.com", "wrong")

	assert.Equal(t, errUnknown, errWrong)
}

func TestIssueTokenPair(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewAuthService(&mocks.MockUserStore{}, &mocks.MockPasswordHasher{}, &mocks.MockJWTService{
		GenerateAccessTokenFn: func(ctx context.Context, email string) (string, error) {
			return "access-for-" + email, nil
		},
		GenerateRefreshTokenFn: func(ctx context.Context, email string) (string, error) {
			return "refresh-for-" + email, nil
		},
	}, nil)

	pair, err := svc.IssueTokenPair(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "access-for-alice@example.com", pair.AccessToken)
	assert.Equal(t, "refresh-for-alice@example.com", pair.RefreshToken)
}

func TestRefresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	validClaims := &auth.Claims{Subject: "alice@example.com", TokenType: auth.TokenTypeRefresh}

	t.Run("valid refresh token", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(
			&mocks.MockUserStore{
				GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
					return testUser(t, email), nil
				},
			},
			&mocks.MockPasswordHasher{},
			&mocks.MockJWTService{
				ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
					return validClaims, nil
				},
			},
			nil,
		)

		pair, err := svc.Refresh(ctx, "some-refresh-token")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(&mocks.MockUserStore{}, &mocks.MockPasswordHasher{}, &mocks.MockJWTService{}, nil)
		_, err := svc.Refresh(ctx, "garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(
			&mocks.MockUserStore{},
			&mocks.MockPasswordHasher{},
			&mocks.MockJWTService{
				ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
					return validClaims, nil
				},
			},
			nil,
		)

		_, err := svc.Refresh(ctx, "token-for-deleted-user")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestResolveAccessToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	validClaims := &auth.Claims{Subject: "alice@example.com", TokenType: auth.TokenTypeAccess}

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(
			&mocks.MockUserStore{
				GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
					return testUser(t, email), nil
				},
			},
			&mocks.MockPasswordHasher{},
			&mocks.MockJWTService{
				ValidateAccessTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
					return validClaims, nil
				},
			},
			nil,
		)

		user, err := svc.ResolveAccessToken(ctx, "valid-token")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("refresh token presented as bearer", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(&mocks.MockUserStore{}, &mocks.MockPasswordHasher{}, &mocks.MockJWTService{
			ValidateAccessTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrWrongTokenType
			},
		}, nil)

		_, err := svc.ResolveAccessToken(ctx, "a-refresh-token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("token subject deleted", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(&mocks.MockUserStore{}, &mocks.MockPasswordHasher{}, &mocks.MockJWTService{
			ValidateAccessTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return validClaims, nil
			},
		}, nil)

		_, err := svc.ResolveAccessToken(ctx, "token-for-deleted-user")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
