package mocks

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService.
type MockJWTService struct {
	GenerateAccessTokenFn  func(ctx context.Context, email string) (string, error)
	GenerateRefreshTokenFn func(ctx context.Context, email string) (string, error)
	ValidateAccessTokenFn  func(ctx context.Context, tokenString string) (*auth.Claims, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateAccessToken(ctx context.Context, email string) (string, error) {
	if m.GenerateAccessTokenFn != nil {
		return m.GenerateAccessTokenFn(ctx, email)
	}
	return "mock-access-token", nil
}

func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, email string) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, email)
	}
	return "mock-refresh-token", nil
}

func (m *MockJWTService) ValidateAccessToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateAccessTokenFn != nil {
		return m.ValidateAccessTokenFn(ctx, tokenString)
	}
	return nil, auth.ErrInvalidToken
}

func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return nil, auth.ErrInvalidRefreshToken
}

// MockPasswordHasher implements auth.PasswordHasher.
type MockPasswordHasher struct {
	HashFn    func(ctx context.Context, password string) (string, error)
	CompareFn func(ctx context.Context, hashedPassword, password string) error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

func (m *MockPasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(ctx, password)
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordHasher) Compare(ctx context.Context, hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(ctx, hashedPassword, password)
	}
	return nil
}
