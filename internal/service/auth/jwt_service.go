package auth

import (
	"context"
	"time"
)

// Token type values carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents the validated contents of a token.
type Claims struct {
	// Subject is the email address of the account the token was issued for.
	Subject string

	// TokenType is either TokenTypeAccess or TokenTypeRefresh.
	TokenType string

	// IssuedAt is when the token was created.
	IssuedAt time.Time

	// ExpiresAt is when the token expires.
	ExpiresAt time.Time

	// ID is the unique identifier (jti) of this token.
	ID string
}

// TokenPair bundles the access and refresh tokens issued together at login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// JWTService defines the operations for generating and validating
// authentication tokens. Access and refresh tokens are never
// interchangeable: each validation method accepts only its own kind.
type JWTService interface {
	// GenerateAccessToken creates a short-lived access token for the account
	// identified by email.
	GenerateAccessToken(ctx context.Context, email string) (string, error)

	// GenerateRefreshToken creates a longer-lived refresh token for the
	// account identified by email.
	GenerateRefreshToken(ctx context.Context, email string) (string, error)

	// ValidateAccessToken verifies an access token and returns its claims.
	// Returns ErrInvalidToken, ErrExpiredToken, or ErrWrongTokenType.
	ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error)

	// ValidateRefreshToken verifies a refresh token and returns its claims.
	// Returns ErrInvalidRefreshToken, ErrExpiredRefreshToken, or
	// ErrWrongTokenType.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}
