package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/config"
)

// minSecretKeyLength is the minimum acceptable length for the HMAC signing
// key. Shorter keys are rejected at startup rather than silently weakening
// every token the service issues.
const minSecretKeyLength = 32

// signingMethods maps configured algorithm names to jwt signing methods.
var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// tokenClaims is the wire representation of a token payload.
type tokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// hmacJWTService implements JWTService using HMAC-signed JWTs.
type hmacJWTService struct {
	signingKey           []byte
	method               jwt.SigningMethod
	accessTokenLifetime  time.Duration
	refreshTokenLifetime time.Duration

	// timeFunc returns the current time. Injectable for testing expiry.
	timeFunc func() time.Time
}

// NewJWTService creates a JWTService from the given configuration. It
// returns an error when the secret key is too short or the algorithm is
// not supported, so misconfiguration fails at startup instead of at the
// first login.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.SecretKey) < minSecretKeyLength {
		return nil, fmt.Errorf("JWT secret key must be at least %d characters long", minSecretKeyLength)
	}

	method, ok := signingMethods[cfg.Algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported JWT signing algorithm: %q", cfg.Algorithm)
	}

	return &hmacJWTService{
		signingKey:           []byte(cfg.SecretKey),
		method:               method,
		accessTokenLifetime:  time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute,
		refreshTokenLifetime: time.Duration(cfg.RefreshTokenExpireMinutes) * time.Minute,
		timeFunc:             time.Now,
	}, nil
}

func (s *hmacJWTService) GenerateAccessToken(ctx context.Context, email string) (string, error) {
	return s.generateToken(email, TokenTypeAccess, s.accessTokenLifetime)
}

func (s *hmacJWTService) GenerateRefreshToken(ctx context.Context, email string) (string, error) {
	return s.generateToken(email, TokenTypeRefresh, s.refreshTokenLifetime)
}

func (s *hmacJWTService) generateToken(email, tokenType string, lifetime time.Duration) (string, error) {
	if email == "" {
		return "", fmt.Errorf("cannot generate token: email is empty")
	}

	now := s.timeFunc()
	claims := tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *hmacJWTService) ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, TokenTypeAccess, ErrInvalidToken, ErrExpiredToken)
}

func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, TokenTypeRefresh, ErrInvalidRefreshToken, ErrExpiredRefreshToken)
}

// validateToken verifies signature and expiry first, then checks the token
// kind, so a well-formed token of the wrong kind is reported as
// ErrWrongTokenType rather than as invalid.
func (s *hmacJWTService) validateToken(tokenString, wantType string, errInvalid, errExpired error) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errExpired
		}
		return nil, fmt.Errorf("%w: %v", errInvalid, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", errInvalid)
	}
	if claims.TokenType != TokenTypeAccess && claims.TokenType != TokenTypeRefresh {
		return nil, fmt.Errorf("%w: missing or unknown token_type claim", errInvalid)
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("%w: expected %s token, got %s", ErrWrongTokenType, wantType, claims.TokenType)
	}

	return &Claims{
		Subject:   claims.Subject,
		TokenType: claims.TokenType,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
