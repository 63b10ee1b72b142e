package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// AuthService authenticates credentials and issues token pairs.
type AuthService struct {
	userStore      store.UserStore
	passwordHasher auth.PasswordHasher
	jwtService     auth.JWTService
	logger         *slog.Logger
}

// NewAuthService creates an AuthService with the given dependencies.
func NewAuthService(
	userStore store.UserStore,
	passwordHasher auth.PasswordHasher,
	jwtService auth.JWTService,
	log *slog.Logger,
) *AuthService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if passwordHasher == nil {
		panic("passwordHasher cannot be nil")
	}
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		userStore:      userStore,
		passwordHasher: passwordHasher,
		jwtService:     jwtService,
		logger:         log.With(slog.String("component", "auth_service")),
	}
}

// Authenticate verifies an email and password pair. Both an unknown email
// and a wrong password return ErrInvalidCredentials so the response does
// not reveal whether the account exists. The two cases are distinguishable
// only in the server logs.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	emailHash := redact.Identifier(email)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Info("login attempt for unknown email",
				slog.String("event", "login_unknown_email"),
				slog.String("email_hash", emailHash))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.passwordHasher.Compare(ctx, user.HashedPassword, password); err != nil {
		log.Info("login attempt with wrong password",
			slog.String("event", "login_bad_password"),
			slog.String("email_hash", emailHash))
		return nil, ErrInvalidCredentials
	}

	log.Info("login succeeded",
		slog.String("event", "login_success"),
		slog.String("email_hash", emailHash))
	return user, nil
}

// IssueTokenPair generates a fresh access and refresh token for email.
func (s *AuthService) IssueTokenPair(ctx context.Context, email string) (*auth.TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &auth.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh validates a refresh token and issues a new token pair for its
// subject. The account must still exist; a token for a deleted user
// returns store.ErrUserNotFound.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if store.IsNotFoundError(err) {
			log := logger.FromContextOrDefault(ctx, s.logger)
			log.Info("refresh attempt for deleted account",
				slog.String("event", "refresh_unknown_subject"),
				slog.String("email_hash", redact.Identifier(claims.Subject)))
		}
		return nil, fmt.Errorf("failed to resolve refresh token subject: %w", err)
	}

	return s.IssueTokenPair(ctx, user.Email)
}

// ResolveAccessToken validates a bearer token and loads the account it was
// issued for. Any token failure, including a refresh token presented as a
// bearer token or a token for a deleted account, is reported as
// domain.ErrUnauthorized.
func (s *AuthService) ResolveAccessToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.jwtService.ValidateAccessToken(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	user, err := s.userStore.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: token subject no longer exists", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}
	return user, nil
}
