package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// runInTransaction wraps store.RunInTransaction. A nil db runs fn without
// a transaction.
func runInTransaction(ctx context.Context, db *sql.DB, fn store.TxFn) error {
	if db == nil {
		return fn(ctx, nil)
	}
	return store.RunInTransaction(ctx, db, fn)
}

// UpdateUserInput carries the fields of a user update. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService manages user accounts. Passwords are hashed here; the store
// layer only ever sees the hash.
type UserService struct {
	db             *sql.DB
	userStore      store.UserStore
	passwordHasher auth.PasswordHasher
	logger         *slog.Logger
}

// NewUserService creates a UserService with the given dependencies.
func NewUserService(
	db *sql.DB,
	userStore store.UserStore,
	passwordHasher auth.PasswordHasher,
	log *slog.Logger,
) *UserService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if passwordHasher == nil {
		panic("passwordHasher cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &UserService{
		db:             db,
		userStore:      userStore,
		passwordHasher: passwordHasher,
		logger:         log.With(slog.String("component", "user_service")),
	}
}

// Signup creates a new account. Returns store.ErrEmailExists when the email
// is already registered.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, err
	}

	hashed, err := s.passwordHasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("account created",
		slog.String("event", "signup_success"),
		slog.String("user_id", user.ID.String()),
		slog.String("email_hash", redact.Identifier(user.Email)))
	return user, nil
}

// GetUser retrieves a single account by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// ListUsers retrieves every account.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// UpdateUser applies a partial update to an account inside a transaction,
// so the read-modify-write cannot race a concurrent update.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	var updated *domain.User

	err := runInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Email != nil {
			user.Email = domain.NormalizeEmail(*input.Email)
		}
		if input.Password != nil {
			hashed, err := s.passwordHasher.Hash(ctx, *input.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.HashedPassword = hashed
		}
		user.UpdatedAt = time.Now().UTC()

		if err := user.Validate(); err != nil {
			return err
		}
		if err := txStore.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes an account. Tasks owned by the account are removed by
// the database cascade.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("account deleted",
		slog.String("event", "user_deleted"),
		slog.String("user_id", id.String()))
	return nil
}
