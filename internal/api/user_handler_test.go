package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// withStubUser injects an authenticated user without running real token
// validation.
func withStubUser(user *domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
		})
	}
}

func newUserTestRouter(t *testing.T, userStore *mocks.MockUserStore) (chi.Router, *domain.User) {
	t.Helper()

	caller, err := domain.NewUser("Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	caller.HashedPassword = "hashed"

	userService := service.NewUserService(nil, userStore, &mocks.MockPasswordHasher{}, nil)
	handler := NewUserHandler(userService)

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(withStubUser(caller))
		r.Post("/users", handler.Create)
		r.Get("/users", handler.List)
		r.Get("/users/{id}", handler.Get)
		r.Put("/users/{id}", handler.Update)
		r.Delete("/users/{id}", handler.Delete)
	})
	return router, caller
}

func TestUserListEndpoint(t *testing.T) {
	t.Parallel()

	other, err := domain.NewUser("Bob", "bob@example.com", "password123")
	require.NoError(t, err)
	other.HashedPassword = "hashed"

	router, caller := newUserTestRouter(t, &mocks.MockUserStore{
		ListFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{other}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "bob@example.com", resp[0].Email)
	assert.NotEqual(t, caller.ID, resp[0].ID)
}

func TestUserGetEndpoint(t *testing.T) {
	t.Parallel()

	known := uuid.New()
	target, err := domain.NewUser("Bob", "bob@example.com", "password123")
	require.NoError(t, err)
	target.ID = known
	target.HashedPassword = "hashed"

	router, _ := newUserTestRouter(t, &mocks.MockUserStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			if id == known {
				return target, nil
			}
			return nil, store.ErrUserNotFound
		},
	})

	t.Run("existing user", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/users/"+known.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "hashed")
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/users/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserCreateEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := newUserTestRouter(t, &mocks.MockUserStore{})

	rec := doAuthedRequest(t, router, http.MethodPost, "/users", "", SignupRequest{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "password123",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "carol@example.com", resp.Email)
}

func TestUserDeleteEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := newUserTestRouter(t, &mocks.MockUserStore{})

	req := httptest.NewRequest(http.MethodDelete, "/users/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUserUpdateEndpoint(t *testing.T) {
	t.Parallel()

	known := uuid.New()
	router, _ := newUserTestRouter(t, &mocks.MockUserStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			if id != known {
				return nil, store.ErrUserNotFound
			}
			user, err := domain.NewUser("Bob", "bob@example.com", "password123")
			if err != nil {
				return nil, err
			}
			user.ID = known
			user.HashedPassword = "hashed"
			return user, nil
		},
	})

	rec := doAuthedRequest(t, router, http.MethodPut, "/users/"+known.String(), "", UpdateUserRequest{
		Name: strPtrAPI("Robert"),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Robert", resp.Name)
}

func strPtrAPI(s string) *string { return &s }
