package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/service"
	"github.com/72tommy72/HRMate/internal/util"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) add(user *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(context.Context, int, int) ([]model.User, error) { return nil, nil }

func (r *memUserRepo) Create(_ context.Context, params model.CreateUserParams) (*model.User, error) {
	user := &model.User{
		ID:           params.Username,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		Status:       model.UserStatusActive,
	}
	r.add(user)
	return user, nil
}

func (r *memUserRepo) Update(context.Context, string, model.UpdateUserParams) (*model.User, error) {
	return nil, nil
}

func (r *memUserRepo) UpdatePassword(context.Context, string, string) error { return nil }

func (r *memUserRepo) TouchLogin(context.Context, string) error { return nil }

func (r *memUserRepo) Delete(context.Context, string) (int64, error) { return 0, nil }

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.RefreshToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*model.RefreshToken)}
}

func (r *memTokenRepo) FindByTokenHash(_ context.Context, tokenHash string) (*model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenHash]
	if !ok || time.Now().After(token.ExpiresAt) {
		return nil, nil
	}
	copied := *token
	return &copied, nil
}

func (r *memTokenRepo) Create(_ context.Context, userID, tokenHash string, expiresAt time.Time) (*model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token := &model.RefreshToken{ID: tokenHash, UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	r.tokens[tokenHash] = token
	copied := *token
	return &copied, nil
}

func (r *memTokenRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, tokenHash)
	return nil
}

func (r *memTokenRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, hash)
		}
	}
	return nil
}

func (r *memTokenRepo) DeleteExpired(context.Context) (int64, error) { return 0, nil }

func newAuthFixture(t *testing.T) (*AuthMiddleware, *memUserRepo, string) {
	t.Helper()

	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	auth := service.NewAuthService(users, tokens, "test-secret-0123456789abcdef0123456789", 15*time.Minute, time.Hour, zerolog.Nop())

	hash, err := util.HashPassword("password123")
	require.NoError(t, err)
	users.add(&model.User{
		ID:           "user-1",
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Status:       model.UserStatusActive,
	})

	result, err := auth.Login(context.Background(), "admin", "password123")
	require.NoError(t, err)

	return NewAuthMiddleware(auth, users), users, result.Tokens.AccessToken
}

func TestAuthMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		require.NotNil(t, user)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing token", func(t *testing.T) {
		m, _, _ := newAuthFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		rec := httptest.NewRecorder()
		m.Handler(okHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		m, _, _ := newAuthFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		m.Handler(okHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes the user through", func(t *testing.T) {
		m, _, token := newAuthFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		m.Handler(okHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("suspended account is rejected despite a live token", func(t *testing.T) {
		m, users, token := newAuthFixture(t)
		users.mu.Lock()
		users.users["user-1"].Status = model.UserStatusSuspended
		users.mu.Unlock()

		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		m.Handler(okHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	withUser := func(role model.Role) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/qr-session/generate", nil)
		user := &model.User{ID: "user-1", Role: role, Status: model.UserStatusActive}
		return req.WithContext(context.WithValue(req.Context(), UserContextKey, user))
	}

	t.Run("allows a listed role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireRole(model.RoleAdmin)(okHandler).ServeHTTP(rec, withUser(model.RoleAdmin))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects other roles", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireRole(model.RoleAdmin)(okHandler).ServeHTTP(rec, withUser(model.RoleEmployee))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects anonymous requests", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/qr-session/generate", nil)
		RequireRole(model.RoleAdmin)(okHandler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
