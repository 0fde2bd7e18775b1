package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gametracker/internal/platform/crypto"
	"gametracker/internal/testutil"
	"gametracker/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUsers is an in-memory user.Repository.
type memUsers struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]user.User{}}
}

func (m *memUsers) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) UsernameTaken(_ context.Context, username, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id string, _ user.ProfileUpdate) (user.User, error) {
	return m.GetByID(context.Background(), id)
}

func newTestService() *Service {
	return NewService(testutil.TestSecret, time.Hour, user.NewService(newMemUsers()))
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Link@Hyrule.test", "link", "triforce")
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "link@hyrule.test", registered.User.Email)
	assert.NotEqual(t, "triforce", registered.User.PasswordHash)

	claims, err := crypto.ParseToken(testutil.TestSecret, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.Sub)
	assert.Equal(t, "link", claims.Username)

	t.Run("login", func(t *testing.T) {
		session, err := svc.Login(ctx, "link@hyrule.test", "triforce")
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, session.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "link@hyrule.test", "ganon")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "zelda@hyrule.test", "triforce")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := svc.Register(ctx, "link@hyrule.test", "other", "triforce")
		assert.ErrorIs(t, err, user.ErrAlreadyExists)
	})

	t.Run("me", func(t *testing.T) {
		u, err := svc.Me(ctx, registered.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "link", u.Username)

		_, err = svc.Me(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestHTTPHandler_Register(t *testing.T) {
	handler := NewHTTPHandler(newTestService())

	tests := []struct {
		name     string
		body     any
		wantCode int
		wantErr  string
	}{
		{"created", map[string]any{"email": "link@hyrule.test", "username": "link", "password": "triforce"}, http.StatusCreated, ""},
		{"duplicate", map[string]any{"email": "link@hyrule.test", "username": "link", "password": "triforce"}, http.StatusConflict, "CONFLICT"},
		{"bad email", map[string]any{"email": "nope", "username": "zelda", "password": "triforce"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"short username", map[string]any{"email": "z@hyrule.test", "username": "zz", "password": "triforce"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"long username", map[string]any{"email": "z@hyrule.test", "username": strings.Repeat("z", 31), "password": "triforce"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"username chars", map[string]any{"email": "z@hyrule.test", "username": "zel da!", "password": "triforce"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"short password", map[string]any{"email": "z@hyrule.test", "username": "zelda", "password": "abc"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed json", "{", http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Register(w, testutil.NewRequest(http.MethodPost, "/api/auth/register", tt.body))

			res := testutil.RecordHTTPResponse(w)
			assert.Equal(t, tt.wantCode, res.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, res.ErrorCode())
			}
		})
	}
}

func TestHTTPHandler_LoginAndMe(t *testing.T) {
	svc := newTestService()
	handler := NewHTTPHandler(svc)
	registered, err := svc.Register(context.Background(), "link@hyrule.test", "link", "triforce")
	require.NoError(t, err)

	t.Run("login ok", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Login(w, testutil.NewRequest(http.MethodPost, "/api/auth/login", map[string]any{
			"email": " link@hyrule.test ", "password": "triforce",
		}))

		res := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusOK, res.Code)
		data := res.Data().(map[string]interface{})
		assert.NotEmpty(t, data["token"])
		assert.NotContains(t, data["user"], "password_hash")
		assert.False(t, strings.Contains(w.Body.String(), "PasswordHash"))
	})

	t.Run("login wrong password", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Login(w, testutil.NewRequest(http.MethodPost, "/api/auth/login", map[string]any{
			"email": "link@hyrule.test", "password": "ganon",
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.WithUser(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), registered.User.ID)
		handler.Me(w, r)

		res := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "link", res.Data().(map[string]interface{})["username"])
	})

	t.Run("me without user", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Me(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
