package echo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/EngKARANGWA/rugalika-backend/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory doubles for the full login flow.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, serrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, serrors.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) CountUsers(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeCodeRepo struct {
	mu    sync.Mutex
	codes []*domain.OneTimeCode
}

func (r *fakeCodeRepo) DeleteUnconsumed(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.codes[:0]
	for _, c := range r.codes {
		if c.Email != email || c.Consumed {
			kept = append(kept, c)
		}
	}
	r.codes = kept
	return nil
}

func (r *fakeCodeRepo) Store(_ context.Context, c *domain.OneTimeCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.codes = append(r.codes, &cp)
	return nil
}

func (r *fakeCodeRepo) Consume(_ context.Context, email, code string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.Email == email && c.Code == code && !c.Consumed && c.ExpiresAt.After(now) {
			c.Consumed = true
			return nil
		}
	}
	return serrors.ErrNotFound
}

func (r *fakeCodeRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.codes[:0]
	for _, c := range r.codes {
		if c.ExpiresAt.After(now) {
			kept = append(kept, c)
		} else {
			n++
		}
	}
	r.codes = kept
	return n, nil
}

type fakeRevokedRepo struct {
	mu      sync.Mutex
	entries map[string]*domain.RevokedToken
}

func (r *fakeRevokedRepo) Revoke(_ context.Context, e *domain.RevokedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.Token]; !ok {
		cp := *e
		r.entries[e.Token] = &cp
	}
	return nil
}

func (r *fakeRevokedRepo) IsRevoked(_ context.Context, token string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[token]
	return ok && e.ExpiresAt.After(now), nil
}

func (r *fakeRevokedRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for tok, e := range r.entries {
		if !e.ExpiresAt.After(now) {
			delete(r.entries, tok)
			n++
		}
	}
	return n, nil
}

type captureMailer struct {
	mu   sync.Mutex
	last string
}

func (m *captureMailer) SendOneTimeCode(_ context.Context, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = code
	return nil
}

func (m *captureMailer) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

type authFlowEnv struct {
	e      *echo.Echo
	mailer *captureMailer
}

func newAuthFlowEnv(t *testing.T) *authFlowEnv {
	t.Helper()

	users := &fakeUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "resident@example.com", Role: domain.RoleCitizen, Status: domain.UserStatusActive},
	}}

	tokens, err := services.NewTokenService(services.TokenConfig{
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
	})
	require.NoError(t, err)

	mailer := &captureMailer{}
	auth := services.NewAuthService(users, &fakeCodeRepo{},
		&fakeRevokedRepo{entries: map[string]*domain.RevokedToken{}}, tokens, mailer, nil)

	api := NewPortalAPI(auth, nil, nil, nil, nil, nil, nil)
	e := echo.New()
	api.RegisterRoutes(e)

	return &authFlowEnv{e: e, mailer: mailer}
}

func (env *authFlowEnv) post(path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *authFlowEnv) get(path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func TestAuthFlow(t *testing.T) {
	env := newAuthFlowEnv(t)

	// Request a code.
	rec := env.post("/api/auth/send-code", `{"email":"Resident@Example.com"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), env.mailer.lastCode(), "response must not leak the code")
	code := env.mailer.lastCode()
	require.Len(t, code, 6)

	// A wrong guess does not log in.
	rec = env.post("/api/auth/verify-code", `{"email":"resident@example.com","code":"000000"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// The real code does.
	rec = env.post("/api/auth/verify-code",
		`{"email":"resident@example.com","code":"`+code+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)

	// The code is gone now.
	rec = env.post("/api/auth/verify-code",
		`{"email":"resident@example.com","code":"`+code+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The access token opens protected endpoints.
	rec = env.get("/api/auth/me", login.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "resident@example.com")

	// Refresh mints a fresh access token without rotating the refresh token.
	rec = env.post("/api/auth/refresh", `{"refreshToken":"`+login.RefreshToken+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	require.NotEmpty(t, refreshed.AccessToken)

	// Logout blacklists the token; a second logout still succeeds.
	rec = env.post("/api/auth/logout", `{"accessToken":"`+login.AccessToken+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.post("/api/auth/logout", `{"accessToken":"`+login.AccessToken+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.get("/api/auth/me", login.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// An access token is not a refresh token.
	rec = env.post("/api/auth/refresh", `{"refreshToken":"`+refreshed.AccessToken+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlers_Validation(t *testing.T) {
	env := newAuthFlowEnv(t)

	assert.Equal(t, http.StatusBadRequest, env.post("/api/auth/send-code", `{}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, env.post("/api/auth/send-code", `not json`, "").Code)
	assert.Equal(t, http.StatusBadRequest, env.post("/api/auth/verify-code", `{"email":"a@b.c"}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, env.post("/api/auth/refresh", `{}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, env.post("/api/auth/logout", `{}`, "").Code)

	rec := env.post("/api/auth/send-code", `{"email":"stranger@example.com"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
