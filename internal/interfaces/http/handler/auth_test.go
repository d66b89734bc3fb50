package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/stockroom/backend/internal/application/identity"
	"github.com/stockroom/backend/internal/domain/identity"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/infrastructure/auth"
	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

type stubUserRepo struct {
	users map[uuid.UUID]identity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]identity.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *identity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, u *identity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return shared.ErrNotFound
	}
	r.users[u.ID] = *u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(context.Background(), username)
	return err == nil, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(context.Background(), email)
	return err == nil, nil
}

func newAuthTestServer(t *testing.T) (*gin.Engine, *stubUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "stockroom-test",
		MaxRefreshCount:        10,
	}
	cookieCfg := config.CookieConfig{Path: "/", SameSite: "lax"}

	repo := newStubUserRepo()
	jwtService := auth.NewJWTService(jwtCfg)
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := identityapp.NewAuthService(repo, jwtService, blacklist, zap.NewNop())
	authHandler := NewAuthHandler(authService, cookieCfg, jwtCfg)

	engine := gin.New()
	jwtMiddlewareCfg := middleware.DefaultJWTConfig(jwtService)
	jwtMiddlewareCfg.TokenBlacklist = blacklist
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtMiddlewareCfg))
	authHandler.RegisterRoutes(engine.Group("/api/v1"))
	return engine, repo
}

func registerAndLogin(t *testing.T, engine *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username":              "alice",
		"email":                 "alice@example.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	body, _ = json.Marshal(map[string]string{"username": "alice", "password": "secret123"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	t.Fatal("refresh_token cookie not set")
	return nil
}

func TestAuthHandler_LoginSetsRefreshCookie(t *testing.T) {
	engine, _ := newAuthTestServer(t)

	w := registerAndLogin(t, engine)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			TokenType    string `json:"token_type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.AccessToken)
	// the refresh token travels only in the httpOnly cookie
	assert.Empty(t, resp.Data.RefreshToken)
	assert.Equal(t, "Bearer", resp.Data.TokenType)

	// the body must not carry the refresh token at all
	assert.NotContains(t, w.Body.String(), "refresh_token")

	cookie := refreshCookie(t, w)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestAuthHandler_RefreshFromCookie(t *testing.T) {
	engine, _ := newAuthTestServer(t)

	loginW := registerAndLogin(t, engine)
	cookie := refreshCookie(t, loginW)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.Empty(t, resp.Data.RefreshToken)

	rotated := refreshCookie(t, w)
	assert.NotEmpty(t, rotated.Value)
	assert.NotEqual(t, cookie.Value, rotated.Value)
}

func TestAuthHandler_RefreshWithoutToken(t *testing.T) {
	engine, _ := newAuthTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LogoutClearsCookieAndRevokesToken(t *testing.T) {
	engine, _ := newAuthTestServer(t)

	loginW := registerAndLogin(t, engine)
	var loginResp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(loginW.Body.Bytes(), &loginResp))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Data.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cleared := refreshCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	// the revoked access token no longer authenticates
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Data.AccessToken)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RegisterPasswordConfirmationMismatch(t *testing.T) {
	engine, repo := newAuthTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"username":              "alice",
		"email":                 "alice@example.com",
		"password":              "secret123",
		"password_confirmation": "different",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.users)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	engine, _ := newAuthTestServer(t)
	registerAndLogin(t, engine)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "wrong-password"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
