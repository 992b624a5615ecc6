package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/brainly/internal/server/auth"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/memory"
	"github.com/dmitrijs2005/brainly/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
	testOrigin        = "http://localhost:5173"
)

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMemRevoker() *memRevoker {
	return &memRevoker{revoked: map[string]time.Time{}}
}

func (r *memRevoker) Revoke(_ context.Context, jti string, exp time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.revoked[jti] = exp
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[jti]
	return ok, nil
}

func newTestIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{
		AccessSecret:  testAccessSecret,
		AccessExpiry:  time.Hour,
		RefreshSecret: testRefreshSecret,
		RefreshExpiry: 24 * time.Hour,
	})
	require.NoError(t, err)
	return tokens
}

// stack is the full HTTP surface over real services and in-memory storage.
type stack struct {
	h       http.Handler
	deps    Deps
	tokens  *auth.TokenIssuer
	revoker *memRevoker
}

func newStack(t *testing.T, tweak ...func(*Deps)) *stack {
	t.Helper()

	tokens := newTestIssuer(t)
	hasher, err := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	rm := memory.NewInMemoryRepositoryManager()
	rev := newMemRevoker()

	deps := Deps{
		Users:    services.NewUserService(nil, rm, hasher, tokens, rev, nil),
		Contents: services.NewContentService(nil, rm),
		Shares:   services.NewShareService(nil, rm, nil),
		Tokens:   tokens,
		Revoker:  rev,
	}
	for _, f := range tweak {
		f(&deps)
	}

	opts := Options{
		CORSOrigin:         testOrigin,
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
	}
	return &stack{h: NewHandler(opts, deps, nil), deps: deps, tokens: tokens, revoker: rev}
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withCookie(name, value string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: name, Value: value}) }
}

// do sends body as JSON unless it is already a string.
func (s *stack) do(t *testing.T, method, path string, body any, mods ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, m := range mods {
		m(req)
	}
	rr := httptest.NewRecorder()
	s.h.ServeHTTP(rr, req)
	return rr
}

type testEnvelope[T any] struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       T      `json:"data"`
	Success    bool   `json:"success"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

type loginData struct {
	User         userDTO `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
}

// signup registers and logs in username, returning the login payload.
func (s *stack) signup(t *testing.T, username, password string) loginData {
	t.Helper()
	creds := map[string]string{"username": username, "password": password}

	rr := s.do(t, http.MethodPost, "/api/v1/users/register", creds)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = s.do(t, http.MethodPost, "/api/v1/users/login", creds)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[testEnvelope[loginData]](t, rr).Data
}

func cookieByName(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
