package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/restohub/staff-service/internal/core/domain"
)

// stubRevoker records revoked tokens in memory.
type stubRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (r *stubRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[token]
	return ok, nil
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubStaffService{token: "signed-token"}
	h := NewAuthHandler(svc, newStubRevoker())

	c, rec := newJSONContext(http.MethodPost, "/v1/auth/login", `{"email":"ann@x.com","password":"p"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Errorf("token = %q", resp.Token)
	}
}

func TestAuthHandler_LoginRejectsBadPayload(t *testing.T) {
	h := NewAuthHandler(&stubStaffService{}, newStubRevoker())

	cases := map[string]struct {
		body string
		code int
	}{
		"malformed json":   {`{"email":`, http.StatusBadRequest},
		"missing email":    {`{"password":"p"}`, http.StatusUnprocessableEntity},
		"missing password": {`{"email":"ann@x.com"}`, http.StatusUnprocessableEntity},
		"bad email":        {`{"email":"nope","password":"p"}`, http.StatusUnprocessableEntity},
	}

	for name, tc := range cases {
		c, _ := newJSONContext(http.MethodPost, "/v1/auth/login", tc.body)
		err := h.Login(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			t.Errorf("%s: expected HTTP error, got %v", name, err)
			continue
		}
		if he.Code != tc.code {
			t.Errorf("%s: code = %d, want %d", name, he.Code, tc.code)
		}
	}
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	svc := &stubStaffService{err: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, newStubRevoker())

	c, _ := newJSONContext(http.MethodPost, "/v1/auth/login", `{"email":"ann@x.com","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	revoker := newStubRevoker()
	h := NewAuthHandler(&stubStaffService{}, revoker)

	c, rec := newJSONContext(http.MethodPost, "/v1/auth/logout", "")
	c.Set("token", "raw-token")
	c.Set("token_exp", time.Now().Add(time.Hour).Unix())

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	revoked, err := revoker.IsRevoked(context.Background(), "raw-token")
	if err != nil || !revoked {
		t.Errorf("token not revoked (revoked=%v err=%v)", revoked, err)
	}
}

// A token already past its expiry needs no revocation entry.
func TestAuthHandler_LogoutExpiredToken(t *testing.T) {
	revoker := newStubRevoker()
	h := NewAuthHandler(&stubStaffService{}, revoker)

	c, rec := newJSONContext(http.MethodPost, "/v1/auth/logout", "")
	c.Set("token", "stale-token")
	c.Set("token_exp", time.Now().Add(-time.Hour).Unix())

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if revoked, _ := revoker.IsRevoked(context.Background(), "stale-token"); revoked {
		t.Error("expired token was revoked anyway")
	}
}

func TestAuthHandler_LogoutWithoutClaims(t *testing.T) {
	h := NewAuthHandler(&stubStaffService{}, newStubRevoker())

	c, _ := newJSONContext(http.MethodPost, "/v1/auth/logout", "")
	err := h.Logout(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
