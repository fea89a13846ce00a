package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/restohub/staff-service/internal/core/ports"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func staffClaims(exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "staff-1",
		"email": "ann@x.com",
		"role":  "ADMIN",
		"iat":   time.Now().Unix(),
		"exp":   exp.Unix(),
	}
}

// memRevoker is an in-memory TokenRevoker.
type memRevoker struct {
	revoked map[string]bool
	err     error
}

func (r *memRevoker) Revoke(_ context.Context, token string, _ time.Duration) error {
	if r.revoked == nil {
		r.revoked = make(map[string]bool)
	}
	r.revoked[token] = true
	return r.err
}

func (r *memRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	return r.revoked[token], r.err
}

func invokeAuth(t *testing.T, header string, revoker *memRevoker) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var mwRevoker ports.TokenRevoker
	if revoker != nil {
		mwRevoker = revoker
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Auth(testSecret, mwRevoker)(next)(c)
	return c, err
}

func TestAuth_ValidToken(t *testing.T) {
	token := mintToken(t, testSecret, staffClaims(time.Now().Add(time.Hour)))

	c, err := invokeAuth(t, "Bearer "+token, nil)
	if err != nil {
		t.Fatalf("expected pass, got %v", err)
	}

	if got, _ := c.Get("staff_id").(string); got != "staff-1" {
		t.Errorf("staff_id = %q", got)
	}
	if got, _ := c.Get("role").(string); got != "ADMIN" {
		t.Errorf("role = %q", got)
	}
	if got, _ := c.Get("token").(string); got != token {
		t.Error("raw token not stored in context")
	}
	if got, _ := c.Get("token_exp").(int64); got == 0 {
		t.Error("token_exp not stored in context")
	}
}

func TestAuth_Rejections(t *testing.T) {
	valid := mintToken(t, testSecret, staffClaims(time.Now().Add(time.Hour)))
	wrongKey := mintToken(t, "other-secret", staffClaims(time.Now().Add(time.Hour)))
	expired := mintToken(t, testSecret, staffClaims(time.Now().Add(-time.Hour)))

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic " + valid,
		"no token part":   "Bearer",
		"garbage token":   "Bearer not.a.jwt",
		"wrong signature": "Bearer " + wrongKey,
		"expired token":   "Bearer " + expired,
	}

	for name, header := range cases {
		_, err := invokeAuth(t, header, nil)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %v", name, err)
		}
	}
}

func TestAuth_RevokedToken(t *testing.T) {
	token := mintToken(t, testSecret, staffClaims(time.Now().Add(time.Hour)))
	revoker := &memRevoker{}
	if err := revoker.Revoke(context.Background(), token, time.Hour); err != nil {
		t.Fatal(err)
	}

	_, err := invokeAuth(t, "Bearer "+token, revoker)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %v", err)
	}
}

func TestAuth_RevocationStoreFailure(t *testing.T) {
	token := mintToken(t, testSecret, staffClaims(time.Now().Add(time.Hour)))
	revoker := &memRevoker{err: errors.New("store down")}

	_, err := invokeAuth(t, "Bearer "+token, revoker)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when revocation check fails, got %v", err)
	}
}
