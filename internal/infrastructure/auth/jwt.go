package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/restohub/staff-service/internal/core/domain"
)

// TokenIssuer implements ports.TokenIssuer with HS256-signed JWTs.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Generate signs a time-bounded token carrying the staff identity claims
// the Auth middleware expects.
func (t *TokenIssuer) Generate(staff *domain.Staff) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   staff.ID,
		"email": staff.Email,
		"role":  string(staff.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}
