package ports

import (
	"context"
	"time"

	"github.com/restohub/staff-service/internal/core/domain"
)

// PasswordHasher is the one-way password transformation used before any
// credential is persisted.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// Authenticator checks a credential pair against stored records. It returns
// domain.ErrInvalidCredentials on any mismatch, without distinguishing an
// unknown email from a wrong password.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) error
}

// TokenIssuer produces signed, time-bounded session tokens. The token
// format and claims are opaque to the core.
type TokenIssuer interface {
	Generate(staff *domain.Staff) (string, error)
}

// TokenRevoker tracks tokens invalidated before their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
