package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocationStore implements ports.TokenRevoker on Redis. Revoked
// tokens are stored by SHA-256 digest with a TTL matching the token's
// remaining validity, so entries expire on their own once the token would
// have expired anyway.
type TokenRevocationStore struct {
	client *redis.Client
}

func NewTokenRevocationStore(client *redis.Client) *TokenRevocationStore {
	return &TokenRevocationStore{client: client}
}

// Revoke marks the token as invalid for ttl. A non-positive ttl means the
// token is already expired and there is nothing to store.
func (s *TokenRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been revoked.
func (s *TokenRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *TokenRevocationStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
