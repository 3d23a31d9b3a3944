package auth

import (
	"context"
	"time"

	"loanlink-backend/internal/infrastructure/cache"
)

const revokedKeyPrefix = "blacklist:access_token:"

// TokenStore tracks revoked tokens by jti until they would have expired.
type TokenStore struct {
	cache *cache.Client
}

func NewTokenStore(c *cache.Client) *TokenStore {
	return &TokenStore{cache: c}
}

func (s *TokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsAccessTokenBlacklisted reports false when the store is unreachable.
func (s *TokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	data, err := s.cache.Get(ctx, revokedKeyPrefix+tokenID)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
