package auth

import (
	"context"
	"time"

	"github.com/sahilchouksey/paper-insight-api/utils/cache"
)

const blacklistKeyPrefix = "jwt:revoked:"

// BlacklistService handles JWT token revocation.
// Without a cache every token is treated as not revoked.
type BlacklistService struct {
	cache *cache.RedisCache
}

// NewBlacklistService creates a new blacklist service
func NewBlacklistService(redisCache *cache.RedisCache) *BlacklistService {
	return &BlacklistService{cache: redisCache}
}

// Enabled reports whether revocation is backed by Redis
func (s *BlacklistService) Enabled() bool {
	return s != nil && s.cache != nil
}

// RevokeToken blacklists a token ID until the token would have expired anyway
func (s *BlacklistService) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	if !s.Enabled() {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	return s.cache.Set(ctx, blacklistKeyPrefix+jti, "1", ttl)
}

// IsTokenRevoked checks if a token is in the blacklist
func (s *BlacklistService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	return s.cache.Exists(ctx, blacklistKeyPrefix+jti)
}
