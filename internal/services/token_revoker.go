package services

import (
	"context"
	"time"

	"gearguard/internal/repositories"
)

const revokedTokenPrefix = "revoked_jti:"

// TokenRevokerInterface - список отозванных jti до истечения срока токена.
type TokenRevokerInterface interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type TokenRevoker struct {
	cache repositories.CacheRepositoryInterface
	now   func() time.Time
}

func NewTokenRevoker(cache repositories.CacheRepositoryInterface) TokenRevokerInterface {
	return &TokenRevoker{cache: cache, now: time.Now}
}

// Revoke хранит jti ровно столько, сколько жил бы сам токен.
func (r *TokenRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.cache.Set(ctx, revokedTokenPrefix+jti, "1", ttl)
}

func (r *TokenRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return r.cache.Exists(ctx, revokedTokenPrefix+jti)
}
