package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRevokerKeepsKeyUntilExpiry(t *testing.T) {
	cache := newFakeCache()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	r := &TokenRevoker{cache: cache, now: func() time.Time { return now }}

	require.NoError(t, r.Revoke(context.Background(), "abc", now.Add(10*time.Minute)))
	assert.Equal(t, 10*time.Minute, cache.data[revokedTokenPrefix+"abc"])

	revoked, err := r.IsRevoked(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(context.Background(), "other")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenRevokerSkipsExpiredAndEmpty(t *testing.T) {
	cache := newFakeCache()
	now := time.Now()
	r := &TokenRevoker{cache: cache, now: func() time.Time { return now }}

	require.NoError(t, r.Revoke(context.Background(), "old", now.Add(-time.Second)))
	require.NoError(t, r.Revoke(context.Background(), "", now.Add(time.Hour)))
	assert.Empty(t, cache.data)
}

func TestTokenRevokerPropagatesCacheErrors(t *testing.T) {
	cache := newFakeCache()
	cache.err = errors.New("redis unavailable")
	r := NewTokenRevoker(cache)

	_, err := r.IsRevoked(context.Background(), "abc")
	assert.Error(t, err)
	assert.Error(t, r.Revoke(context.Background(), "abc", time.Now().Add(time.Hour)))
}
