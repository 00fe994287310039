package cache

import (
	"context"
	"time"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	"github.com/jellydator/ttlcache/v3"
)

// RevocationCache fronts a RevokedTokenRepository with an in-process TTL
// cache of known-revoked tokens. Only positive (revoked) answers are cached:
// a miss always falls through to the store, so a revocation made by another
// instance is still honored. Entries expire together with the token itself.
type RevocationCache struct {
	store domain.RevokedTokenRepository
	cache *ttlcache.Cache[string, struct{}]
}

// NewRevocationCache wraps store. Call Stop when done.
func NewRevocationCache(store domain.RevokedTokenRepository) *RevocationCache {
	c := ttlcache.New[string, struct{}]()
	go c.Start()
	return &RevocationCache{store: store, cache: c}
}

func (r *RevocationCache) Revoke(ctx context.Context, entry *domain.RevokedToken) error {
	if err := r.store.Revoke(ctx, entry); err != nil {
		return err
	}
	ttl := time.Until(entry.ExpiresAt)
	if ttl > 0 {
		r.cache.Set(entry.Token, struct{}{}, ttl)
	}
	return nil
}

func (r *RevocationCache) IsRevoked(ctx context.Context, token string, now time.Time) (bool, error) {
	if r.cache.Has(token) {
		return true, nil
	}
	revoked, err := r.store.IsRevoked(ctx, token, now)
	if err != nil {
		return false, err
	}
	return revoked, nil
}

func (r *RevocationCache) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	// The cache's own TTLs track token expiry, nothing extra to do here.
	return r.store.PurgeExpired(ctx, now)
}

// Stop halts the cache's expiry loop.
func (r *RevocationCache) Stop() {
	r.cache.Stop()
}

var _ domain.RevokedTokenRepository = (*RevocationCache)(nil)
