package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records lookups so tests can see which calls the cache
// absorbed.
type countingStore struct {
	mu      sync.Mutex
	entries map[string]*domain.RevokedToken
	lookups int
}

func newCountingStore() *countingStore {
	return &countingStore{entries: map[string]*domain.RevokedToken{}}
}

func (s *countingStore) Revoke(_ context.Context, e *domain.RevokedToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Token] = e
	return nil
}

func (s *countingStore) IsRevoked(_ context.Context, token string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	e, ok := s.entries[token]
	return ok && e.ExpiresAt.After(now), nil
}

func (s *countingStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for tok, e := range s.entries {
		if !e.ExpiresAt.After(now) {
			delete(s.entries, tok)
			n++
		}
	}
	return n, nil
}

func (s *countingStore) lookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}

func TestRevocationCache_CachesPositiveAnswers(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	c := NewRevocationCache(store)
	defer c.Stop()

	now := time.Now()
	require.NoError(t, c.Revoke(ctx, &domain.RevokedToken{
		Token:     "tok-1",
		ExpiresAt: now.Add(time.Hour),
		RevokedAt: now,
	}))

	for i := 0; i < 5; i++ {
		revoked, err := c.IsRevoked(ctx, "tok-1", now)
		require.NoError(t, err)
		assert.True(t, revoked)
	}
	assert.Zero(t, store.lookupCount(), "cached answer should not hit the store")
}

func TestRevocationCache_MissesFallThrough(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	c := NewRevocationCache(store)
	defer c.Stop()

	now := time.Now()

	// A revocation made elsewhere (another instance) is still honored.
	require.NoError(t, store.Revoke(ctx, &domain.RevokedToken{
		Token:     "tok-remote",
		ExpiresAt: now.Add(time.Hour),
		RevokedAt: now,
	}))

	revoked, err := c.IsRevoked(ctx, "tok-remote", now)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 1, store.lookupCount())

	revoked, err = c.IsRevoked(ctx, "tok-unknown", now)
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, 2, store.lookupCount(), "negative answers are never cached")
}

func TestRevocationCache_PurgeDelegates(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	c := NewRevocationCache(store)
	defer c.Stop()

	now := time.Now()
	require.NoError(t, store.Revoke(ctx, &domain.RevokedToken{
		Token:     "tok-old",
		ExpiresAt: now.Add(-time.Minute),
		RevokedAt: now.Add(-time.Hour),
	}))

	n, err := c.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
