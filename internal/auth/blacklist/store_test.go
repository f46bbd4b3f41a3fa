package blacklist

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/my-drive/internal/domain"
)

type fakeKV struct {
	ttl map[string]int
	val map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{ttl: map[string]int{}, val: map[string]string{}} }

func (f *fakeKV) SetNX(_ context.Context, key string, val []byte, ttlSeconds int) (bool, error) {
	if _, ok := f.ttl[key]; ok {
		return false, nil
	}
	f.ttl[key] = ttlSeconds
	f.val[key] = string(val)
	return true, nil
}

func (f *fakeKV) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.ttl[key]
	return ok, nil
}

func newStore(now time.Time) (*Store, *fakeKV) {
	kv := newFakeKV()
	s := NewStore(kv)
	s.now = func() time.Time { return now }
	return s, kv
}

func TestRevoke(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, kv := newStore(now)
	ctx := context.Background()
	c := domain.TokenClaims{JTI: "abc", UserID: uuid.New(), ExpiresAt: now.Add(30 * time.Minute)}

	revoked, err := s.IsRevoked(ctx, c)
	require.NoError(t, err)
	assert.False(t, revoked, "fresh token reported revoked")

	require.NoError(t, s.Revoke(ctx, c))

	revoked, err = s.IsRevoked(ctx, c)
	require.NoError(t, err)
	assert.True(t, revoked)

	key := domain.CacheKeyRevoked(c.UserID, "abc")
	assert.Equal(t, 1800, kv.ttl[key])
	assert.Equal(t, "2026-01-01T12:00:00Z", kv.val[key])
}

func TestRevokeRoundsTTLUp(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, kv := newStore(now)
	c := domain.TokenClaims{JTI: "j", UserID: uuid.New(), ExpiresAt: now.Add(1500 * time.Millisecond)}

	require.NoError(t, s.Revoke(context.Background(), c))
	assert.Equal(t, 2, kv.ttl[domain.CacheKeyRevoked(c.UserID, "j")])
}

func TestRevokeExpiredTokenIsNoop(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, kv := newStore(now)
	c := domain.TokenClaims{JTI: "old", UserID: uuid.New(), ExpiresAt: now.Add(-time.Hour)}

	require.NoError(t, s.Revoke(context.Background(), c))
	assert.Empty(t, kv.ttl)
}

func TestRevokeIsScopedToUser(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newStore(now)
	ctx := context.Background()
	mine := domain.TokenClaims{JTI: "same", UserID: uuid.New(), ExpiresAt: now.Add(time.Hour)}
	other := domain.TokenClaims{JTI: "same", UserID: uuid.New(), ExpiresAt: now.Add(time.Hour)}

	require.NoError(t, s.Revoke(ctx, mine))

	revoked, err := s.IsRevoked(ctx, other)
	require.NoError(t, err)
	assert.False(t, revoked)
}
