package blacklist

import (
	"context"
	"math"
	"time"

	"github.com/EgorLis/my-drive/internal/domain"
)

// KV: то, что нужно от кеша. SetNX не перезаписывает уже отозванный токен.
type KV interface {
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Store держит отозванные токены под ключом revoked:<user>:<jti>.
// Запись живёт ровно до exp токена, после него токен и так не пройдёт проверку срока.
type Store struct {
	kv  KV
	now func() time.Time
}

var _ domain.TokenBlacklist = (*Store)(nil)

func NewStore(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Revoke: истёкший токен не пишем. Остаток жизни округляем вверх до секунды,
// иначе запись исчезла бы чуть раньше самого токена.
func (s *Store) Revoke(ctx context.Context, c domain.TokenClaims) error {
	left := c.ExpiresAt.Sub(s.now())
	if left <= 0 {
		return nil
	}
	ttl := int(math.Ceil(left.Seconds()))
	revokedAt := []byte(s.now().UTC().Format(time.RFC3339))
	_, err := s.kv.SetNX(ctx, domain.CacheKeyRevoked(c.UserID, c.JTI), revokedAt, ttl)
	return err
}

func (s *Store) IsRevoked(ctx context.Context, c domain.TokenClaims) (bool, error) {
	return s.kv.Exists(ctx, domain.CacheKeyRevoked(c.UserID, c.JTI))
}
