package domain

import (
	"context"
	"strconv"
)

// Ключи кеша: единое место, чтобы не расползались по коду.
func CacheKeyRevoked(owner UserID, jti string) string {
	return "revoked:" + owner.String() + ":" + jti
}
func CacheKeyContentVersion(owner UserID) string { return "contentver:" + owner.String() }
func CacheKeyContent(owner UserID, folder string, version int64) string {
	return "content:" + owner.String() + ":" + folder + ":v" + strconv.FormatInt(version, 10)
}

// Простой k/v интерфейс. Реализация, Redis.
// Get на промахе возвращает (nil, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	// Для инкрементируемых версий списков (выборочная инвалидация)
	Incr(ctx context.Context, key string) (int64, error)
	Ping(context.Context) error
	Close()
}
