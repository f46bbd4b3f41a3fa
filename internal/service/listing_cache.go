package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

// listingCache кеширует ListContent. Ключ включает версию владельца,
// любая запись у владельца делает Incr версии, старые ключи доживают по TTL.
// Ошибки кеша не ломают запрос, только логируются.
type listingCache struct {
	cache domain.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func (c *listingCache) enabled() bool {
	return c != nil && c.cache != nil && c.ttl > 0
}

func folderKey(folder *domain.FolderID) string {
	if folder == nil {
		return "root"
	}
	return folder.String()
}

func (c *listingCache) version(ctx context.Context, owner domain.UserID) (int64, bool) {
	raw, err := c.cache.Get(ctx, domain.CacheKeyContentVersion(owner))
	if err != nil {
		c.log.Warn("cache version get failed", zap.Error(err))
		return 0, false
	}
	if raw == nil {
		return 0, true
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// get возвращает версию, под которой надо сохранять результат; версию читаем до
// запроса к БД, чтобы запись, закоммиченная между ними, не попала в кеш под новой версией.
func (c *listingCache) get(ctx context.Context, owner domain.UserID, folder *domain.FolderID) (fc domain.FolderContent, ver int64, hit, usable bool) {
	if !c.enabled() {
		return domain.FolderContent{}, 0, false, false
	}
	ver, ok := c.version(ctx, owner)
	if !ok {
		return domain.FolderContent{}, 0, false, false
	}
	raw, err := c.cache.Get(ctx, domain.CacheKeyContent(owner, folderKey(folder), ver))
	if err != nil {
		c.log.Warn("cache get failed", zap.Error(err))
		return domain.FolderContent{}, 0, false, false
	}
	if raw == nil {
		return domain.FolderContent{}, ver, false, true
	}
	if err := json.Unmarshal(raw, &fc); err != nil {
		c.log.Warn("cache decode failed, dropping entry", zap.Error(err))
		c.drop(ctx, domain.CacheKeyContent(owner, folderKey(folder), ver))
		return domain.FolderContent{}, ver, false, true
	}
	return fc, ver, true, true
}

func (c *listingCache) put(ctx context.Context, owner domain.UserID, folder *domain.FolderID, ver int64, fc domain.FolderContent) {
	raw, err := json.Marshal(fc)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, domain.CacheKeyContent(owner, folderKey(folder), ver), raw, int(c.ttl.Seconds())); err != nil {
		c.log.Warn("cache set failed", zap.Error(err))
	}
}

// bump вызывается после любой записи владельца. Листинги затронутых папок
// под прошлой версией удаляем сразу, остальные доживают по TTL.
func (c *listingCache) bump(ctx context.Context, owner domain.UserID, touched ...*domain.FolderID) {
	if !c.enabled() {
		return
	}
	ver, err := c.cache.Incr(ctx, domain.CacheKeyContentVersion(owner))
	if err != nil {
		c.log.Warn("cache version bump failed", zap.Error(err), zap.Stringer("user_id", owner))
		return
	}
	if len(touched) == 0 {
		return
	}
	stale := make([]string, 0, len(touched))
	for _, f := range touched {
		stale = append(stale, domain.CacheKeyContent(owner, folderKey(f), ver-1))
	}
	c.drop(ctx, stale...)
}

func (c *listingCache) drop(ctx context.Context, keys ...string) {
	if err := c.cache.Del(ctx, keys...); err != nil {
		c.log.Warn("cache del failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
