package domain

import (
	"context"
	"io"
	"time"
)

// Хранилище бинарного контента (S3/MinIO). Ключ задаёт вызывающий.
type BlobStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, mime string) error
	// Подписанная ссылка на скачивание, живёт ttl
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	Ping(context.Context) error
}
