package domain

import (
	"context"
	"time"
)

type Token string

// TokenClaims: то, что достаём из bearer-токена после проверки подписи и срока.
type TokenClaims struct {
	JTI       string // id токена, по нему отзываем при logout
	UserID    UserID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// PasswordHasher: медленный хэш с солью. Verify с пустым encodedHash
// тратит то же время и всегда возвращает false.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}

type TokenManager interface {
	Issue(ctx context.Context, u User) (Token, TokenClaims, error)
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}

// TokenBlacklist хранит отозванные токены до их истечения (Redis).
type TokenBlacklist interface {
	Revoke(ctx context.Context, c TokenClaims) error
	IsRevoked(ctx context.Context, c TokenClaims) (bool, error)
}
