package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

// Identity: регистрация, вход, проверка bearer-токена и выход.
type Identity struct {
	log       *zap.Logger
	users     domain.UsersRepo
	hasher    domain.PasswordHasher
	tokens    domain.TokenManager
	blacklist domain.TokenBlacklist
}

func NewIdentity(log *zap.Logger, users domain.UsersRepo, hasher domain.PasswordHasher,
	tokens domain.TokenManager, blacklist domain.TokenBlacklist) *Identity {
	return &Identity{log: log, users: users, hasher: hasher, tokens: tokens, blacklist: blacklist}
}

func (s *Identity) Register(ctx context.Context, email, password string) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) || !domain.ValidPassword(password) {
		return domain.User{}, domain.ErrBadParams
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.CreateUser(ctx, domain.User{ID: uuid.New(), Email: email, PassHash: hash})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.User{}, domain.ErrUserAlreadyExists
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", zap.Stringer("user_id", u.ID))
	return u, nil
}

// Login: "нет пользователя" и "неверный пароль" неразличимы снаружи.
func (s *Identity) Login(ctx context.Context, email, password string) (domain.Token, domain.TokenClaims, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.TokenClaims{}, domain.ErrInvalidCredentials
	}

	u, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// пустой хэш: проверка против заглушки, по времени как настоящая
			_, _ = s.hasher.Verify(password, "")
			return "", domain.TokenClaims{}, domain.ErrInvalidCredentials
		}
		return "", domain.TokenClaims{}, fmt.Errorf("user by email: %w", err)
	}

	ok, err := s.hasher.Verify(password, u.PassHash)
	if err != nil {
		return "", domain.TokenClaims{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", domain.TokenClaims{}, domain.ErrInvalidCredentials
	}

	tok, claims, err := s.tokens.Issue(ctx, u)
	if err != nil {
		return "", domain.TokenClaims{}, fmt.Errorf("issue token: %w", err)
	}
	s.log.Info("user logged in", zap.Stringer("user_id", u.ID), zap.String("jti", claims.JTI))
	return tok, claims, nil
}

// Authenticate проверяет подпись, срок, отзыв и что субъект существует.
func (s *Identity) Authenticate(ctx context.Context, t domain.Token) (domain.User, domain.TokenClaims, error) {
	claims, err := s.tokens.Parse(ctx, t)
	if err != nil {
		return domain.User{}, domain.TokenClaims{}, fmt.Errorf("%w: %w", domain.ErrUnauth, err)
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, claims)
		if err != nil {
			return domain.User{}, domain.TokenClaims{}, fmt.Errorf("blacklist: %w", err)
		}
		if revoked {
			return domain.User{}, domain.TokenClaims{}, fmt.Errorf("token revoked: %w", domain.ErrUnauth)
		}
	}

	u, err := s.users.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.TokenClaims{}, fmt.Errorf("unknown subject: %w", domain.ErrUnauth)
		}
		return domain.User{}, domain.TokenClaims{}, fmt.Errorf("user by id: %w", err)
	}
	return u, claims, nil
}

// Logout отзывает jti до истечения токена.
func (s *Identity) Logout(ctx context.Context, claims domain.TokenClaims) error {
	if s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("revoke: %w", err)
	}
	s.log.Info("token revoked", zap.Stringer("user_id", claims.UserID), zap.String("jti", claims.JTI))
	return nil
}
