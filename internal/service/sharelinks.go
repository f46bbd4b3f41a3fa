package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

const (
	shareTokenBytes    = 32
	shareTokenAttempts = 3
)

type ShareLinks struct {
	log        *zap.Logger
	tx         domain.TxManager
	links      domain.ShareLinksRepo
	files      domain.FilesRepo
	gate       *Gate
	blobs      domain.BlobStorage
	presignTTL time.Duration

	now      func() time.Time
	newToken func() (string, error)
}

func NewShareLinks(log *zap.Logger, tx domain.TxManager, links domain.ShareLinksRepo, files domain.FilesRepo,
	gate *Gate, blobs domain.BlobStorage, presignTTL time.Duration) *ShareLinks {
	return &ShareLinks{
		log:        log,
		tx:         tx,
		links:      links,
		files:      files,
		gate:       gate,
		blobs:      blobs,
		presignTTL: presignTTL,
		now:        time.Now,
		newToken:   randomToken,
	}
}

// randomToken: 32 байта из crypto/rand в URL-safe base64 без паддинга.
func randomToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Create выпускает ссылку на свой файл. Каждая попытка: отдельная транзакция:
// после нарушения уникальности транзакция Postgres уже непригодна.
func (s *ShareLinks) Create(ctx context.Context, owner domain.UserID, fileID domain.FileID, expiresAt *time.Time) (domain.ShareLink, error) {
	var (
		created domain.ShareLink
		err     error
	)
	for attempt := 1; attempt <= shareTokenAttempts; attempt++ {
		created, err = s.createOnce(ctx, owner, fileID, expiresAt)
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
		s.log.Warn("share token collision", zap.Int("attempt", attempt))
	}
	if err != nil {
		return domain.ShareLink{}, err
	}
	s.log.Info("share link created",
		zap.Stringer("user_id", owner), zap.Stringer("file_id", fileID), zap.Stringer("link_id", created.ID))
	return created, nil
}

func (s *ShareLinks) createOnce(ctx context.Context, owner domain.UserID, fileID domain.FileID, expiresAt *time.Time) (domain.ShareLink, error) {
	var created domain.ShareLink
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		f, err := s.gate.OwnedFile(ctx, owner, fileID)
		if err != nil {
			return err
		}
		token, err := s.newToken()
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}
		created, err = s.links.CreateShareLink(ctx, domain.ShareLink{
			ID:        uuid.New(),
			FileID:    f.ID,
			OwnerID:   f.OwnerID,
			Token:     token,
			ExpiresAt: expiresAt,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrFileNotFound
			}
			// ErrConflict оставляем в цепочке: по нему Create повторяет попытку
			return fmt.Errorf("insert share link: %w", err)
		}
		return nil
	})
	return created, err
}

// Disable идемпотентно выключает свою ссылку.
func (s *ShareLinks) Disable(ctx context.Context, owner domain.UserID, id domain.ShareLinkID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := s.gate.OwnedShareLink(ctx, owner, id)
		if err != nil {
			return err
		}
		if l.IsDisabled {
			return nil
		}
		if err := s.links.DisableShareLink(ctx, id); err != nil {
			return notFoundAs(err, domain.ErrShareLinkNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("share link disabled", zap.Stringer("user_id", owner), zap.Stringer("link_id", id))
	return nil
}

// List: все ссылки своего файла, включая выключенные и истёкшие.
func (s *ShareLinks) List(ctx context.Context, owner domain.UserID, fileID domain.FileID) ([]domain.ShareLink, error) {
	var out []domain.ShareLink
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.gate.OwnedFile(ctx, owner, fileID); err != nil {
			return err
		}
		links, err := s.links.ShareLinksByFile(ctx, fileID)
		if err != nil {
			return fmt.Errorf("list share links: %w", err)
		}
		out = links
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.ShareLink{}
	}
	return out, nil
}

// Access: анонимный доступ по токену, без проверки владельца.
// Состояние "истекла" не хранится, вычисляется здесь по expires_at.
func (s *ShareLinks) Access(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrShareLinkNotFound
	}

	l, err := s.links.ShareLinkByToken(ctx, token)
	if err != nil {
		return "", notFoundAs(err, domain.ErrShareLinkNotFound)
	}
	if l.IsDisabled {
		return "", domain.ErrShareLinkDisabled
	}
	if l.Expired(s.now()) {
		return "", domain.ErrShareLinkExpired
	}

	f, err := s.files.FileByID(ctx, l.FileID)
	if err != nil {
		return "", notFoundAs(err, domain.ErrFileNotFound)
	}
	if f.DeletedAt != nil {
		return "", domain.ErrFileNotFound
	}

	url, err := s.blobs.PresignGet(ctx, f.StorageKey, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	s.log.Debug("share link accessed", zap.Stringer("link_id", l.ID), zap.Stringer("file_id", f.ID))
	return url, nil
}
