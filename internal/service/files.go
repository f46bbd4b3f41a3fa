package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

const defaultMIME = "application/octet-stream"

type Files struct {
	log        *zap.Logger
	tx         domain.TxManager
	files      domain.FilesRepo
	gate       *Gate
	blobs      domain.BlobStorage
	presignTTL time.Duration
	listing    *listingCache
}

func NewFiles(log *zap.Logger, tx domain.TxManager, files domain.FilesRepo, gate *Gate,
	blobs domain.BlobStorage, presignTTL time.Duration, cache domain.Cache, listTTL time.Duration) *Files {
	return &Files{
		log:        log,
		tx:         tx,
		files:      files,
		gate:       gate,
		blobs:      blobs,
		presignTTL: presignTTL,
		listing:    &listingCache{cache: cache, ttl: listTTL, log: log},
	}
}

type UploadInput struct {
	FolderID domain.FolderID
	Name     string
	Size     int64
	MIME     string
	Content  io.Reader
}

// UploadFile: проверка папки, затем blob, затем метаданные в короткой транзакции.
// Без успешной записи blob метаданных нет; если не удалось сохранить метаданные, blob удаляется (best-effort).
// Отмена ctx (клиент отвалился) прерывает запись в хранилище, метаданные не пишутся.
func (s *Files) UploadFile(ctx context.Context, owner domain.UserID, in UploadInput) (domain.File, error) {
	name := strings.TrimSpace(in.Name)
	if !domain.ValidName(name) || in.Size < 0 || in.Content == nil {
		return domain.File{}, domain.ErrBadParams
	}
	mime := strings.TrimSpace(in.MIME)
	if mime == "" {
		mime = defaultMIME
	}

	id := uuid.New()
	f := domain.File{
		ID:         id,
		OwnerID:    owner,
		FolderID:   in.FolderID,
		Name:       name,
		SizeBytes:  in.Size,
		MIME:       mime,
		StorageKey: domain.StorageKeyFor(owner, id),
	}

	if _, err := s.gate.OwnedFolder(ctx, owner, in.FolderID); err != nil {
		return domain.File{}, err
	}

	// Put вне транзакции, соединение пула на время загрузки не занято
	if err := s.blobs.Put(ctx, f.StorageKey, in.Content, f.SizeBytes, f.MIME); err != nil {
		return domain.File{}, fmt.Errorf("put blob: %w", err)
	}

	var created domain.File
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.files.CreateFile(ctx, f)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// папку удалили, пока шла загрузка (FK)
				return domain.ErrFolderNotFound
			}
			return fmt.Errorf("insert file: %w", err)
		}
		return nil
	})
	if err != nil {
		s.dropBlob(ctx, f.StorageKey)
		return domain.File{}, err
	}

	s.listing.bump(ctx, owner, &created.FolderID)
	s.log.Info("file uploaded",
		zap.Stringer("user_id", owner), zap.Stringer("file_id", created.ID), zap.Int64("size", created.SizeBytes))
	return created, nil
}

// DownloadFile возвращает подписанную ссылку; байты через сервис не идут.
func (s *Files) DownloadFile(ctx context.Context, owner domain.UserID, id domain.FileID) (string, error) {
	f, err := s.gate.OwnedFile(ctx, owner, id)
	if err != nil {
		return "", err
	}
	url, err := s.blobs.PresignGet(ctx, f.StorageKey, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return url, nil
}

// DeleteFile: мягкое удаление метаданных, затем удаление blob (best-effort).
func (s *Files) DeleteFile(ctx context.Context, owner domain.UserID, id domain.FileID) error {
	var deleted domain.File
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		f, err := s.gate.OwnedFile(ctx, owner, id)
		if err != nil {
			return err
		}
		deleted = f
		if err := s.files.SoftDeleteFile(ctx, id, owner); err != nil {
			return notFoundAs(err, domain.ErrFileNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.listing.bump(ctx, owner, &deleted.FolderID)
	s.dropBlob(ctx, deleted.StorageKey)
	s.log.Info("file deleted", zap.Stringer("user_id", owner), zap.Stringer("file_id", id))
	return nil
}

func (s *Files) dropBlob(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Error("blob cleanup failed, orphan left", zap.String("storage_key", key), zap.Error(err))
	}
}
