package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

type Folders struct {
	log     *zap.Logger
	tx      domain.TxManager
	folders domain.FoldersRepo
	files   domain.FilesRepo
	gate    *Gate
	listing *listingCache
}

func NewFolders(log *zap.Logger, tx domain.TxManager, folders domain.FoldersRepo, files domain.FilesRepo,
	gate *Gate, cache domain.Cache, listTTL time.Duration) *Folders {
	return &Folders{
		log:     log,
		tx:      tx,
		folders: folders,
		files:   files,
		gate:    gate,
		listing: &listingCache{cache: cache, ttl: listTTL, log: log},
	}
}

// CreateFolder создаёт папку в корне (parent == nil) или внутри своей папки.
// Проверка соседей идёт первой, уникальный индекс остаётся последним арбитром.
func (s *Folders) CreateFolder(ctx context.Context, owner domain.UserID, name string, parent *domain.FolderID) (domain.Folder, error) {
	name = strings.TrimSpace(name)
	if !domain.ValidName(name) {
		return domain.Folder{}, domain.ErrBadParams
	}

	var created domain.Folder
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if parent != nil {
			if _, err := s.gate.OwnedFolder(ctx, owner, *parent); err != nil {
				return err
			}
		}

		siblings, err := s.folders.FoldersByParent(ctx, owner, parent)
		if err != nil {
			return fmt.Errorf("list siblings: %w", err)
		}
		for _, sib := range siblings {
			if sib.Name == name {
				return domain.ErrFolderAlreadyExists
			}
		}

		created, err = s.folders.CreateFolder(ctx, domain.Folder{
			ID:       uuid.New(),
			OwnerID:  owner,
			Name:     name,
			ParentID: parent,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrConflict):
				return domain.ErrFolderAlreadyExists
			case errors.Is(err, domain.ErrNotFound):
				// родителя удалили между проверкой и вставкой (FK)
				return domain.ErrFolderNotFound
			}
			return fmt.Errorf("insert folder: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Folder{}, err
	}

	s.listing.bump(ctx, owner, parent)
	s.log.Info("folder created", zap.Stringer("user_id", owner), zap.Stringer("folder_id", created.ID))
	return created, nil
}

// ListContent отдаёт один уровень: дочерние папки и файлы. folder == nil означает корень.
func (s *Folders) ListContent(ctx context.Context, owner domain.UserID, folder *domain.FolderID) (domain.FolderContent, error) {
	if folder != nil {
		if _, err := s.gate.OwnedFolder(ctx, owner, *folder); err != nil {
			return domain.FolderContent{}, err
		}
	}

	cached, ver, hit, usable := s.listing.get(ctx, owner, folder)
	if hit {
		return cached, nil
	}

	var out domain.FolderContent
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		folders, err := s.folders.FoldersByParent(ctx, owner, folder)
		if err != nil {
			return fmt.Errorf("list folders: %w", err)
		}
		files, err := s.files.FilesByFolder(ctx, owner, folder)
		if err != nil {
			return fmt.Errorf("list files: %w", err)
		}
		if folders == nil {
			folders = []domain.Folder{}
		}
		if files == nil {
			files = []domain.File{}
		}
		out = domain.FolderContent{Folders: folders, Files: files}
		return nil
	})
	if err != nil {
		return domain.FolderContent{}, err
	}

	if usable {
		s.listing.put(ctx, owner, folder, ver, out)
	}
	return out, nil
}
