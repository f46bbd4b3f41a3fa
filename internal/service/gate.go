package service

import (
	"context"
	"errors"

	"github.com/EgorLis/my-drive/internal/domain"
)

// Gate: проверки владения. Чужой объект и отсутствующий объект дают одну и ту же ошибку.
type Gate struct {
	folders domain.FoldersRepo
	files   domain.FilesRepo
	links   domain.ShareLinksRepo
}

func NewGate(folders domain.FoldersRepo, files domain.FilesRepo, links domain.ShareLinksRepo) *Gate {
	return &Gate{folders: folders, files: files, links: links}
}

func (g *Gate) OwnedFolder(ctx context.Context, owner domain.UserID, id domain.FolderID) (domain.Folder, error) {
	f, err := g.folders.FolderByID(ctx, id)
	if err != nil {
		return domain.Folder{}, notFoundAs(err, domain.ErrFolderNotFound)
	}
	if f.OwnerID != owner || f.DeletedAt != nil {
		return domain.Folder{}, domain.ErrFolderNotFound
	}
	return f, nil
}

func (g *Gate) OwnedFile(ctx context.Context, owner domain.UserID, id domain.FileID) (domain.File, error) {
	f, err := g.files.FileByID(ctx, id)
	if err != nil {
		return domain.File{}, notFoundAs(err, domain.ErrFileNotFound)
	}
	if f.OwnerID != owner || f.DeletedAt != nil {
		return domain.File{}, domain.ErrFileNotFound
	}
	return f, nil
}

func (g *Gate) OwnedShareLink(ctx context.Context, owner domain.UserID, id domain.ShareLinkID) (domain.ShareLink, error) {
	l, err := g.links.ShareLinkByID(ctx, id)
	if err != nil {
		return domain.ShareLink{}, notFoundAs(err, domain.ErrShareLinkNotFound)
	}
	if l.OwnerID != owner {
		return domain.ShareLink{}, domain.ErrShareLinkNotFound
	}
	return l, nil
}

// notFoundAs заменяет общий ErrNotFound репозитория на конкретную ошибку сценария.
func notFoundAs(err, target error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return target
	}
	return err
}
