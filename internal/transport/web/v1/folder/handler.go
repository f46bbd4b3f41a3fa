package folder

import (
	"context"

	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

type Folders interface {
	CreateFolder(ctx context.Context, owner domain.UserID, name string, parent *domain.FolderID) (domain.Folder, error)
	ListContent(ctx context.Context, owner domain.UserID, folder *domain.FolderID) (domain.FolderContent, error)
}

type Handler struct {
	Log     *zap.Logger
	Folders Folders
}
