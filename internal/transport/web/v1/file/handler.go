package file

import (
	"context"

	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/service"
)

type Files interface {
	UploadFile(ctx context.Context, owner domain.UserID, in service.UploadInput) (domain.File, error)
	DownloadFile(ctx context.Context, owner domain.UserID, id domain.FileID) (string, error)
	DeleteFile(ctx context.Context, owner domain.UserID, id domain.FileID) error
}

type Handler struct {
	Log   *zap.Logger
	Files Files

	MaxUploadBytes int64
}
