package share

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

type ShareLinks interface {
	Create(ctx context.Context, owner domain.UserID, fileID domain.FileID, expiresAt *time.Time) (domain.ShareLink, error)
	Disable(ctx context.Context, owner domain.UserID, id domain.ShareLinkID) error
	List(ctx context.Context, owner domain.UserID, fileID domain.FileID) ([]domain.ShareLink, error)
	Access(ctx context.Context, token string) (string, error)
}

type Handler struct {
	Log        *zap.Logger
	ShareLinks ShareLinks
}
