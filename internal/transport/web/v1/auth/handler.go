package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

// Identity: то, что хендлерам auth нужно от service.Identity.
type Identity interface {
	Register(ctx context.Context, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.Token, domain.TokenClaims, error)
	Logout(ctx context.Context, claims domain.TokenClaims) error
}

type Handler struct {
	Log      *zap.Logger
	Identity Identity
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
