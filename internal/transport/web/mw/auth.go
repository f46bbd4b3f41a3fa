package mw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

// Authenticator: то, что нужно middleware от Identity.
type Authenticator interface {
	Authenticate(ctx context.Context, t domain.Token) (domain.User, domain.TokenClaims, error)
}

// RequireAuth кладёт пользователя и клеймы в контекст запроса один раз;
// хендлеры дальше только читают их через domain.UserFromCtx.
func RequireAuth(a Authenticator, l *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ExtractBearer(r.Header.Get("Authorization"))
			if raw == "" {
				writeFail(w, http.StatusUnauthorized, domain.ErrCodeUnauth, "unauthorized")
				return
			}
			u, claims, err := a.Authenticate(r.Context(), domain.Token(raw))
			if err != nil {
				if errors.Is(err, domain.ErrUnauth) {
					l.Debug("auth rejected", zap.String("req_id", RequestIDFromCtx(r.Context())), zap.Error(err))
					writeFail(w, http.StatusUnauthorized, domain.ErrCodeUnauth, "unauthorized")
					return
				}
				l.Error("auth failed", zap.String("req_id", RequestIDFromCtx(r.Context())), zap.Error(err))
				writeFail(w, http.StatusInternalServerError, domain.ErrCodeUnexpected, "unexpected")
				return
			}
			ctx := domain.WithClaims(domain.WithUser(r.Context(), u), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ExtractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
