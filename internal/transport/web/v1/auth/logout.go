package auth

import (
	"net/http"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

// Logout godoc
// @Summary     Logout
// @Description Отзывает текущий токен до конца его срока жизни.
// @Tags        auth
// @Security    BearerAuth
// @Success     204
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "auth.logout"
	reqID := mw.RequestIDFromCtx(r.Context())

	claims, ok := domain.ClaimsFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	if err := h.Identity.Logout(r.Context(), claims); err != nil {
		logx.Failure(h.Log, reqID, op, "logout failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", claims.UserID)
	v1.WriteNoContent(w, r)
}
