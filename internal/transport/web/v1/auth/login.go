package auth

import (
	"net/http"
	"time"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login godoc
// @Summary     Login
// @Description Выдаёт bearer-токен. Неизвестный email и неверный пароль дают одинаковый 401.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body credentialsRequest true "email, password"
// @Success     200 {object} domain.APIEnvelope{data=loginResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     429 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "auth.login"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req credentialsRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Warn(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	tok, claims, err := h.Identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logx.Failure(h.Log, reqID, op, "login failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", claims.UserID)
	v1.WriteOKData(w, r, loginResponse{
		AccessToken: string(tok),
		TokenType:   "bearer",
		ExpiresAt:   claims.ExpiresAt,
	})
}
