package auth

import (
	"net/http"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

// Register godoc
// @Summary     Register new user
// @Description Регистрация по email и паролю. Email сравнивается без учёта регистра.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body credentialsRequest true "email, password"
// @Success     201 {object} domain.APIEnvelope{data=domain.User}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     409 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "auth.register"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req credentialsRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Warn(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	u, err := h.Identity.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		logx.Failure(h.Log, reqID, op, "register failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID)
	v1.WriteCreatedData(w, r, u)
}
