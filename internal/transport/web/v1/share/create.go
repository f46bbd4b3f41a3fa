package share

import (
	"net/http"
	"time"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

type createRequest struct {
	FileID    domain.FileID `json:"file_id"`
	ExpiresAt *time.Time    `json:"expires_at"` // RFC 3339, null, бессрочно
}

// Create godoc
// @Summary     Create share link
// @Description Публичная ссылка на чтение одного своего файла. Токен в ответе: секрет.
// @Tags        share-links
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request body createRequest true "file_id, expires_at"
// @Success     201 {object} domain.APIEnvelope{data=domain.ShareLink}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /share-links [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "share.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	u, err := v1.CurrentUser(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	var req createRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Warn(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	l, err := h.ShareLinks.Create(r.Context(), u.ID, req.FileID, req.ExpiresAt)
	if err != nil {
		logx.Failure(h.Log, reqID, op, "create failed", err, "file_id", req.FileID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "link_id", l.ID, "file_id", l.FileID)
	v1.WriteCreatedData(w, r, l)
}
