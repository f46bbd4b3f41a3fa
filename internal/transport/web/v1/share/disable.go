package share

import (
	"net/http"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

// Disable godoc
// @Summary     Disable share link
// @Description Выключает ссылку навсегда. Повторный вызов тоже 204.
// @Tags        share-links
// @Security    BearerAuth
// @Param       id path string true "share link id"
// @Success     204
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /share-links/{id}/disable [post]
func (h *Handler) Disable(w http.ResponseWriter, r *http.Request) {
	const op = "share.disable"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	u, err := v1.CurrentUser(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	id, err := v1.PathID(r, "id", domain.ErrShareLinkNotFound)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.ShareLinks.Disable(r.Context(), u.ID, id); err != nil {
		logx.Failure(h.Log, reqID, op, "disable failed", err, "link_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "link_id", id)
	v1.WriteNoContent(w, r)
}
