package share

import (
	"net/http"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

// List godoc
// @Summary     List share links of a file
// @Tags        share-links
// @Security    BearerAuth
// @Produce     json
// @Param       id path string true "file id"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.ShareLink}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /files/{id}/share-links [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "share.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	u, err := v1.CurrentUser(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	fileID, err := v1.PathID(r, "id", domain.ErrFileNotFound)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	links, err := h.ShareLinks.List(r.Context(), u.ID, fileID)
	if err != nil {
		logx.Failure(h.Log, reqID, op, "list failed", err, "file_id", fileID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "file_id", fileID, "count", len(links))
	v1.WriteOKData(w, r, links)
}
