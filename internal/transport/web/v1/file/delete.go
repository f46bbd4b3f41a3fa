package file

import (
	"net/http"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete file
// @Tags        files
// @Security    BearerAuth
// @Param       id path string true "file id"
// @Success     204
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /files/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "file.delete"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	u, err := v1.CurrentUser(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	id, err := v1.PathID(r, "id", domain.ErrFileNotFound)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Files.DeleteFile(r.Context(), u.ID, id); err != nil {
		logx.Failure(h.Log, reqID, op, "delete failed", err, "file_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "file_id", id)
	v1.WriteNoContent(w, r)
}
