package file

import (
	"net/http"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

// Download godoc
// @Summary     Download file
// @Description 302 на подписанную ссылку хранилища (живёт S3_PRESIGN_TTL, по умолчанию 1 час).
// @Tags        files
// @Security    BearerAuth
// @Param       id path string true "file id"
// @Success     302
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /files/{id}/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "file.download"
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

	url, err := h.Files.DownloadFile(r.Context(), u.ID, id)
	if err != nil {
		logx.Failure(h.Log, reqID, op, "download failed", err, "file_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "redirect", "file_id", id)
	v1.Redirect(w, r, url)
}
