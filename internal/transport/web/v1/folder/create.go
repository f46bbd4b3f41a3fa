package folder

import (
	"net/http"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

type createRequest struct {
	Name     string           `json:"name"`
	ParentID *domain.FolderID `json:"parent_id"`
}

// Create godoc
// @Summary     Create folder
// @Description Создаёт папку в корне (parent_id = null) или внутри своей папки. Имена соседей уникальны.
// @Tags        folders
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request body createRequest true "name, parent_id"
// @Success     201 {object} domain.APIEnvelope{data=domain.Folder}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     409 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /folders [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "folder.create"
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

	f, err := h.Folders.CreateFolder(r.Context(), u.ID, req.Name, req.ParentID)
	if err != nil {
		logx.Failure(h.Log, reqID, op, "create failed", err, "user_id", u.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID, "folder_id", f.ID)
	v1.WriteCreatedData(w, r, f)
}
