package folder

import (
	"net/http"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

// Content godoc
// @Summary     Folder content
// @Description Прямые дочерние папки и файлы одной папки, без рекурсии.
// @Tags        folders
// @Security    BearerAuth
// @Produce     json
// @Param       id path string true "folder id"
// @Success     200 {object} domain.APIEnvelope{data=domain.FolderContent}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /folders/{id}/content [get]
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	const op = "folder.content"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathID(r, "id", domain.ErrFolderNotFound)
	if err != nil {
		logx.Warn(h.Log, reqID, op, "bad folder id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}
	h.list(w, r, op, &id)
}

// RootContent godoc
// @Summary     Root content
// @Description Папки верхнего уровня пользователя. Файлы всегда лежат в папке, поэтому files пуст.
// @Tags        folders
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=domain.FolderContent}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /folders/root/content [get]
func (h *Handler) RootContent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "folder.root_content", nil)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, op string, folder *domain.FolderID) {
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	u, err := v1.CurrentUser(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	content, err := h.Folders.ListContent(r.Context(), u.ID, folder)
	if err != nil {
		logx.Failure(h.Log, reqID, op, "list failed", err, "user_id", u.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "folders", len(content.Folders), "files", len(content.Files))
	v1.WriteOKData(w, r, content)
}
