package file

import (
	"bufio"
	"errors"
	"net/http"
	"path"

	"github.com/google/uuid"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/service"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

const (
	multipartMemory = 32 << 20
	sniffLen        = 512
)

// Upload godoc
// @Summary     Upload file
// @Description multipart: file (обязательно), name (опционально, по умолчанию имя файла). Папка: query folder_id.
// @Tags        files
// @Security    BearerAuth
// @Accept      multipart/form-data
// @Produce     json
// @Param       folder_id query    string true  "destination folder id"
// @Param       file      formData file   true  "file"
// @Param       name      formData string false "display name"
// @Success     201 {object} domain.APIEnvelope{data=domain.File}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /files [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "file.upload"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	u, err := v1.CurrentUser(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	folderID, err := uuid.Parse(r.URL.Query().Get("folder_id"))
	if err != nil {
		logx.Warn(h.Log, reqID, op, "bad folder_id", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			logx.Warn(h.Log, reqID, op, "upload too large", err, "limit", tooBig.Limit)
		} else {
			logx.Warn(h.Log, reqID, op, "parse form", err)
		}
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	fh, hdr, err := r.FormFile("file")
	if err != nil {
		logx.Warn(h.Log, reqID, op, "missing file", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer fh.Close()

	name := r.FormValue("name")
	if name == "" {
		name = path.Base(hdr.Filename)
	}

	// тип из заголовка части, иначе угадываем по первым байтам
	content := bufio.NewReaderSize(fh, sniffLen)
	mime := hdr.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		head, _ := content.Peek(sniffLen)
		mime = http.DetectContentType(head)
	}

	f, err := h.Files.UploadFile(r.Context(), u.ID, service.UploadInput{
		FolderID: folderID,
		Name:     name,
		Size:     hdr.Size,
		MIME:     mime,
		Content:  content,
	})
	if err != nil {
		logx.Failure(h.Log, reqID, op, "upload failed", err, "user_id", u.ID, "folder_id", folderID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "file_id", f.ID, "size", f.SizeBytes, "mime", f.MIME)
	v1.WriteCreatedData(w, r, f)
}
