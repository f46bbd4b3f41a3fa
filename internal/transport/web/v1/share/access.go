package share

import (
	"net/http"

	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

// Access godoc
// @Summary     Public share access
// @Description Анонимно. 302 на подписанную ссылку. Несуществующая, выключенная и истёкшая ссылка: одинаковый 404.
// @Tags        public
// @Param       token path string true "share token"
// @Success     302
// @Failure     404 {object} domain.APIEnvelope
// @Failure     429 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /public/share/{token} [get]
func (h *Handler) Access(w http.ResponseWriter, r *http.Request) {
	const op = "share.access"
	reqID := mw.RequestIDFromCtx(r.Context())

	url, err := h.ShareLinks.Access(r.Context(), r.PathValue("token"))
	if err != nil {
		// токен в лог не пишем; disabled/expired уходят тем же 404, что и not found
		logx.Failure(h.Log, reqID, op, "access denied", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "redirect")
	v1.Redirect(w, r, url)
}
