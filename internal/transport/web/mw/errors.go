package mw

import (
	"encoding/json"
	"net/http"

	"github.com/EgorLis/my-drive/internal/domain"
)

// writeFail пишет конверт ошибки. v1 здесь не импортируем: v1 сам зависит от mw.
func writeFail(w http.ResponseWriter, status, code int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.Fail(code, text))
}
