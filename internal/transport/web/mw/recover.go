package mw

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
)

// Recover превращает панику хендлера в 500 с конвертом, стек, только в лог.
func Recover(l *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					l.Error("panic recovered",
						zap.String("req_id", RequestIDFromCtx(r.Context())),
						zap.Any("panic", p),
						zap.ByteString("stack", debug.Stack()),
					)
					writeFail(w, http.StatusInternalServerError, domain.ErrCodeUnexpected, "unexpected")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
