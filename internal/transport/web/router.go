package web

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/EgorLis/my-drive/internal/docs"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/auth"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/file"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/folder"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/health"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/share"
)

type handlers struct {
	health *health.Handler
	auth   *auth.Handler
	folder *folder.Handler
	file   *file.Handler
	share  *share.Handler
}

func newRouter(h handlers, authn mw.Authenticator, limiter *mw.RateLimiter, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	private := mw.RequireAuth(authn, logger.Named("auth"))
	limited := limiter.Middleware

	// health
	mux.HandleFunc("GET /health", h.health.Health)
	mux.HandleFunc("GET /healthz", h.health.Liveness)
	mux.HandleFunc("GET /readyz", h.health.Readiness)

	// auth
	mux.HandleFunc("POST /auth/register", h.auth.Register)
	mux.Handle("POST /auth/login", limited(http.HandlerFunc(h.auth.Login)))
	mux.Handle("POST /auth/logout", private(http.HandlerFunc(h.auth.Logout)))

	// folders; литеральный /root/ приоритетнее {id}
	mux.Handle("POST /folders", private(http.HandlerFunc(h.folder.Create)))
	mux.Handle("GET /folders/root/content", private(http.HandlerFunc(h.folder.RootContent)))
	mux.Handle("GET /folders/{id}/content", private(http.HandlerFunc(h.folder.Content)))

	// files
	mux.Handle("POST /files", private(http.HandlerFunc(h.file.Upload)))
	mux.Handle("GET /files/{id}/download", private(http.HandlerFunc(h.file.Download)))
	mux.Handle("DELETE /files/{id}", private(http.HandlerFunc(h.file.Delete)))
	mux.Handle("GET /files/{id}/share-links", private(http.HandlerFunc(h.share.List)))

	// share links
	mux.Handle("POST /share-links", private(http.HandlerFunc(h.share.Create)))
	mux.Handle("POST /share-links/{id}/disable", private(http.HandlerFunc(h.share.Disable)))
	mux.Handle("GET /public/share/{token}", limited(http.HandlerFunc(h.share.Access)))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger.Named("access"))(mw.Recover(logger)(mux)))
}
