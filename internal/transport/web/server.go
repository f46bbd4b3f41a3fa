package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/config"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/auth"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/file"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/folder"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/health"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/share"
)

type Server struct {
	log    *zap.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *zap.Logger, cfg *config.Config, svc Services, healthDeps HealthDeps) *Server {
	h := handlers{
		health: &health.Handler{
			Log:     logger.Named("health"),
			DB:      healthDeps.DB,
			DBClock: healthDeps.DBClock,
			Cache:   healthDeps.Cache,
			Storage: healthDeps.Storage,
		},
		auth:   &auth.Handler{Log: logger.Named("auth"), Identity: svc.Identity},
		folder: &folder.Handler{Log: logger.Named("folder"), Folders: svc.Folders},
		file: &file.Handler{
			Log:            logger.Named("file"),
			Files:          svc.Files,
			MaxUploadBytes: cfg.MaxUploadBytes(),
		},
		share: &share.Handler{Log: logger.Named("share"), ShareLinks: svc.ShareLinks},
	}

	limiter := mw.NewRateLimiter(cfg.RateLimitPerMinute)

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(h, svc.Identity, limiter, logger),
		ReadTimeout:       5 * time.Minute, // загрузки файлов
		WriteTimeout:      5 * time.Minute,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

// Run блокируется до Close; ошибка только если сервер не смог стартовать/упал.
func (ws *Server) Run() error {
	ws.log.Info("started", zap.String("addr", ws.server.Addr))
	if err := ws.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Warn("forced to shutdown", zap.Error(err))
	}
	ws.log.Info("exited gracefully")
}
