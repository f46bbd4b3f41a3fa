package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/auth/blacklist"
	"github.com/EgorLis/my-drive/internal/auth/password"
	"github.com/EgorLis/my-drive/internal/auth/token"
	"github.com/EgorLis/my-drive/internal/config"
	redisx "github.com/EgorLis/my-drive/internal/infra/cache/redis"
	"github.com/EgorLis/my-drive/internal/infra/database/postgres"
	s3storage "github.com/EgorLis/my-drive/internal/infra/storage/s3"
	"github.com/EgorLis/my-drive/internal/logger"
	"github.com/EgorLis/my-drive/internal/service"
	"github.com/EgorLis/my-drive/internal/transport/web"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *zap.Logger
	repo   *postgres.PGRepo
	cache  *redisx.Cache
}

func Build(ctx context.Context) (*App, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}

	root, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
		Path:       cfg.LogPath,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed init logger: %w", err)
	}
	base := root.Named("app")
	base.Info("configuration" + cfg.String())

	base.Info("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, root.Named("postgres"), cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Info("PostgreSQL is initialized")

	base.Info("init S3 storage")
	s3cfg := s3storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
	}
	s3, err := s3storage.New(ctx, s3cfg, root.Named("s3"))
	if err != nil {
		pgRepo.Close()
		return nil, fmt.Errorf("failed init s3: %w", err)
	}

	base.Info("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, root.Named("redis"))
	if err := rc.Ping(ctx); err != nil {
		pgRepo.Close()
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Info("Redis is initialized")

	// Auth primitives
	hasher := password.NewDefault()
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)
	revoked := blacklist.NewStore(rc)

	// Use cases
	gate := service.NewGate(pgRepo, pgRepo, pgRepo)
	svc := web.Services{
		Identity: service.NewIdentity(root.Named("service.identity"), pgRepo, hasher, tm, revoked),
		Folders: service.NewFolders(root.Named("service.folders"), pgRepo, pgRepo, pgRepo, gate,
			rc, cfg.ListCacheTTL),
		Files: service.NewFiles(root.Named("service.files"), pgRepo, pgRepo, gate, s3, cfg.S3PresignTTL,
			rc, cfg.ListCacheTTL),
		ShareLinks: service.NewShareLinks(root.Named("service.sharelinks"), pgRepo, pgRepo, pgRepo, gate,
			s3, cfg.S3PresignTTL),
	}
	healthDeps := web.HealthDeps{DB: pgRepo, DBClock: pgRepo, Cache: rc, Storage: s3}

	base.Info("init Server")
	server := web.New(root.Named("server"), cfg, svc, healthDeps)
	base.Info("Server is initialized")

	base.Info("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		repo:   pgRepo,
		cache:  rc,
	}, nil
}

// Run работает до отмены ctx (сигнал) или падения HTTP-сервера.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("start application...")

	errCh := make(chan error, 1)
	go func() { errCh <- a.server.Run() }()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		if runErr != nil {
			a.log.Error("server failed", zap.Error(runErr))
		}
	}
	a.log.Info("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()
	_ = a.log.Sync()

	return runErr
}
