package web

import (
	"github.com/EgorLis/my-drive/internal/service"
	"github.com/EgorLis/my-drive/internal/transport/web/v1/health"
)

// Services: use cases, которые раздаёт HTTP-слой.
type Services struct {
	Identity   *service.Identity
	Folders    *service.Folders
	Files      *service.Files
	ShareLinks *service.ShareLinks
}

// HealthDeps: зависимости для /health и /readyz.
type HealthDeps struct {
	DB      health.Pinger
	DBClock health.Clock
	Cache   health.Pinger
	Storage health.Pinger
}
