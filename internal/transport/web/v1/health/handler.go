package health

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/EgorLis/my-drive/internal/domain"
	"github.com/EgorLis/my-drive/internal/transport/web/logx"
	"github.com/EgorLis/my-drive/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-drive/internal/transport/web/v1"
)

type Pinger interface {
	Ping(context.Context) error
}

type Clock interface {
	DBTime(ctx context.Context) (time.Time, error)
}

type Handler struct {
	Log     *zap.Logger
	DB      Pinger
	DBClock Clock
	Cache   Pinger
	Storage Pinger
}

// Health godoc
// @Summary      Health
// @Description  Статус сервиса и текущее время БД (SELECT now()).
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.SystemHealth
// @Failure      503  {object}  domain.APIEnvelope
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	const op = "health.health"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	t, err := h.DBClock.DBTime(ctx)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db time failed", err)
		v1.WriteEnvelope(w, r, http.StatusServiceUnavailable, domain.Fail(domain.ErrCodeUnexpected, "database unavailable"))
		return
	}

	v1.WriteJSON(w, r, http.StatusOK, domain.SystemHealth{Status: "ok", DatabaseTime: t})
}

// Liveness godoc
// @Summary      Liveness check
// @Description  Проверка, жив ли сервис (не зависит от БД/кэша)
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.APIEnvelope{data=string}
// @Router       /healthz [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	v1.WriteOKData(w, r, "ok")
}

// Readiness godoc
// @Summary      Readiness check
// @Description  Проверка готовности сервиса (пинг БД, Redis и S3)
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.APIEnvelope{data=string}
// @Failure      503  {object}  domain.APIEnvelope
// @Router       /readyz [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	const op = "health.readiness"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := []struct {
		name string
		p    Pinger
	}{
		{"db", h.DB},
		{"cache", h.Cache},
		{"storage", h.Storage},
	}
	for _, c := range checks {
		if c.p == nil {
			continue
		}
		if err := c.p.Ping(ctx); err != nil {
			logx.Error(h.Log, reqID, op, c.name+" ping failed", err)
			v1.WriteEnvelope(w, r, http.StatusServiceUnavailable, domain.Fail(domain.ErrCodeUnexpected, c.name+" unavailable"))
			return
		}
	}

	logx.Info(h.Log, reqID, op, "ready")
	v1.WriteOKData(w, r, "ready")
}
