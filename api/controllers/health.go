package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/beautytrade/inventory-backend/api/responses"
	"github.com/beautytrade/inventory-backend/pkg/config"
	"github.com/beautytrade/inventory-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BeautyTrade-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports degraded status when a backing dependency fails its
// ping. The response still carries per-dependency detail so operators can see
// which one is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP pinger, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		w.Header().Set("X-BeautyTrade-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		checks["database"] = checkDependency(ctx, logg, "database", dbP, &healthy)
		checks["redis"] = checkDependency(ctx, logg, "redis", redisP, &healthy)

		status := "ready"
		httpStatus := http.StatusOK
		if !healthy {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		responses.WriteSuccessStatus(w, httpStatus, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}

func checkDependency(ctx context.Context, logg *logger.Logger, name string, p pinger, healthy *bool) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		*healthy = false
		if logg != nil {
			logg.Error(logg.WithField(ctx, "dependency", name), "health.check_failed", err)
		}
		return "down"
	}
	return "up"
}
