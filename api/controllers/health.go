package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/railparts-supply/railparts-backend/api/responses"
	"github.com/railparts-supply/railparts-backend/pkg/config"
	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
	"github.com/railparts-supply/railparts-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RailParts-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RailParts-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{
			"database": checkDependency(ctx, dbP),
			"redis":    checkDependency(ctx, redisP),
		}
		for name, status := range checks {
			if status != "ok" && status != "skipped" {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "dependency", name), "readiness check failed")
				}
				responses.WriteError(ctx, nil, w,
					pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(checks))
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

func checkDependency(ctx context.Context, p pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		return "unreachable"
	}
	return "ok"
}
