package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
)

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func (healthResponse) Message() string { return "Service is healthy" }

// health reports liveness of the process and its stateful backends.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} router.successResponse{data=healthResponse} "Healthy"
// @Failure 503 {object} router.errorResponse "A backend is unavailable"
// @Router /health [get]
func (a *App) health(r *router.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]func(context.Context) error{
		"database": a.dbConn.Ping,
		"redis":    func(ctx context.Context) error { return a.cacheConn.Ping(ctx).Err() },
	}
	if a.mongoClient != nil {
		checks["mongo"] = func(ctx context.Context) error { return a.mongoClient.Ping(ctx, nil) }
	}

	for name, ping := range checks {
		if err := ping(ctx); err != nil {
			slog.ErrorContext(ctx, "health check failed", "backend", name, "error", err)
			return nil, goerror.NewBusiness("Service unavailable", goerror.CodeUnavailable)
		}
	}

	return healthResponse{Status: "ok", Time: a.clock.Now().UTC().Format(time.RFC3339)}, nil
}
