package router

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/shandysiswandi/floorease/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed in
// app.maintenance.endpoints. "*" blocks everything except /health.
func middlewareMaintenance(cfg config.Config) Middleware {
	var blocked map[string]struct{}
	if cfg != nil {
		blocked = lo.SliceToMap(cfg.GetArray("app.maintenance.endpoints"), func(s string) (string, struct{}) {
			return s, struct{}{}
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			_, all := blocked["*"]
			_, one := blocked[route]
			if one || (all && route != "/health") {
				writeJSON(w, errorResponse{Message: "Service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
