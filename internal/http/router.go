// Package httpapi assembles the public HTTP surface: middleware chain,
// feature handlers, health and metrics endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	audithandler "tallyboard/internal/audit/handler"
	stationhandler "tallyboard/internal/station/handler"
	turnouthandler "tallyboard/internal/turnout/handler"
	"tallyboard/pkg/platform/httputil"
	"tallyboard/pkg/platform/middleware/accesslog"
	"tallyboard/pkg/platform/middleware/metadata"
	"tallyboard/pkg/platform/middleware/operator"
	"tallyboard/pkg/platform/middleware/recovery"
	"tallyboard/pkg/platform/middleware/requestid"
	"tallyboard/pkg/platform/middleware/requesttime"
)

// HealthFunc reports whether a backing dependency is reachable.
type HealthFunc func(ctx context.Context) error

// Deps carries everything the router mounts.
type Deps struct {
	Turnouts *turnouthandler.Handler
	Stations *stationhandler.Handler
	Audit    *audithandler.Handler

	Logger        *slog.Logger
	JWTSigningKey string

	// Health checks run on /healthz, keyed by dependency name. A nil map
	// means the process reports healthy as long as it serves.
	Health map[string]HealthFunc
}

// NewRouter wires the middleware chain and all endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(recovery.Middleware(d.Logger))
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(operator.Middleware(d.JWTSigningKey, d.Logger))
	r.Use(accesslog.Middleware(d.Logger))
	r.Use(chimw.Timeout(30 * time.Second))

	d.Stations.Register(r)
	d.Turnouts.Register(r)
	d.Audit.Register(r)

	r.Get("/healthz", handleHealth(d.Health))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func handleHealth(checks map[string]HealthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				deps[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(deps) > 0 {
			body["dependencies"] = deps
		}
		httputil.WriteJSON(w, status, body)
	}
}
