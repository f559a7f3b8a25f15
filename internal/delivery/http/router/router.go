package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/user/openperf-gateway/internal/delivery/http/handler"
	"github.com/user/openperf-gateway/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)

	h.RegisterRoutes(r)

	// Gateway self-metrics. /metrics is the engine's sample feed.
	r.Method(http.MethodGet, "/internal/metrics", promhttp.Handler())

	return r
}
