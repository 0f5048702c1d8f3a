package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/i18nrouter/pkg/httpserver"
	"github.com/dmitrymomot/i18nrouter/pkg/logger"
	"github.com/dmitrymomot/i18nrouter/pkg/manifest"
	"github.com/dmitrymomot/i18nrouter/pkg/metrics"
	"github.com/dmitrymomot/i18nrouter/pkg/requestid"
	"github.com/dmitrymomot/i18nrouter/pkg/routing"
)

// ManifestPath is where the active routes manifest is served.
const ManifestPath = "/_routes-manifest.json"

var errNoManifest = errors.New("no routing manifest loaded")

type routerDeps struct {
	store     *manifest.Store
	collector *metrics.Collector
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
}

// newRouter assembles the HTTP surface: the manifest, metrics, health checks and a
// catch-all that echoes the routing decision for every other request.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware())

	r.Get(ManifestPath, manifestHandler(deps.store, deps.logger))
	r.Get("/healthz", httpserver.HealthCheckHandler(deps.logger))
	r.Get("/readyz", httpserver.HealthCheckHandler(deps.logger, func(context.Context) error {
		if deps.store.Load() == nil {
			return errNoManifest
		}
		return nil
	}))
	if deps.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.gatherer, promhttp.HandlerOpts{}))
	}

	opts := []routing.Option{routing.WithLogger(deps.logger)}
	if deps.collector != nil {
		opts = append(opts, routing.WithObserver(deps.collector.ObserveDecision))
	}
	r.Group(func(r chi.Router) {
		r.Use(routing.Middleware(deps.store, opts...))
		r.HandleFunc("/*", decisionHandler)
	})

	return r
}

func manifestHandler(store *manifest.Store, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := store.Load()
		if m == nil {
			http.Error(w, errNoManifest.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := m.Encode(w); err != nil {
			log.ErrorContext(r.Context(), "encode routes manifest", logger.Error(err))
		}
	}
}

func decisionHandler(w http.ResponseWriter, r *http.Request) {
	d, ok := routing.FromContext(r.Context())
	if !ok {
		http.Error(w, errNoManifest.Error(), http.StatusServiceUnavailable)
		return
	}

	status := http.StatusOK
	if d.Outcome == routing.OutcomeOutsideBasePath {
		status = http.StatusNotFound
	}
	if d.Locale != "" {
		w.Header().Set("Content-Language", d.Locale)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(d)
}
