package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/i18nrouter/pkg/config"
	"github.com/dmitrymomot/i18nrouter/pkg/httpserver"
	"github.com/dmitrymomot/i18nrouter/pkg/logger"
	"github.com/dmitrymomot/i18nrouter/pkg/manifest"
	"github.com/dmitrymomot/i18nrouter/pkg/metrics"
	"github.com/dmitrymomot/i18nrouter/pkg/reload"
	"github.com/dmitrymomot/i18nrouter/pkg/requestid"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve routing decisions over HTTP",
		Long: `Serve the routes manifest at ` + ManifestPath + `, Prometheus metrics at
/metrics and the routing decision for any other path as JSON.

The routing document is watched and reloaded on change unless
I18NROUTER_WATCH=false. A document that fails to build is logged and the
previous manifest keeps serving. When watching, a broken document at startup
leaves the server unready (503) until a valid one is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	return cmd
}

func (a *app) newLogger() (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(a.settings.Environment, "i18nrouter"),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if a.settings.LogLevel != "" {
		level, err := logger.ParseLevel(a.settings.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if a.settings.LogFormat != "" {
		format, err := logger.ParseFormat(a.settings.LogFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFormat(format))
	}
	return logger.New(opts...), nil
}

// initialStore loads the routing document once. With watching enabled a broken
// document is not fatal: the server starts unready and the watcher fills the
// store once the document builds.
func (a *app) initialStore(ctx context.Context, log *slog.Logger) (*manifest.Store, error) {
	m, err := a.loadManifest()
	if err == nil {
		return manifest.NewStore(m), nil
	}
	if !a.settings.Watch {
		return nil, err
	}
	log.ErrorContext(ctx, "initial routing document rejected, waiting for a valid one",
		logger.ConfigFile(a.settings.ConfigFile),
		logger.Error(err),
	)
	return manifest.NewStore(nil), nil
}

func (a *app) serve(ctx context.Context) error {
	log, err := a.newLogger()
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return err
	}

	store, err := a.initialStore(ctx, log)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.New(metrics.WithRegistry(registry))
	collector.SetManifest(store.Load())

	handler := newRouter(routerDeps{
		store:     store,
		collector: collector,
		gatherer:  registry,
		logger:    log,
	})
	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx, handler) })

	if a.settings.Watch {
		w, err := reload.New(a.settings.ConfigFile, store,
			reload.WithLoader(func(path string) (*manifest.Manifest, error) {
				return config.LoadManifest(path, a.tableOptions()...)
			}),
			reload.WithDebounce(a.settings.ReloadDebounce),
			reload.WithLogger(log),
			reload.WithHook(collector.ObserveReload),
			reload.WithHook(func(err error) {
				if err == nil {
					collector.SetManifest(store.Load())
				}
			}),
		)
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	log.InfoContext(ctx, "i18nrouter serving",
		logger.ConfigFile(a.settings.ConfigFile),
		slog.String("addr", httpCfg.Addr),
		slog.Bool("watch", a.settings.Watch),
	)
	return g.Wait()
}
