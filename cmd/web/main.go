package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mathfacts.org/naep-web/internal/assets"
	"mathfacts.org/naep-web/internal/config"
	"mathfacts.org/naep-web/internal/dataset"
	"mathfacts.org/naep-web/internal/handlers"
	"mathfacts.org/naep-web/internal/metrics"
	mw "mathfacts.org/naep-web/internal/middleware"
	"mathfacts.org/naep-web/internal/observability"
	"mathfacts.org/naep-web/internal/render"
)

func main() {
	var (
		addr       string
		configPath string
	)
	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.Parse()

	cfg := &config.Config{}
	cfg.SetDefaults()
	if err := cfg.LoadFile(configPath); err != nil {
		panic(err)
	}
	cfg.ApplyEnv()
	if addr != "" {
		cfg.Addr = addr
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	loader, err := dataset.NewLoader(cfg.DatasetURL(), logger)
	if err != nil {
		logger.Fatal("build dataset loader", zap.Error(err))
	}
	renderer, err := render.New(logger)
	if err != nil {
		logger.Fatal("parse templates", zap.Error(err))
	}
	pages := &handlers.Pages{
		Loader:        loader,
		Prober:        assets.NewProber(cfg.AssetBaseURL, logger),
		Renderer:      renderer,
		CountryHeader: cfg.CountryHeader,
		RegionHeader:  cfg.RegionHeader,
	}

	metrics.Register(prometheus.DefaultRegisterer)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           buildRouter(cfg, logger, pages),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("web listening", zap.String("addr", cfg.Addr), zap.String("dataset", cfg.DatasetURL()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen", zap.Error(err))
	}
}

func buildRouter(cfg *config.Config, logger *zap.Logger, pages *handlers.Pages) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// Behind a trusted edge RealIP uses X-Forwarded-For to determine the
	// client IP. Ensure only trusted proxies can set these headers.
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(mw.GETOnly)
	r.Use(mw.SecureHeaders)

	r.Get("/healthz", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/", pages.Home)
	r.Get("/investor", pages.Investor)
	r.NotFound(pages.NotFound)

	return r
}
