package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chromagraph/internal/coloring"
	"chromagraph/internal/config"
	"chromagraph/internal/handler"
	"chromagraph/internal/hub"
	"chromagraph/internal/interaction"
	"chromagraph/internal/logging"
	"chromagraph/internal/metrics"
	"chromagraph/internal/render"
	"chromagraph/internal/service"
	"chromagraph/internal/store"
	"chromagraph/internal/watcher"
)

const (
	shutdownTimeout   = 10 * time.Second
	dragSweepInterval = time.Minute
	dragIdleTimeout   = 5 * time.Minute
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the graph editor server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, path)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	return cmd
}

// coloringConfig maps the coloring config section onto the client settings
func coloringConfig(cfg config.ColoringConfig) coloring.Config {
	return coloring.Config{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.Timeout.Duration(),
		Breaker: coloring.BreakerConfig{
			Name:         "coloring",
			MaxRequests:  cfg.Breaker.MaxRequests,
			Interval:     cfg.Breaker.Interval.Duration(),
			Timeout:      cfg.Breaker.Timeout.Duration(),
			MinRequests:  cfg.Breaker.MinRequests,
			FailureRatio: cfg.Breaker.FailureRatio,
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config, path string) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if path != "" {
		logger.Info("config loaded", zap.String("path", path))
	} else {
		logger.Info("no config file found, using defaults")
	}

	collector := metrics.NewCollector("chromagraph")
	eventBus := service.NewEventBus()

	sseHub := hub.New(logger.Named("hub"))
	go sseHub.Run()
	defer sseHub.Stop()

	// Forward graph events to browsers
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(event)
			case <-ctx.Done():
				return
			}
		}
	}()

	st := store.New(store.WithLogger(logger.Named("store")))
	graphSvc := service.NewGraphService(st, eventBus,
		service.WithLogger(logger.Named("service")),
		service.WithMetrics(collector),
		service.WithRadius(cfg.Canvas.Radius))

	client := coloring.NewClient(coloringConfig(cfg.Coloring), coloring.WithLogger(logger.Named("coloring")))
	coloringSvc := service.NewColoringService(st, client, eventBus, collector, logger.Named("service"))

	drags := interaction.NewRegistry(graphSvc, graphSvc)
	go pruneDrags(ctx, drags, logger.Named("interaction"))

	renderer, err := render.New()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	handler.NewGraphHandler(graphSvc, coloringSvc, drags, renderer, logger.Named("handler")).Register(mux)
	handler.NewDragHandler(drags, logger.Named("handler")).Register(mux)
	mux.Handle("GET /events", sseHub)
	mux.Handle("GET /metrics", collector.Handler())

	// RequestID must wrap Logger so the logged request carries the mux pattern
	finalHandler := handler.Chain(mux,
		handler.Recover(logger),
		handler.RequestID,
		handler.Logger(logger.Named("http"), collector),
		handler.CORS(cfg.Server.AllowedOrigins),
	)

	if path != "" {
		w := watcher.New(path, func() { reloadColoring(path, client, logger) }).WithLogger(logger.Named("watcher"))
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("config watcher stopped", zap.Error(err))
			}
		}()
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      finalHandler,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  cfg.Server.IdleTimeout.Duration(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("coloring_endpoint", client.Endpoint()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	sseHub.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server stopped")
	return nil
}

// reloadColoring applies coloring endpoint and timeout changes from the config file
func reloadColoring(path string, client *coloring.Client, logger *zap.Logger) {
	cfg, _, err := config.LoadFromPath(path)
	if err != nil {
		logger.Warn("ignoring config change", zap.String("path", path), zap.Error(err))
		return
	}

	client.Reconfigure(cfg.Coloring.Endpoint, cfg.Coloring.Timeout.Duration())
	logger.Info("coloring client reconfigured",
		zap.String("endpoint", cfg.Coloring.Endpoint),
		zap.Duration("timeout", cfg.Coloring.Timeout.Duration()))
}

// pruneDrags drops drag sessions abandoned without a pointer-up or leave
func pruneDrags(ctx context.Context, drags *interaction.Registry, logger *zap.Logger) {
	ticker := time.NewTicker(dragSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := drags.Prune(dragIdleTimeout); n > 0 {
				logger.Debug("pruned idle drag sessions", zap.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}
