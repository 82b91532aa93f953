package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	scoreboardservice "github.com/dappy-games/scoreboard/app/modules/scoreboard/application"
	scoreboardhandlers "github.com/dappy-games/scoreboard/app/modules/scoreboard/infrastructure/handlers"
	"github.com/dappy-games/scoreboard/config"
	"github.com/dappy-games/scoreboard/db/bundb"
	"github.com/dappy-games/scoreboard/eventbus"
	"github.com/dappy-games/scoreboard/internal/metrics"
)

// App wires configuration, storage, the event bus, and the HTTP surface.
type App struct {
	Cfg         *config.Config
	Logger      *slog.Logger
	ScoreLedger *scoreboardservice.ScoreLedger
	EventBus    eventbus.EventBus
	Metrics     *metrics.LedgerMetrics

	db         *bundb.DBService
	httpServer *http.Server
	metricsSrv *http.Server
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	ledgerMetrics := metrics.NewLedgerMetrics()
	ledger := scoreboardservice.NewScoreLedger(dbService.ScoreDB, bus, logger, ledgerMetrics)

	handler := scoreboardhandlers.NewScoreboardHandler(ledger, logger)
	limiter := scoreboardhandlers.NewSubmitLimiter(cfg.HTTP.SubmitRatePerSec, cfg.HTTP.SubmitBurst)

	app := &App{
		Cfg:         cfg,
		Logger:      logger,
		ScoreLedger: ledger,
		EventBus:    bus,
		Metrics:     ledgerMetrics,
		db:          dbService,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler.Routes(limiter),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	if addr := cfg.Observability.MetricsAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", ledgerMetrics.Handler())
		app.metricsSrv = &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts everything down.
func (app *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		app.Logger.Info("HTTP server listening", slog.String("addr", app.httpServer.Addr))
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	if app.metricsSrv != nil {
		go func() {
			app.Logger.Info("Metrics server listening", slog.String("addr", app.metricsSrv.Addr))
			if err := app.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("metrics server failed: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		app.Close()
		return err
	}

	app.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("HTTP shutdown failed", slog.Any("error", err))
	}
	if app.metricsSrv != nil {
		if err := app.metricsSrv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error("Metrics shutdown failed", slog.Any("error", err))
		}
	}

	app.Close()
	return nil
}

// Close releases the event bus and the database pool.
func (app *App) Close() {
	if err := app.EventBus.Close(); err != nil {
		app.Logger.Error("Error closing event bus", slog.Any("error", err))
	}
	if err := app.db.GetDB().Close(); err != nil {
		app.Logger.Error("Error closing database connection", slog.Any("error", err))
	}
}

// DB returns the database service.
func (app *App) DB() *bundb.DBService {
	return app.db
}
