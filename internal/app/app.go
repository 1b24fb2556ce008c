package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adamatova/community-api/pkg/logger"
)

// App represents the main application structure.
type App struct {
	serviceProvider *serviceProvider
	httpServer      *http.Server
}

// NewApp initializes the application and its dependencies.
func NewApp(ctx context.Context) (*App, error) {
	a := &App{}

	err := a.initDeps(ctx)
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}

	return a, nil
}

// Run starts the application.
func (a *App) Run() {
	defer a.gracefulShutdown()

	logger.Log.Info("Community API starting")

	cfg := a.serviceProvider.Cfg()
	a.httpServer = &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      a.serviceProvider.HTTPHandler().Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout(),
		WriteTimeout: cfg.HTTP.WriteTimeout(),
		IdleTimeout:  cfg.HTTP.IdleTimeout(),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Log.Infof("HTTP server listening on %s", cfg.HTTP.Addr())
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Errorf("http server stopped: %v", err)
		}
	}()

	// Start status sweeper scheduler
	if err := a.serviceProvider.SweeperService().StartScheduler(); err != nil {
		logger.Log.Errorf("failed to start sweeper scheduler: %v", err)
	}

	// Start dashboard change watcher
	a.serviceProvider.DashboardService().StartWatcher()

	// Wait for shutdown signal
	sig := <-sigChan
	logger.Log.Infof("Received signal %v, starting graceful shutdown...", sig)
}

// gracefulShutdown handles cleanup of all resources
func (a *App) gracefulShutdown() {
	logger.Log.Info("Starting graceful shutdown...")

	if a.serviceProvider != nil {
		if a.serviceProvider.sweeperService != nil {
			logger.Log.Info("Stopping sweeper scheduler...")
			a.serviceProvider.sweeperService.StopScheduler()
			logger.Log.Info("Sweeper scheduler stopped")
		}

		if a.serviceProvider.dashboardService != nil {
			logger.Log.Info("Stopping dashboard watcher...")
			a.serviceProvider.dashboardService.StopWatcher()
			logger.Log.Info("Dashboard watcher stopped")
		}
	}

	if a.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.httpServer.Shutdown(ctx); err != nil {
			logger.Log.Errorf("Error shutting down http server: %v", err)
		} else {
			logger.Log.Info("HTTP server stopped")
		}
	}

	if a.serviceProvider != nil && a.serviceProvider.db != nil {
		logger.Log.Info("Closing database connection...")
		sqlDB, err := a.serviceProvider.db.DB()
		if err != nil {
			logger.Log.Errorf("Failed to get underlying sql.DB: %v", err)
		} else {
			if err := sqlDB.Close(); err != nil {
				logger.Log.Errorf("Error closing database connection: %v", err)
			} else {
				logger.Log.Info("Database connection closed")
			}
		}
	}

	logger.Log.Info("Graceful shutdown completed")

	// Close logger resources last
	if err := logger.Cleanup(); err != nil {
		// Can't log this error as logger is closing
		_ = err
	}
}

// initDeps initializes application dependencies
func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initServiceProvider,
		a.initLogger,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return fmt.Errorf("init deps: %w", err)
		}
	}

	return nil
}

func (a *App) initServiceProvider(_ context.Context) error {
	a.serviceProvider = newServiceProvider()
	return nil
}

func (a *App) initLogger(_ context.Context) error {
	cfg := a.serviceProvider.Cfg().Logger
	return logger.Init(logger.Config{
		Debug:        cfg.Debug(),
		TimeLocation: cfg.TimeLocation(),
		LogToFile:    cfg.LogToFile(),
		LogsDir:      cfg.LogsDir(),
	})
}
