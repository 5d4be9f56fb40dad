package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediaminder/database"
	"mediaminder/internal/config"
	"mediaminder/internal/logger"
	"mediaminder/internal/microservices/http-api/handler"
	"mediaminder/internal/microservices/http-api/middleware"
	"mediaminder/internal/microservices/http-api/repository"
	"mediaminder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("api server stopped")
	}
}

// run wires the server and blocks until it stops. Deferred closers run
// before main sees the error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	var limiter middleware.Limiter
	if cfg.RateLimitEnabled {
		if rdb := database.OpenRedis(cfg, log); rdb != nil {
			defer rdb.Close()
			limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst)
		} else {
			limiter = middleware.NewIPLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		}
	}

	var metrics *middleware.Metrics
	if cfg.PrometheusEnabled {
		metrics = middleware.NewMetrics()
	}

	catalog := service.NewCatalogService(store, log)
	router := handler.NewRouter(handler.Deps{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Auth:    service.NewAuthService(store, cfg, log),
		Library: service.NewLibraryService(store, catalog, log),
		Profile: service.NewProfileService(store, log),
		Genres:  service.NewGenreService(store),
		Limiter: limiter,
		Metrics: metrics,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return serve(srv, quit, cfg.ShutdownTimeout, log)
}

// serve runs srv until a signal arrives on quit or the listener fails, then
// shuts it down within timeout. A listener failure is returned.
func serve(srv *http.Server, quit <-chan os.Signal, timeout time.Duration, log logrus.FieldLogger) error {
	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("API server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var failed error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serveErr:
		failed = fmt.Errorf("server failed: %w", err)
		log.WithError(err).Error("server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	return failed
}

// openStore returns the Store selected by DB_DRIVER and a func releasing it.
func openStore(cfg *config.Config, log *logrus.Logger) (repository.Store, func(), error) {
	if cfg.DBDriver == "memory" {
		log.Warn("using in-memory store, data is lost on exit")
		return repository.NewMemoryStore(), func() {}, nil
	}

	gdb, err := database.OpenGorm(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBAutoMigrate {
		if err := database.RunMigrations(gdb, log); err != nil {
			_ = database.Close(gdb)
			return nil, nil, err
		}
	}
	return repository.NewStore(gdb), func() {
		if err := database.Close(gdb); err != nil {
			log.WithError(err).Warn("closing database")
		}
	}, nil
}
