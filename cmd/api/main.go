package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/logger"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.SetupDefault(os.Stdout, logger.Options{
		App:     "hris-attendance",
		Version: version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(dsn); err != nil {
			return err
		}
		slog.Info("Database migrations applied")
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(registry)

	eventRepo := postgresql.NewEventRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	reconciler := attendanceService.NewReconciler(loc, time.Now, recorder)
	attendanceSvc := attendanceService.NewAttendanceService(eventRepo, postgresql.TxRunner(db), reconciler, recorder)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	rateLimiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.RateLimit.EventsPerMinute))
	defer rateLimiter.Stop()

	router := appHTTP.NewRouter(JWTService, attendanceHandler, appHTTP.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log,
		RateLimiter:    rateLimiter,
		MetricsHandler: metrics.Handler(registry),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
