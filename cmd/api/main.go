package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	"github.com/BruksfildServices01/lesson-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/lesson-booking/internal/db"
	"github.com/BruksfildServices01/lesson-booking/internal/handlers"
	"github.com/BruksfildServices01/lesson-booking/internal/infra/cache"
	"github.com/BruksfildServices01/lesson-booking/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/lesson-booking/internal/infra/repository"
	"github.com/BruksfildServices01/lesson-booking/internal/logger"
	"github.com/BruksfildServices01/lesson-booking/internal/metrics"
	"github.com/BruksfildServices01/lesson-booking/internal/middleware"
	"github.com/BruksfildServices01/lesson-booking/internal/notify"
	"github.com/BruksfildServices01/lesson-booking/internal/routes"
	"github.com/BruksfildServices01/lesson-booking/internal/tracing"
	ucAuth "github.com/BruksfildServices01/lesson-booking/internal/usecase/auth"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// TRACING
	// ======================================================
	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			zl.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	// ======================================================
	// STORAGE
	// ======================================================
	db, err := dbpkg.Open(cfg.Database, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			zl.Warn("database close failed", zap.Error(err))
		}
	}()

	deps := routes.Dependencies{
		Metrics:     metrics.New(),
		Log:         zl,
		SlotCache:   cache.Nop{},
		ReadyChecks: map[string]handlers.ReadyCheck{},
	}

	if db == nil {
		store := memory.New()
		deps.Windows, deps.Bookings, deps.Settings, deps.Users, deps.AuditLog = store, store, store, store, store
	} else {
		deps.Windows = infraRepo.NewAvailabilityGormRepository(db)
		deps.Bookings = infraRepo.NewBookingGormRepository(db)
		deps.Settings = infraRepo.NewSettingsGormRepository(db)
		deps.Users = infraRepo.NewUserGormRepository(db)
		deps.AuditLog = infraRepo.NewAuditGormRepository(db)
		deps.ReadyChecks["database"] = dbpkg.Ping(db)
	}

	if err := ucAuth.EnsureAdmin(ctx, deps.Users, cfg.Admin.Username, cfg.Admin.Password, zl); err != nil {
		return err
	}

	// ======================================================
	// CACHE (optional)
	// ======================================================
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			zl.Warn("redis unavailable, slot cache disabled", zap.Error(err))
		} else {
			defer func() { _ = client.Close() }()
			deps.SlotCache = cache.NewRedisSlotCache(client, cfg.Redis.SlotsTTL)
			deps.ReadyChecks["redis"] = func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}
		}
	}

	// ======================================================
	// BACKGROUND DISPATCHERS
	// ======================================================
	deps.Audit = audit.NewDispatcher(audit.New(deps.AuditLog), zl)
	defer deps.Audit.Close()

	var sender notify.Sender = notify.NewLogSender(zl)
	if cfg.SMTP.Host != "" {
		sender = notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	}
	notifiers := notify.Multi{notify.NewEmailNotifier(sender, deps.Settings)}

	if len(cfg.Kafka.Brokers) > 0 {
		kn := notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := kn.Close(); err != nil {
				zl.Warn("kafka writer close failed", zap.Error(err))
			}
		}()
		notifiers = append(notifiers, kn)
	}

	deps.Notifier = notify.NewDispatcher(notifiers, zl)
	defer deps.Notifier.Close()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestIDMiddleware(),
		logger.GinMiddleware(zl),
		middleware.Metrics(deps.Metrics),
		middleware.CORSMiddleware(cfg.CORS.AllowedOrigins),
		gin.Recovery(),
	)

	routes.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, tracing.ServiceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
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

	zl.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
