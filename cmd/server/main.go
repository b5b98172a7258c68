// Package main runs the tournament registration HTTP server with the slot refresher and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tournamentpro/backend/config"
	"github.com/tournamentpro/backend/internal/auth"
	"github.com/tournamentpro/backend/internal/querycache"
	"github.com/tournamentpro/backend/internal/registrations"
	"github.com/tournamentpro/backend/internal/scheduler"
	"github.com/tournamentpro/backend/internal/site"
	"github.com/tournamentpro/backend/internal/tournaments"
	"github.com/tournamentpro/backend/pkg/database"
	"github.com/tournamentpro/backend/pkg/queue"
	"github.com/tournamentpro/backend/pkg/redis"
	"github.com/tournamentpro/backend/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	logger := newLogger(cfg.Log.Level)
	defer logger.Sync()

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	s3Client, err := storage.NewS3(ctx, storage.S3Config{
		Region:          cfg.Storage.Region,
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
		UsePathStyle:    cfg.Storage.UsePathStyle,
	}, logger)
	if err != nil {
		logger.Fatal("s3", zap.Error(err))
	}

	jobQueue := queue.NewQueue(rdb.Client, logger)
	cache := querycache.New(rdb.Client, querycache.TTLs{
		Count: cfg.Cache.CountTTL,
		List:  cfg.Cache.ListTTL,
		Slots: cfg.Cache.SlotsTTL,
	}, logger)

	// Registrations
	registrationRepo := registrations.NewRepository(pool)
	registrationSvc := registrations.NewService(registrationRepo, s3Client, cache, jobQueue, registrations.Options{
		SignedURLTTL:       cfg.Storage.SignedURLTTL(),
		MaxScreenshotBytes: cfg.Storage.MaxScreenshotBytes(),
	}, logger)

	// Tournament panels and slot availability
	tournamentSvc := tournaments.NewService(registrationSvc, cache, logger)

	// Admin auth
	authSvc := auth.NewService(
		auth.NewRepository(pool),
		auth.NewSessionStore(rdb.Client),
		auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours),
		auth.NewHasher(0),
		logger,
	)

	checks := map[string]func(context.Context) error{
		"postgres": pool.Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	router := newRouter(routes{
		corsOrigins:   cfg.Server.CORSAllowedOrigins,
		staticDir:     cfg.Web.StaticDir,
		auth:          auth.NewHandler(authSvc, logger),
		authenticator: authSvc,
		registrations: registrations.NewHandler(registrationSvc, cfg.Cache.CountStaleness, logger),
		tournaments:   tournaments.NewHandler(tournamentSvc, cfg.Cache.CountStaleness, logger),
		site:          site.NewHandler(jobQueue, logger),
		checks:        checks,
		jobsPending:   jobQueue.Len,
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Background slot refresh
	sched, err := scheduler.New(tournamentSvc, cfg.Cache.RefreshEvery, logger)
	if err != nil {
		logger.Fatal("scheduler", zap.Error(err))
	}
	sched.Start()

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := sched.Shutdown(); err != nil {
		logger.Error("scheduler shutdown", zap.Error(err))
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	if config.Level.Level() > zapcore.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	logger, _ := config.Build()
	return logger
}
