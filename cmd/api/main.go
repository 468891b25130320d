// Copyright (c) 2026 Ludoteca. All rights reserved.
// Author: luan.psilva.dev@gmail.com

// Command api is the entry point for the Ludoteca HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers and the promotion sweeper.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luanpsilva/ludoteca/internal/api"
	"github.com/luanpsilva/ludoteca/internal/forum/comment"
	"github.com/luanpsilva/ludoteca/internal/forum/post"
	"github.com/luanpsilva/ludoteca/internal/forum/promotion"
	"github.com/luanpsilva/ludoteca/internal/forum/rating"
	"github.com/luanpsilva/ludoteca/internal/platform/config"
	"github.com/luanpsilva/ludoteca/internal/platform/constants"
	"github.com/luanpsilva/ludoteca/internal/platform/migration"
	pgstore "github.com/luanpsilva/ludoteca/internal/platform/postgres"
	redisstore "github.com/luanpsilva/ludoteca/internal/platform/redis"
	"github.com/luanpsilva/ludoteca/internal/platform/sec"
	"github.com/luanpsilva/ludoteca/internal/users/account"
	"github.com/luanpsilva/ludoteca/internal/users/admin"
	"github.com/luanpsilva/ludoteca/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "ludoteca"))
	slog.SetDefault(log)

	log.Info("[Ludoteca] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "ludoteca"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	verifyTokenRepository := auth.NewVerificationTokenRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, resetTokenRepository, verifyTokenRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	accountRepository := account.NewAccountRepository(pool)
	preferencesRepository := account.NewPreferencesRepository(pool)
	accountSessionRepository := account.NewSessionRepository(pool)
	accountService := account.NewService(accountRepository, preferencesRepository, accountSessionRepository, log)
	accountHandler := account.NewHandler(accountService)

	adminRepository := admin.NewRepository(pool)
	adminService := admin.NewService(adminRepository, accountSessionRepository, log)
	adminHandler := admin.NewHandler(adminService)

	postRepository := post.NewRepository(pool)
	postService := post.NewService(postRepository, log)
	postHandler := post.NewHandler(postService)

	ratingRepository := rating.NewRepository(pool)
	ratingService := rating.NewService(ratingRepository, postRepository, log)
	ratingHandler := rating.NewHandler(ratingService)

	commentRepository := comment.NewRepository(pool)
	commentService := comment.NewService(commentRepository, postRepository, log)
	commentHandler := comment.NewHandler(commentService)

	// ── 9. Promotion Sweeper ──────────────────────────────────────────────
	// Lifecycle is tied to the process: cancelling rootCtx stops the loop.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	if cfg.SweepEnabled {
		promotionStore := promotion.NewStore(pool)
		promotionService := promotion.NewService(promotionStore, log)
		sweeper := promotion.NewSweeper(promotionService, cfg.SweepTimezone, log)
		sweeper.Start(rootCtx)
	} else {
		log.Warn("promotion_sweep_disabled")
	}

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Admin:     adminHandler,
		Post:      postHandler,
		Rating:    ratingHandler,
		Comment:   commentHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Stop the sweeper before draining HTTP requests.
	rootCancel()

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
