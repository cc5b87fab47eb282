package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/stefanramac/online-cv-verison2/internal/api"
	"github.com/stefanramac/online-cv-verison2/internal/api/handler"
	"github.com/stefanramac/online-cv-verison2/internal/core/ports"
	"github.com/stefanramac/online-cv-verison2/internal/core/service"
	mongodb "github.com/stefanramac/online-cv-verison2/internal/infrastructure/db/mongo"
	redisdb "github.com/stefanramac/online-cv-verison2/internal/infrastructure/db/redis"
	"github.com/stefanramac/online-cv-verison2/internal/infrastructure/external"
	"github.com/stefanramac/online-cv-verison2/internal/infrastructure/queue"
	"github.com/stefanramac/online-cv-verison2/internal/pkg/config"
	"github.com/stefanramac/online-cv-verison2/internal/pkg/metrics"
	"github.com/stefanramac/online-cv-verison2/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Portfolio Blog API
// @version                     1.0
// @description                 REST API behind the portfolio site: accounts, session tokens and blog posts.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "portfolio-api",
	})

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	// --- Redis (optional) ---
	var (
		idem  ports.IdempotencyStore
		cache ports.Pinger
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
		idem = redisdb.NewIdempotencyStore(rdb)
		cache = redisdb.NewPinger(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
	} else {
		log.Info().Msg("redis not configured, idempotency keys disabled")
	}

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.MustRegister(reg)

	// --- Audit trail ---
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(dispatcherCtx)

	// --- Services ---
	users := mongodb.NewUserRepository(db)
	posts := mongodb.NewPostRepository(db)
	tokens := service.NewTokenService(cfg.JWTSecret, service.SessionTTL)

	e := api.NewRouter(api.Dependencies{
		Auth:   service.NewAuthService(users, tokens, cfg.BcryptCost, log),
		Posts:  service.NewPostService(posts, users, dispatcher, idem, log),
		Users:  service.NewUserService(users, cfg.BcryptCost, log),
		Tokens: tokens,
		Health: handler.HealthChecks{
			Database: mongodb.NewPinger(db),
			Cache:    cache,
			GitHub:   external.NewGitHubProbe(cfg.GitHubStatusURL, nil),
		},
		Log:       log,
		Metrics:   reg,
		StaticDir: cfg.StaticDir,
	})

	// --- Start HTTP Server ---
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during HTTP shutdown")
	}

	stopDispatcher()
	dispatcher.Wait()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error disconnecting from MongoDB")
	}

	log.Info().Msg("server gracefully stopped")
}
