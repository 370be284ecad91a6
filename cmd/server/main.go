// Finances API server entry point.
//
// @title        Finances API
// @version      1.0
// @description  Multi-tenant personal-finance backend: JWT auth and ownership-scoped account CRUD.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skryensya/Finances-API/internal/api"
	"github.com/Skryensya/Finances-API/internal/infrastructure/config"
	mongodb "github.com/Skryensya/Finances-API/internal/infrastructure/db/mongo"
	redisdb "github.com/Skryensya/Finances-API/internal/infrastructure/db/redis"
	"github.com/Skryensya/Finances-API/internal/infrastructure/queue"
	"github.com/Skryensya/Finances-API/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	auditRepo := mongodb.NewAuditRepository(db)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("audit index creation failed")
	}
	audit := queue.NewDispatcher(0, auditRepo, log)
	audit.Start(ctx)

	e := api.NewRouter(api.RouterConfig{
		DB:                  db,
		Redis:               rdb,
		JWTSecret:           cfg.JWTSecret,
		TokenTTL:            cfg.TokenTTL,
		ThrottleMaxFailures: cfg.Throttle.MaxFailures,
		ThrottleWindow:      cfg.Throttle.Window,
		Audit:               audit,
		Log:                 log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	// Close the audit intake after the HTTP server has drained; Stop
	// blocks until every buffered entry has been written.
	audit.Stop()
}
