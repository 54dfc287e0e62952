package main

import (
	"context"
	"errors"
	"fmt"
	"gourluses/cache"
	"gourluses/cache/inmemory"
	"gourluses/cache/redis"
	"gourluses/config"
	"gourluses/logger"
	"gourluses/repository"
	"gourluses/server"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	env       config.Env
	db        repository.Repository
	zaplogger *zap.Logger
)

func main() {
	var err error
	env, err = config.Process()
	if err != nil {
		log.Fatalf("failed to process env: %s", err)
	}

	zaplogger, err = logger.New(env.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %s", err)
	}
	defer zaplogger.Sync()

	db, err = openRepository(env, zaplogger)
	if err != nil {
		zaplogger.Fatal("failed to open repository", zap.Error(err))
	}

	gin.SetMode(env.GinMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.AppPort),
		Handler:           server.NewRouter(db, zaplogger, env.RequestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zaplogger.Info("listening", zap.String("addr", srv.Addr),
			zap.String("storage", env.Storage), zap.String("cache", env.CacheEngine))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zaplogger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zaplogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zaplogger.Error("shutdown failed", zap.Error(err))
	}
}

func openRepository(env config.Env, logger *zap.Logger) (repository.Repository, error) {
	var (
		repo repository.Repository
		err  error
	)
	switch env.Storage {
	case config.StoragePostgres:
		repo, err = repository.NewPGRepo(env.DBPort, env.DBHost, env.DBUser, env.DBName, env.DBPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to connect db: %w", err)
		}
	default:
		repo = repository.NewMemoryRepo()
	}

	switch env.CacheEngine {
	case config.CacheInMemory:
		repo = cache.New(repo, inmemory.New(env.CacheTTL, cache.DefaultClearInterval), env.CacheTTL, logger)
	case config.CacheRedis:
		repo = cache.New(repo, redis.New(env.CacheHost, env.CachePort, logger), env.CacheTTL, logger)
	}
	return repo, nil
}
