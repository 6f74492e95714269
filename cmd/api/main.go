package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/config"
	dbpkg "github.com/BruksfildServices01/petcrm/internal/db"
	"github.com/BruksfildServices01/petcrm/internal/infra/cache"
	"github.com/BruksfildServices01/petcrm/internal/logger"
	"github.com/BruksfildServices01/petcrm/internal/routes"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
)

func main() {

	cfg := config.Load()
	logger.InitLoggers(cfg.LogFile, cfg.LogLevel)
	timezone.SetDefault(cfg.DefaultTimezone)

	db := dbpkg.NewDB(cfg)

	slotCache := cache.NewSlotCache(newRedis(cfg), cfg.SlotCacheTTL)

	auditDispatcher := audit.NewDispatcher(audit.NewStore(db))
	defer auditDispatcher.Close()

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, slotCache, auditDispatcher)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoLogger.Infof("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLogger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorLogger.WithError(err).Error("server shutdown failed")
	}
}

// newRedis returns nil when no REDIS_URL is set, which disables the slot
// cache.
func newRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.ErrorLogger.Fatalf("invalid REDIS_URL: %v", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.ErrorLogger.WithError(err).Warn("redis unreachable, slot cache disabled")
		_ = rdb.Close()
		return nil
	}
	return rdb
}
