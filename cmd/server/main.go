package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hub-routing-service/internal/adapters/cache"
	"hub-routing-service/internal/adapters/osrm"
	"hub-routing-service/internal/adapters/repositories"
	"hub-routing-service/internal/api"
	"hub-routing-service/internal/config"
	"hub-routing-service/internal/platform/db"
	"hub-routing-service/internal/platform/obs"
	"hub-routing-service/internal/ports"
	"hub-routing-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (SQL store, OSRM, route cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Initialize schema and, when configured, seed the hub network on startup.
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	if cfg.SeedPath != "" {
		if err := repositories.SeedFromJSON(ctx, conn, cfg.DBDriver, cfg.SeedPath); err != nil {
			return err
		}
	}

	routeCache, closeCache, err := newRouteCache(ctx, cfg, conn, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	opts := []osrm.Option{osrm.WithLogger(logger)}
	if routeCache != nil {
		opts = append(opts, osrm.WithCache(routeCache))
	}
	router, err := osrm.NewClient(cfg.OSRMBaseURL, cfg.OSRMTimeout, opts...)
	if err != nil {
		return err
	}

	hubs := repositories.NewSQLHubRepository(conn, cfg.DBDriver, logger)
	routes := repositories.NewSQLRouteRepository(conn, cfg.DBDriver, logger)
	strategies := services.NewStrategies(hubs, router, cfg.MaxSnapshotHubs, logger)
	svc := services.NewRouteService(hubs, routes, strategies, logger)

	// Write timeout covers a cold-cache provider call plus graph search.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.OSRMTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("db_driver", cfg.DBDriver),
			zap.String("route_cache", cfg.RouteCache),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouteCache builds the configured provider response cache. A nil cache
// disables caching.
func newRouteCache(ctx context.Context, cfg config.Config, conn *sql.DB, logger *zap.Logger) (ports.RoadRouteCache, func(), error) {
	noop := func() {}
	switch cfg.RouteCache {
	case config.CacheMemory:
		return cache.NewLRURouteCache(cfg.RouteCacheSize, cfg.RouteCacheTTL), noop, nil
	case config.CacheRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, noop, fmt.Errorf("route cache: ping redis %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisRouteCache(rdb, cfg.RouteCacheTTL), func() { rdb.Close() }, nil
	case config.CacheSQL:
		return cache.NewSQLRouteCache(conn, cfg.DBDriver, cfg.RouteCacheTTL, logger), noop, nil
	default:
		return nil, noop, nil
	}
}
