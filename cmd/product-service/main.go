package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"

	"github.com/MikeMC777/cafe-altura/internal/config"
	"github.com/MikeMC777/cafe-altura/internal/db"
	"github.com/MikeMC777/cafe-altura/internal/health"
	"github.com/MikeMC777/cafe-altura/internal/httpx"
	prod "github.com/MikeMC777/cafe-altura/internal/product"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo prod.Repository
	if cfg.UseMemory() {
		repo = prod.NewMemRepo()
	} else {
		pool, err := db.Open(ctx, cfg.PostgresDSN, cfg.RunMigrations)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
		repo = prod.NewPGRepo(pool)
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[catalog-cache] redis %s unreachable, reads fall through: %v", cfg.RedisAddr, err)
		}
		repo = prod.NewCachedRepo(repo, rdb, cfg.CatalogCacheTTL)
		log.Printf("[catalog-cache] enabled ttl=%s", cfg.CatalogCacheTTL)
	}

	if cfg.ProductHealthAddr != "" {
		hs, err := health.Listen(cfg.ProductHealthAddr, "product-service")
		if err != nil {
			log.Fatalf("health: %v", err)
		}
		go func() { _ = hs.Serve() }()
		defer hs.Stop()
	}

	if err := httpx.Serve(ctx, "product-service", cfg.ProductSvcAddr, newRouter(repo, httpx.NewMetrics("product_service"))); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
