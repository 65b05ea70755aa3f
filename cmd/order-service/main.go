// @title       Café de Altura - Pedidos API
// @version     1.0
// @description Pedidos registrados por el administrador y su ciclo de estados.
// @host        localhost:8082
// @BasePath    /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/MikeMC777/cafe-altura/docs"
	"github.com/MikeMC777/cafe-altura/internal/config"
	"github.com/MikeMC777/cafe-altura/internal/db"
	"github.com/MikeMC777/cafe-altura/internal/events"
	"github.com/MikeMC777/cafe-altura/internal/health"
	"github.com/MikeMC777/cafe-altura/internal/httpx"
	"github.com/MikeMC777/cafe-altura/internal/order"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo order.Repository
	if cfg.UseMemory() {
		repo = order.NewMemRepo()
	} else {
		pool, err := db.Open(ctx, cfg.PostgresDSN, cfg.RunMigrations)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
		repo = order.NewPGRepo(pool)
	}

	var pub order.Publisher = order.NopPublisher{}
	if cfg.AMQPURL != "" {
		conn, err := events.Dial(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("amqp: %v", err)
		}
		defer conn.Close()
		p, err := events.NewPublisher(conn)
		if err != nil {
			log.Fatalf("amqp publisher: %v", err)
		}
		defer p.Close()
		pub = p
	}

	policy := order.Permissive
	if cfg.StrictTransitions {
		policy = order.Strict
	}
	svc := order.NewService(repo, policy, pub)

	if cfg.OrderHealthAddr != "" {
		hs, err := health.Listen(cfg.OrderHealthAddr, "order-service")
		if err != nil {
			log.Fatalf("health: %v", err)
		}
		go func() { _ = hs.Serve() }()
		defer hs.Stop()
	}

	docs.SwaggerInfo.Host = "localhost" + cfg.OrderSvcAddr
	r := newRouter(svc, routerOpts{
		metrics:     httpx.NewMetrics("order_service"),
		jwtSecret:   cfg.JWTSecret,
		requireAuth: cfg.RequireAuth,
		swagger:     true,
	})

	log.Printf("[order] transitions=%s", policy)
	if err := httpx.Serve(ctx, "order-service", cfg.OrderSvcAddr, r); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
