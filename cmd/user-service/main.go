package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/MikeMC777/cafe-altura/internal/config"
	"github.com/MikeMC777/cafe-altura/internal/db"
	"github.com/MikeMC777/cafe-altura/internal/health"
	"github.com/MikeMC777/cafe-altura/internal/httpx"
	"github.com/MikeMC777/cafe-altura/internal/user"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo user.Repository
	if cfg.UseMemory() {
		repo = user.NewMemRepo()
	} else {
		pool, err := db.Open(ctx, cfg.PostgresDSN, cfg.RunMigrations)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
		repo = user.NewPGRepo(pool)
	}
	svc := user.NewService(repo, cfg.JWTSecret, cfg.TokenTTL)
	if err := ensureAdmin(ctx, svc, cfg); err != nil {
		log.Fatalf("admin: %v", err)
	}

	if cfg.UserHealthAddr != "" {
		hs, err := health.Listen(cfg.UserHealthAddr, "user-service")
		if err != nil {
			log.Fatalf("health: %v", err)
		}
		go func() { _ = hs.Serve() }()
		defer hs.Stop()
	}

	if err := httpx.Serve(ctx, "user-service", cfg.UserSvcAddr, newRouter(svc, httpx.NewMetrics("user_service"))); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

// ensureAdmin creates the ADMIN_EMAIL account if configured. With STORE=memory
// it is the only way to get an admin token.
func ensureAdmin(ctx context.Context, svc *user.Service, cfg config.Config) error {
	if cfg.AdminEmail == "" {
		return nil
	}
	created, err := svc.EnsureAdmin(ctx, user.RegisterRequest{
		Name:       cfg.AdminName,
		Email:      cfg.AdminEmail,
		Password:   cfg.AdminPassword,
		PostalCode: cfg.AdminPostalCode,
	})
	if err != nil {
		return err
	}
	if created {
		log.Printf("[user-service] admin %s created", cfg.AdminEmail)
	}
	return nil
}
