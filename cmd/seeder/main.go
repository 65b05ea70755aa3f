// Command seeder replaces the catalog with the contents of a JSON file and
// optionally creates an admin account.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MikeMC777/cafe-altura/internal/config"
	"github.com/MikeMC777/cafe-altura/internal/db"
	prod "github.com/MikeMC777/cafe-altura/internal/product"
	"github.com/MikeMC777/cafe-altura/internal/user"
)

type options struct {
	file          string
	adminName     string
	adminEmail    string
	adminPassword string
	adminPostal   string
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "productos.json", "catalog JSON file")
	flag.StringVar(&opts.adminName, "admin-name", "Administrador", "admin display name")
	flag.StringVar(&opts.adminEmail, "admin-email", "", "create an admin with this email")
	flag.StringVar(&opts.adminPassword, "admin-password", "", "password for -admin-email")
	flag.StringVar(&opts.adminPostal, "admin-postal-code", "00000", "postal code for -admin-email")
	flag.Parse()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.Open(ctx, cfg.PostgresDSN, cfg.RunMigrations)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	var catalog prod.Repository = prod.NewPGRepo(pool)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		catalog = prod.NewCachedRepo(catalog, rdb, cfg.CatalogCacheTTL)
	}
	users := user.NewService(user.NewPGRepo(pool), cfg.JWTSecret, cfg.TokenTTL)

	if err := run(ctx, catalog, users, opts); err != nil {
		log.Fatalf("seeder: %v", err)
	}
}

func run(ctx context.Context, catalog prod.Repository, users *user.Service, opts options) error {
	f, err := os.Open(opts.file)
	if err != nil {
		return err
	}
	defer f.Close()

	ps, err := prod.LoadSeed(f)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.file, err)
	}
	if err := catalog.ReplaceAll(ctx, ps); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	log.Printf("[seeder] %d products loaded from %s", len(ps), opts.file)

	if opts.adminEmail == "" {
		return nil
	}
	created, err := users.EnsureAdmin(ctx, user.RegisterRequest{
		Name:       opts.adminName,
		Email:      opts.adminEmail,
		Password:   opts.adminPassword,
		PostalCode: opts.adminPostal,
	})
	switch {
	case err != nil:
		return fmt.Errorf("create admin: %w", err)
	case created:
		log.Printf("[seeder] admin %s created", opts.adminEmail)
	default:
		log.Printf("[seeder] admin %s already exists", opts.adminEmail)
	}
	return nil
}
