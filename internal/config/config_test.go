package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ORDER_SERVICE_ADDR", "TOKEN_TTL", "REQUIRE_AUTH", "STORE", "ORDER_STRICT_TRANSITIONS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.OrderSvcAddr != ":8082" {
		t.Fatalf("OrderSvcAddr=%q", cfg.OrderSvcAddr)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("TokenTTL=%s", cfg.TokenTTL)
	}
	if !cfg.RequireAuth || cfg.StrictTransitions || cfg.UseMemory() {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("REQUIRE_AUTH", "false")
	t.Setenv("STORE", "MEMORY")
	t.Setenv("ORDER_STRICT_TRANSITIONS", "si")
	t.Setenv("API_BASE_URL", "http://api.local/")

	cfg := Load()
	if cfg.TokenTTL != 15*time.Minute {
		t.Fatalf("TokenTTL=%s", cfg.TokenTTL)
	}
	if cfg.RequireAuth {
		t.Fatal("REQUIRE_AUTH=false ignored")
	}
	if !cfg.UseMemory() {
		t.Fatal("STORE=MEMORY ignored")
	}
	if !cfg.StrictTransitions {
		t.Fatal("ORDER_STRICT_TRANSITIONS=si ignored")
	}
	if cfg.APIBaseURL != "http://api.local" {
		t.Fatalf("APIBaseURL=%q", cfg.APIBaseURL)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("CATALOG_CACHE_TTL", "nope")
	if got := Load().CatalogCacheTTL; got != 5*time.Minute {
		t.Fatalf("CatalogCacheTTL=%s", got)
	}
}

func TestLoad_HealthAddrPerService(t *testing.T) {
	t.Setenv("PRODUCT_GRPC_HEALTH_ADDR", ":9081")
	t.Setenv("ORDER_GRPC_HEALTH_ADDR", ":9082")
	t.Setenv("USER_GRPC_HEALTH_ADDR", "")

	cfg := Load()
	if cfg.ProductHealthAddr != ":9081" || cfg.OrderHealthAddr != ":9082" {
		t.Fatalf("health addrs: %q %q", cfg.ProductHealthAddr, cfg.OrderHealthAddr)
	}
	if cfg.UserHealthAddr != "" {
		t.Fatalf("UserHealthAddr=%q, esperaba vacío", cfg.UserHealthAddr)
	}
}

func TestLoad_Admin(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@cafe.mx")
	t.Setenv("ADMIN_PASSWORD", "admin123")
	t.Setenv("ADMIN_NAME", "")

	cfg := Load()
	if cfg.AdminEmail != "admin@cafe.mx" || cfg.AdminPassword != "admin123" {
		t.Fatalf("admin: %q %q", cfg.AdminEmail, cfg.AdminPassword)
	}
	if cfg.AdminName != "Administrador" || cfg.AdminPostalCode != "00000" {
		t.Fatalf("defaults: %q %q", cfg.AdminName, cfg.AdminPostalCode)
	}
}
