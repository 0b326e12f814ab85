package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func env(pairs map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := pairs[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, env(map[string]string{"DATABASE_URI": "postgres://localhost/store"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":8080" {
		t.Errorf("run address = %q", cfg.RunAddress)
	}
	if cfg.CartTTL != 72*time.Hour {
		t.Errorf("cart ttl = %s", cfg.CartTTL)
	}
	if cfg.CartSweepInterval != 10*time.Minute {
		t.Errorf("sweep interval = %s", cfg.CartSweepInterval)
	}
	if cfg.SweepBatchSize != 64 || cfg.SweepWorkers != 2 {
		t.Errorf("sweep batch = %d, workers = %d", cfg.SweepBatchSize, cfg.SweepWorkers)
	}
	if cfg.AllowedOrigins != "*" {
		t.Errorf("allowed origins = %q", cfg.AllowedOrigins)
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	if _, err := load(nil, env(nil)); err == nil {
		t.Fatal("expected error without database URI")
	}
}

func TestLoadEnvValues(t *testing.T) {
	cfg, err := load(nil, env(map[string]string{
		"DATABASE_URI":        "postgres://db/store",
		"RUN_ADDRESS":         ":9090",
		"JWT_SECRET":          "env-secret",
		"CART_TTL":            "48h",
		"CART_SWEEP_INTERVAL": "5m",
		"SWEEP_BATCH_SIZE":    "16",
		"SWEEP_WORKERS":       "4",
		"ALLOWED_ORIGINS":     "https://shop.example.com",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":9090" || cfg.JWTSecret != "env-secret" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.CartTTL != 48*time.Hour || cfg.CartSweepInterval != 5*time.Minute {
		t.Errorf("durations = %s / %s", cfg.CartTTL, cfg.CartSweepInterval)
	}
	if cfg.SweepBatchSize != 16 || cfg.SweepWorkers != 4 {
		t.Errorf("sweep batch = %d, workers = %d", cfg.SweepBatchSize, cfg.SweepWorkers)
	}
	if cfg.AllowedOrigins != "https://shop.example.com" {
		t.Errorf("allowed origins = %q", cfg.AllowedOrigins)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	args := []string{
		"-a", ":7070",
		"-d", "postgres://flag/store",
		"-cart-ttl", "24h",
		"-sweep-interval", "1m",
		"-shutdown-timeout", "5s",
		"-sweep-batch", "8",
		"-sweep-workers", "1",
	}
	cfg, err := load(args, env(map[string]string{
		"DATABASE_URI": "postgres://env/store",
		"RUN_ADDRESS":  ":9090",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":7070" || cfg.DatabaseURI != "postgres://flag/store" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.CartTTL != 24*time.Hour || cfg.CartSweepInterval != time.Minute || cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("durations = %s / %s / %s", cfg.CartTTL, cfg.CartSweepInterval, cfg.ShutdownTimeout)
	}
	if cfg.SweepBatchSize != 8 || cfg.SweepWorkers != 1 {
		t.Errorf("sweep batch = %d, workers = %d", cfg.SweepBatchSize, cfg.SweepWorkers)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	_, err := load([]string{"-cart-ttl", "soon"}, env(map[string]string{"DATABASE_URI": "postgres://db/store"}))
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoadJWTSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("file-secret"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	cfg, err := load(nil, env(map[string]string{
		"DATABASE_URI":    "postgres://db/store",
		"JWT_SECRET":      "env-secret",
		"JWT_SECRET_FILE": path,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Errorf("jwt secret = %q, want file content", cfg.JWTSecret)
	}
}

func TestLoadNonPositiveValuesFallBack(t *testing.T) {
	cfg, err := load(nil, env(map[string]string{
		"DATABASE_URI":     "postgres://db/store",
		"SWEEP_BATCH_SIZE": "-1",
		"SWEEP_WORKERS":    "0",
		"CART_TTL":         "-1h",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SweepBatchSize != 64 || cfg.SweepWorkers != 2 {
		t.Errorf("sweep batch = %d, workers = %d", cfg.SweepBatchSize, cfg.SweepWorkers)
	}
	if cfg.CartTTL != 72*time.Hour {
		t.Errorf("cart ttl = %s", cfg.CartTTL)
	}
}
