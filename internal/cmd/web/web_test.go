package web

import (
	"context"
	"flag"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:8000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:8000")
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.SecretKey != "" {
		t.Fatalf("SecretKey = %q, want empty", cfg.SecretKey)
	}
	if cfg.TrustProxy {
		t.Fatalf("TrustProxy = %t, want false", cfg.TrustProxy)
	}
}

func TestParseConfigReadsEnv(t *testing.T) {
	t.Setenv("TROTH_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/troth")
	t.Setenv("SECRET_KEY", "super-secret")
	t.Setenv("TROTH_TRUST_PROXY", "true")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:9000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "0.0.0.0:9000")
	}
	if cfg.DatabaseURL != "postgres://localhost/troth" {
		t.Fatalf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "postgres://localhost/troth")
	}
	if cfg.SecretKey != "super-secret" {
		t.Fatalf("SecretKey = %q, want %q", cfg.SecretKey, "super-secret")
	}
	if !cfg.TrustProxy {
		t.Fatalf("TrustProxy = %t, want true", cfg.TrustProxy)
	}
}

func TestParseConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv("TROTH_HTTP_ADDR", "0.0.0.0:9000")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-addr", "127.0.0.1:9002", "-trust-proxy"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9002")
	}
	if !cfg.TrustProxy {
		t.Fatalf("TrustProxy = %t, want true", cfg.TrustProxy)
	}
}

func TestRunRequiresDatabaseURL(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{SecretKey: "super-secret"})
	if err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("error = %v, want mention of DATABASE_URL", err)
	}
}

func TestRunRequiresSecretKey(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{DatabaseURL: "postgres://localhost/troth"})
	if err == nil {
		t.Fatal("expected error for missing SECRET_KEY")
	}
	if !strings.Contains(err.Error(), "SECRET_KEY") {
		t.Fatalf("error = %v, want mention of SECRET_KEY", err)
	}
}
