// Package web parses web command flags and starts the HTTP service.
package web

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/trothapp/troth/internal/platform/cmd"
	"github.com/trothapp/troth/internal/platform/config"
	"github.com/trothapp/troth/internal/storage/postgres"
	"github.com/trothapp/troth/internal/web"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr    string `env:"TROTH_HTTP_ADDR"   envDefault:"127.0.0.1:8000"`
	DatabaseURL string `env:"DATABASE_URL"`
	SecretKey   string `env:"SECRET_KEY"`
	TrustProxy  bool   `env:"TROTH_TRUST_PROXY"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", cfg.TrustProxy, "trust X-Forwarded-Proto from a TLS-terminating proxy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web service.
func Run(ctx context.Context, cfg Config) error {
	if err := config.Require("DATABASE_URL", cfg.DatabaseURL); err != nil {
		return err
	}
	if err := config.Require("SECRET_KEY", cfg.SecretKey); err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		store, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		server, err := web.NewServer(web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			SecretKey:           cfg.SecretKey,
			TrustForwardedProto: cfg.TrustProxy,
			Store:               store,
		})
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
