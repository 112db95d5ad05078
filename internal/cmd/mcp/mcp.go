// Package mcp parses MCP command flags and starts the stdio tool server.
package mcp

import (
	"context"
	"flag"
	"fmt"

	"github.com/trothapp/troth/internal/mcp/service"
	entrypoint "github.com/trothapp/troth/internal/platform/cmd"
	"github.com/trothapp/troth/internal/platform/config"
	"github.com/trothapp/troth/internal/storage/postgres"
)

// Config holds MCP command configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	Username    string `env:"TROTH_MCP_USERNAME"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Username, "username", cfg.Username, "account tool calls act on behalf of")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP stdio server.
func Run(ctx context.Context, cfg Config) error {
	if err := config.Require("DATABASE_URL", cfg.DatabaseURL); err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		store, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		return service.Run(ctx, service.Config{
			Username: cfg.Username,
			Store:    store,
		})
	})
}
