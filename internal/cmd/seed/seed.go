// Package seed parses seed command flags and populates demo data.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"

	entrypoint "github.com/trothapp/troth/internal/platform/cmd"
	"github.com/trothapp/troth/internal/platform/config"
	"github.com/trothapp/troth/internal/storage/postgres"
	"github.com/trothapp/troth/internal/tools/seed"
)

// Config holds seed command configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	Username    string `env:"TROTH_SEED_USERNAME" envDefault:"demo"`
	Password    string `env:"TROTH_SEED_PASSWORD" envDefault:"demo-password"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Username, "username", cfg.Username, "demo account username")
	fs.StringVar(&cfg.Password, "password", cfg.Password, "demo account password")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run seeds the database and reports what it created on out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if err := config.Require("DATABASE_URL", cfg.DatabaseURL); err != nil {
		return err
	}

	store, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	result, err := seed.Run(ctx, store, seed.Config{
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	if result.UserCreated {
		fmt.Fprintf(out, "created account %q\n", cfg.Username)
	} else {
		fmt.Fprintf(out, "account %q already exists\n", cfg.Username)
	}
	fmt.Fprintf(out, "seeded %d commitments\n", result.CommitmentsCreated)
	return nil
}
