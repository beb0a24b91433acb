// Package cli holds the setup shared by the wakeup binaries.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/easton-hill/wakeup/internal/config"
	"github.com/easton-hill/wakeup/pkg/secrets"
)

// Main sets up logging, runs fn with a context cancelled on SIGINT or
// SIGTERM, and exits 1 if fn fails. The error is logged once, here.
func Main(fn func(ctx context.Context) error) {
	slog.SetDefault(SetupLogger(os.Getenv("WAKEUP_LOG_LEVEL")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fn(ctx)
	stop()

	if err != nil {
		slog.Error("wakeup failed", "err", err)
		os.Exit(1)
	}
}

// SetupLogger returns a text logger on stderr; stdout carries the report.
// Unknown levels fall back to info.
func SetupLogger(level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Secrets looks in the process environment first, then the dotenv file,
// then one file per secret under ~/.config/wakeup.
func Secrets(envFile string) (secrets.Provider, error) {
	chain := secrets.Chain{secrets.Env{}}

	if envFile != "" {
		dotenv, err := secrets.DotEnv(envFile)
		if err != nil {
			return nil, err
		}
		chain = append(chain, dotenv)
	}

	return append(chain, secrets.DefaultDir()), nil
}

// Setup loads the configuration and the secrets it points at.
func Setup() (config.Config, secrets.Provider, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	sec, err := Secrets(cfg.EnvFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load secrets: %w", err)
	}

	slog.Debug("configuration loaded",
		"lat", cfg.Weather.Location.Lat,
		"lon", cfg.Weather.Location.Lon,
		"units", cfg.Weather.Units,
		"clock", cfg.Clock)
	return cfg, sec, nil
}
