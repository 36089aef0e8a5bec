package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/usestring/storefront-search/internal/cache"
	"github.com/usestring/storefront-search/internal/config"
	"github.com/usestring/storefront-search/internal/logging"
	"github.com/usestring/storefront-search/internal/search"
	"github.com/usestring/storefront-search/internal/tui"
	"github.com/usestring/storefront-search/pkg/client"
)

func main() {
	app := &cli.App{
		Name:  "storefront-search",
		Usage: "Interactive terminal search over the storefront catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Aliases: []string{"u"},
				Usage:   "Listing service base URL (overrides STOREFRONT_BASE_URL)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML config file",
				EnvVars: []string{config.ConfigFileEnv},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file; logs are discarded otherwise since the terminal is in use",
			},
			&cli.BoolFlag{
				Name:  "inline",
				Usage: "Render inline instead of in the alternate screen",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logCfg := logging.FromConfig(cfg)
	logCfg.Output = io.Discard
	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer func() { _ = cleanup() }()

	resultCache, err := cache.NewResultCache(cfg.ResultCacheItems)
	if err != nil {
		return fmt.Errorf("creating result cache: %w", err)
	}
	store := search.NewStore(
		client.New(cfg.ClientOptions()...),
		search.WithResultCache(resultCache),
		search.WithInitTimeout(cfg.InitTimeout),
	)

	var opts []tea.ProgramOption
	if !c.Bool("inline") {
		opts = append(opts, tea.WithAltScreen())
	}
	if err := tui.Run(ctx, store, opts...); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// loadConfig reads the environment and config file, then applies flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	// --config without the env var set is applied on top.
	if path := c.String("config"); path != "" && os.Getenv(config.ConfigFileEnv) != path {
		if err := cfg.ApplyFile(path); err != nil {
			return nil, err
		}
	}
	if v := c.String("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := c.String("log-file"); v != "" {
		cfg.LogFile = v
	}
	return cfg, nil
}
