// Package main is the entry point for the sourcy CLI.
//
// Services are built lazily by the bootstrap hook once the global flags
// (--data-dir, --config-dir) are parsed:
//
//  1. SQLite catalog store under the data directory
//  2. TOML settings under the config directory
//  3. Recommend, catalog and settings services wired together so that
//     catalog imports invalidate the cached corpus
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sourcy-labs/sourcy/internal/adapters/driven/config/file"
	"github.com/sourcy-labs/sourcy/internal/adapters/driven/storage/sqlite"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/cli"
	"github.com/sourcy-labs/sourcy/internal/core/services"
	"github.com/sourcy-labs/sourcy/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func bootstrap(opts cli.Options) (*cli.Services, error) {
	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("loading config: %w", err), store.Close())
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("reading settings: %w", err), store.Close())
	}

	logger.Debug("catalog: %s", store.Path())
	logger.Debug("config: %s", configStore.Path())

	recommendService := services.NewRecommendService(store.CatalogStore(), settings.Recommender)
	catalogService := services.NewCatalogService(store.CatalogStore())
	catalogService.OnChange(recommendService.Invalidate)

	return &cli.Services{
		Recommend:   recommendService,
		Catalog:     catalogService,
		Settings:    settingsService,
		CatalogPath: store.Path(),
		Close:       store.Close,
	}, nil
}
