// Package cli provides the sourcy command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourcy-labs/sourcy/internal/core/ports/driving"
	"github.com/sourcy-labs/sourcy/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services used by the commands. Set by SetServices or the bootstrap hook.
var (
	recommendService driving.RecommendService
	catalogService   driving.CatalogService
	settingsService  driving.SettingsService

	// catalogPath is the catalog database file watched by serve.
	catalogPath string

	closeServices func() error
)

// Options are the resolved global flags handed to the bootstrap hook.
type Options struct {
	DataDir   string
	ConfigDir string
}

// Services bundles everything the commands need.
type Services struct {
	Recommend driving.RecommendService
	Catalog   driving.CatalogService
	Settings  driving.SettingsService

	// CatalogPath is the on-disk catalog, empty for in-memory stores.
	CatalogPath string

	// Close releases the underlying stores. May be nil.
	Close func() error
}

// Bootstrap builds services once the global flags are known.
type Bootstrap func(opts Options) (*Services, error)

var bootstrap Bootstrap

var (
	verbose   bool
	dataDir   string
	configDir string
)

// skipServices marks commands that never touch the catalog.
const skipServices = "skip-services"

var rootCmd = &cobra.Command{
	Use:   "sourcy",
	Short: "Content-based product recommendations",
	Long: `Sourcy recommends similar products from a local catalog.

Products are compared by TF-IDF weighted cosine similarity over their
title, description, attributes and variants.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "catalog data directory (default ~/.sourcy/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.sourcy)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap installs the hook that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects services directly.
func SetServices(s *Services) {
	if s == nil {
		recommendService, catalogService, settingsService = nil, nil, nil
		catalogPath, closeServices = "", nil
		return
	}
	recommendService = s.Recommend
	catalogService = s.Catalog
	settingsService = s.Settings
	catalogPath = s.CatalogPath
	closeServices = s.Close
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipServices] == "true" || bootstrap == nil || recommendService != nil {
		return nil
	}
	s, err := bootstrap(Options{DataDir: dataDir, ConfigDir: configDir})
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	SetServices(s)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// errNotConfigured reports a missing service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
