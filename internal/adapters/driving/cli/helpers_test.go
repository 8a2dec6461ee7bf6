package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sourcy-labs/sourcy/internal/adapters/driven/storage/memory"
	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/services"
)

// shirtCatalog has products 1 and 2 sharing vocabulary, padded with
// unrelated products so shared terms keep a positive IDF.
func shirtCatalog() *domain.Catalog {
	return &domain.Catalog{
		Products: []domain.Product{
			{ProductID: 1, Title: "red cotton shirt", GPTDescription: "soft cotton"},
			{ProductID: 2, Title: "blue cotton shirt", GPTDescription: "soft cotton"},
			{ProductID: 3, Title: "steel garden shovel", GPTDescription: "sturdy tool"},
			{ProductID: 4, Title: "ceramic coffee mug", GPTDescription: "glazed cup"},
			{ProductID: 5, Title: "leather wallet", GPTDescription: "slim card holder"},
			{ProductID: 6, Title: "wooden chess set", GPTDescription: "board game"},
		},
		Attributes: []domain.ProductAttribute{
			{ProductAttributeID: 1, ProductID: 1, Key: "material", Value: "cotton"},
			{ProductAttributeID: 2, ProductID: 2, Key: "material", Value: "cotton"},
		},
		Variants: []domain.ProductVariant{
			{ProductVariantID: 10, ProductID: 1, VariantKey: "M", Price: 12.5, PriceCurrency: "USD"},
		},
	}
}

// setupTestServices wires the commands to in-memory stores and returns
// a cleanup function restoring the previous services.
func setupTestServices() func() {
	prevRecommend, prevCatalog, prevSettings := recommendService, catalogService, settingsService
	prevPath, prevClose := catalogPath, closeServices

	store := memory.NewCatalogStoreWith(shirtCatalog())
	settings := services.NewSettingsService(memory.NewConfigStore())
	recommend := services.NewRecommendService(store, domain.DefaultAppSettings().Recommender)
	catalog := services.NewCatalogService(store)
	catalog.OnChange(recommend.Invalidate)

	SetServices(&Services{
		Recommend: recommend,
		Catalog:   catalog,
		Settings:  settings,
	})

	return func() {
		recommendService, catalogService, settingsService = prevRecommend, prevCatalog, prevSettings
		catalogPath, closeServices = prevPath, prevClose
	}
}

// runCommand executes the root command with args and returns its output.
// Flags are reset first since cobra keeps parsed state between runs.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
