package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourcy-labs/sourcy/internal/adapters/driven/importer/csvdir"
)

var importDir string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the catalog from CSV exports",
	Long: fmt.Sprintf(`Reads a directory of catalog CSV exports and replaces the stored catalog.

Expected files:
  %s           (required)
  %s  (optional)
  %s (optional)

Columns are matched by header name. The existing catalog is discarded.`,
		csvdir.ProductsFile, csvdir.AttributesFile, csvdir.VariantsFile),
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importDir, "dir", "d", "", "directory holding the CSV files")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errNotConfigured("catalog")
	}
	if importDir == "" {
		return errors.New("--dir is required")
	}

	source := csvdir.NewSource(importDir)
	cmd.Printf("Importing catalog from %s...\n", importDir)

	result, err := catalogService.Import(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d products, %d attributes, %d variants.\n",
		result.Products, result.Attributes, result.Variants)
	return nil
}
