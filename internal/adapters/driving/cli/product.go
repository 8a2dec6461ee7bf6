package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

var (
	productJSON        bool
	productSearchLimit int
	productSearchJSON  bool
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Inspect catalog products",
}

var productGetCmd = &cobra.Command{
	Use:   "get [product-id]",
	Short: "Show a product with its attributes and variants",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductGet,
}

var productSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search products by text",
	Long: `Case-insensitive substring search over product titles, keywords,
category suggestions, descriptions and labels. Results are ordered by id.`,
	Args: cobra.ExactArgs(1),
	RunE: runProductSearch,
}

func init() {
	productGetCmd.Flags().BoolVar(&productJSON, "json", false, "output as JSON")
	productSearchCmd.Flags().IntVarP(&productSearchLimit, "limit", "l", domain.DefaultSearchLimit,
		"maximum number of results")
	productSearchCmd.Flags().BoolVar(&productSearchJSON, "json", false, "output results as JSON")
	productCmd.AddCommand(productGetCmd)
	productCmd.AddCommand(productSearchCmd)
	rootCmd.AddCommand(productCmd)
}

func runProductGet(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errNotConfigured("catalog")
	}

	productID, err := parseProductID(args[0])
	if err != nil {
		return err
	}

	detail, err := catalogService.Get(cmd.Context(), productID)
	if err != nil {
		return fmt.Errorf("get product failed: %w", err)
	}

	if productJSON {
		return outputJSON(cmd, detail)
	}

	p := detail.Product
	cmd.Printf("#%d %s\n", p.ProductID, displayTitle(p.Summary()))
	if p.TitleTranslated != "" && p.Title != "" {
		cmd.Printf("  Original title: %s\n", p.Title)
	}
	printField(cmd, "Category", p.GPTCategorySuggestion)
	printField(cmd, "Keyword", p.Keyword)
	printField(cmd, "Description", p.GPTDescription)
	printField(cmd, "Link", p.Link)
	cmd.Printf("  Stock: %d %s\n", p.StockCount, p.StockUnits)
	cmd.Printf("  Repurchase rate: %s\n", formatNumber(p.RepurchaseRate))

	if len(detail.Attributes) > 0 {
		cmd.Println()
		cmd.Println("Attributes:")
		for _, a := range detail.Attributes {
			cmd.Printf("  %s: %s\n", a.Key, a.Value)
		}
	}

	if len(detail.Variants) > 0 {
		cmd.Println()
		cmd.Println("Variants:")
		for i := range detail.Variants {
			v := &detail.Variants[i]
			cmd.Printf("  %s  %s %s  stock %d\n", v.VariantKey, formatNumber(v.Price), v.PriceCurrency, v.StockCount)
		}
	}
	return nil
}

func runProductSearch(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errNotConfigured("catalog")
	}

	results, err := catalogService.Search(cmd.Context(), args[0], productSearchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if productSearchJSON {
		return outputJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Println("No products found.")
		return nil
	}
	for i := range results {
		cmd.Printf("  #%d %s\n", results[i].ProductID, displayTitle(results[i]))
	}
	return nil
}

func printField(cmd *cobra.Command, label, value string) {
	if value != "" {
		cmd.Printf("  %s: %s\n", label, value)
	}
}

// formatNumber renders unknown values as "-".
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "-"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
