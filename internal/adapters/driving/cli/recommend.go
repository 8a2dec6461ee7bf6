package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

var (
	recommendTop       int
	recommendThreshold float64
	recommendJSON      bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [product-id]",
	Short: "Recommend products similar to a product",
	Long: `Ranks every other catalog product by content similarity to the given one.

By default the configured policy is used (see 'sourcy settings').
Use --top to keep the N most similar products, or --threshold to keep
every product whose similarity is strictly above a minimum.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendTop, "top", "n", domain.DefaultTopN, "number of products to return")
	recommendCmd.Flags().Float64VarP(&recommendThreshold, "threshold", "t", domain.DefaultThreshold,
		"minimum similarity in [0,1)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output results as JSON")
	recommendCmd.MarkFlagsMutuallyExclusive("top", "threshold")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if recommendService == nil {
		return errNotConfigured("recommend")
	}

	productID, err := parseProductID(args[0])
	if err != nil {
		return err
	}

	var sel domain.Selection
	switch {
	case cmd.Flags().Changed("top"):
		sel = domain.TopN(recommendTop)
	case cmd.Flags().Changed("threshold"):
		sel = domain.Threshold(recommendThreshold)
	}

	recs, err := recommendService.Recommend(cmd.Context(), productID, sel)
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}

	if recommendJSON {
		return outputJSON(cmd, recs)
	}
	return outputRecommendTable(cmd, productID, recs)
}

func outputRecommendTable(cmd *cobra.Command, productID int64, recs []domain.Recommendation) error {
	if len(recs) == 0 {
		cmd.Printf("No similar products found for %d.\n", productID)
		return nil
	}

	cmd.Printf("Products similar to %d:\n", productID)
	cmd.Println()
	for i := range recs {
		cmd.Printf("  [%d] #%d %s (%.2f)\n", i+1, recs[i].ProductID, displayTitle(recs[i].ProductSummary), recs[i].Score)
		if recs[i].GPTDescription != "" {
			cmd.Printf("      %s\n", truncate(recs[i].GPTDescription, 100))
		}
	}
	return nil
}

// parseProductID parses a base-10 product id argument.
func parseProductID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q: %w", arg, domain.ErrInvalidInput)
	}
	return id, nil
}

// displayTitle prefers the translated title.
func displayTitle(s domain.ProductSummary) string {
	switch {
	case s.TitleTranslated != "":
		return s.TitleTranslated
	case s.Title != "":
		return s.Title
	default:
		return "(untitled)"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
