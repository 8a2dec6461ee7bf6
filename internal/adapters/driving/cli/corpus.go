package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

var corpusJSON bool

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the recommendation corpus",
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus size and vocabulary",
	RunE:  runCorpusStats,
}

var corpusRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Build the corpus from the current catalog",
	RunE:  runCorpusRebuild,
}

func init() {
	corpusStatsCmd.Flags().BoolVar(&corpusJSON, "json", false, "output as JSON")
	corpusCmd.AddCommand(corpusStatsCmd)
	corpusCmd.AddCommand(corpusRebuildCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusStats(cmd *cobra.Command, _ []string) error {
	if recommendService == nil {
		return errNotConfigured("recommend")
	}

	stats, err := recommendService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("corpus stats failed: %w", err)
	}

	if corpusJSON {
		return outputJSON(cmd, stats)
	}
	printStats(cmd, stats)
	return nil
}

func runCorpusRebuild(cmd *cobra.Command, _ []string) error {
	if recommendService == nil {
		return errNotConfigured("recommend")
	}

	stats, err := recommendService.Rebuild(cmd.Context())
	if err != nil {
		return fmt.Errorf("corpus rebuild failed: %w", err)
	}
	printStats(cmd, stats)
	return nil
}

func printStats(cmd *cobra.Command, stats *domain.CorpusStats) {
	cmd.Println("Corpus")
	cmd.Println("======")
	cmd.Printf("  Snapshot:   %s\n", stats.SnapshotID)
	cmd.Printf("  Documents:  %d\n", stats.Documents)
	cmd.Printf("  Vocabulary: %d\n", stats.Vocabulary)
	if !stats.BuiltAt.IsZero() {
		cmd.Printf("  Built at:   %s\n", stats.BuiltAt.Format("2006-01-02 15:04:05"))
	}
	cmd.Printf("  Cached:     %t\n", stats.Cached)
}
