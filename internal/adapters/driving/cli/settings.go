package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the recommendation policy and HTTP server.

Settings are stored in config.toml under the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	RunE:  runSettingsKeys,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting and save it.

Examples:
  sourcy settings set recommender.mode threshold
  sourcy settings set recommender.threshold 0.3
  sourcy settings set recommender.cache_corpus true`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the recommendation policy step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Recommender")
	cmd.Printf("  Mode:          %s\n", settings.Recommender.Mode.Description())
	cmd.Printf("  Top N:         %d\n", settings.Recommender.TopN)
	cmd.Printf("  Threshold:     %g\n", settings.Recommender.Threshold)
	cmd.Printf("  Cache corpus:  %t\n", settings.Recommender.CacheCorpus)
	cmd.Printf("  Default:       %s\n", settings.Recommender.Selection())
	cmd.Println()
	cmd.Println("Server")
	cmd.Printf("  Address:       %s\n", settings.Server.Addr)
	cmd.Printf("  Rate limit:    %g req/s\n", settings.Server.RateLimit)

	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Selection policy:")
	modes := []domain.SelectionMode{domain.SelectionTopN, domain.SelectionThreshold}
	current := 1
	for i, m := range modes {
		marker := " "
		if m == settings.Recommender.Mode {
			marker = "*"
			current = i + 1
		}
		cmd.Printf(" %s [%d] %s\n", marker, i+1, m.Description())
	}
	cmd.Printf("Choice [%d]: ", current)
	settings.Recommender.Mode = modes[parseChoice(readLine(reader), len(modes), current)-1]

	if settings.Recommender.Mode == domain.SelectionTopN {
		cmd.Printf("Number of products [%d]: ", settings.Recommender.TopN)
		if n, err := strconv.Atoi(readLine(reader)); err == nil {
			settings.Recommender.TopN = n
		}
	} else {
		cmd.Printf("Minimum similarity in [0,1) [%g]: ", settings.Recommender.Threshold)
		if f, err := strconv.ParseFloat(readLine(reader), 64); err == nil {
			settings.Recommender.Threshold = f
		}
	}

	cmd.Printf("Keep the corpus cached between requests? [%s]: ", yesNo(settings.Recommender.CacheCorpus))
	if answer := strings.ToLower(readLine(reader)); answer != "" {
		settings.Recommender.CacheCorpus = answer == "y" || answer == "yes"
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("\nSaved. Default policy: %s\n", settings.Recommender.Selection())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func yesNo(b bool) string {
	if b {
		return "Y/n"
	}
	return "y/N"
}
