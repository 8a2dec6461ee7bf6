package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui"
)

// errNotTerminal is returned when the TUI is started without a terminal.
var errNotTerminal = errors.New("tui requires an interactive terminal")

// isTerminal reports whether stdin is a terminal. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Sourcy.

Look up products similar to a product id, search the catalog, and
browse product details with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Look up / Details
  r        - Similar to the selection
  Esc      - Back
  ?        - Help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the app from the configured services.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	app, err := tui.NewApp(&tui.Ports{
		Recommend: recommendService,
		Catalog:   catalogService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app.WithContext(cmd.Context()), nil
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}

	if !isTerminal() {
		return errNotTerminal
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
