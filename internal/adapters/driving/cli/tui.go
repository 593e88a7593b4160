package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mempack/internal/adapters/driving/tui"
)

var tuiPackDir string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search UI",
	Long: `Launch the interactive terminal user interface for searching a pack.

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Search
  Esc      - Clear / Back
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiPackDir, "pack", "p", "", "pack directory (default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	return launchTUI(cmd, resolvePackDir(tuiPackDir), "")
}

// launchTUI starts the interactive search view, optionally pre-running a query.
func launchTUI(cmd *cobra.Command, packDir, query string) error {
	// Panic recovery keeps the terminal usable and shows the stack.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	svc, cleanup, err := searchServiceFor(packDir)
	if err != nil {
		return err
	}
	defer cleanup()

	app := tui.NewApp(svc)
	app.WithContext(cmd.Context())
	if query != "" {
		app.WithQuery(query)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
