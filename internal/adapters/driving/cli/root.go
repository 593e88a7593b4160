// Package cli implements the mempack command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mempack/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mempack/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
	"github.com/custodia-labs/mempack/internal/core/ports/driving"
	"github.com/custodia-labs/mempack/internal/core/services"
	"github.com/custodia-labs/mempack/internal/export"
	"github.com/custodia-labs/mempack/internal/logger"
	"github.com/custodia-labs/mempack/internal/pack"
)

var version = "0.1.0"

var verbose bool

// Package-level services. Commands that find these pre-set use them as-is;
// otherwise they build their own from the resolved pack directory.
var (
	configStore   driven.ConfigStore
	searchService driving.SearchService
	ingestor      driving.Ingestor
	verifier      driving.Verifier
)

var rootCmd = &cobra.Command{
	Use:   "mempack",
	Short: "Build and query searchable memory packs from conversation exports",
	Long: `Mempack turns a personal conversation export into a self-contained,
searchable "memory pack": a directory holding a SQLite store, a full-text
index, and a manifest that marks the pack as complete.

Re-running ingestion is safe and cheap: unchanged export files are skipped
by fingerprint, changed ones are re-ingested in place.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. Called once from main.
func Execute() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config unavailable: %v\n", err)
	} else {
		configStore = cfg
	}

	return rootCmd.Execute()
}

// resolvePackDir picks the pack directory: explicit flag value, then the
// configured default, then ~/.mempack/pack.
func resolvePackDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if configStore != nil {
		if dir := configStore.GetString(file.KeyPackDir); dir != "" {
			return dir
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "pack"
	}
	return filepath.Join(home, ".mempack", "pack")
}

// searchServiceFor returns a search service over packDir, or the
// pre-configured one when set. The cleanup must be called when done.
func searchServiceFor(packDir string) (driving.SearchService, func(), error) {
	if searchService != nil {
		return searchService, func() {}, nil
	}

	store, err := sqlite.OpenReadOnly(packDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening pack: %w", err)
	}

	return services.NewSearchService(store.SearchEngine()), func() { _ = store.Close() }, nil
}

// verifierFor returns a verifier over packDir, or the pre-configured one.
func verifierFor(packDir string) (driving.Verifier, func(), error) {
	if verifier != nil {
		return verifier, func() {}, nil
	}

	store, err := sqlite.OpenReadOnly(packDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening pack: %w", err)
	}

	svc := services.NewVerifyService(pack.NewDirStore(packDir), store.PackReader(), store.SearchEngine())
	return svc, func() { _ = store.Close() }, nil
}

// ingestorFor returns an ingestor reading inputDir and writing packDir,
// or the pre-configured one.
func ingestorFor(inputDir, packDir string) (driving.Ingestor, func(), error) {
	if ingestor != nil {
		return ingestor, func() {}, nil
	}

	source, err := export.NewSource(inputDir)
	if err != nil {
		return nil, nil, err
	}

	store, err := sqlite.NewStore(packDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening pack store: %w", err)
	}

	orch := services.NewIngestOrchestrator(
		source,
		store.FingerprintStore(),
		store.PackWriter(),
		store.PackReader(),
		pack.NewDirStore(packDir),
	)
	return orch, func() { _ = store.Close() }, nil
}
