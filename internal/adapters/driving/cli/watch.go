package cli

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mempack/internal/core/ports/driving"
	"github.com/custodia-labs/mempack/internal/logger"
)

var (
	watchPackDir  string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [export-dir]",
	Short: "Re-ingest a conversation export whenever it changes",
	Long: `Watches an export directory and re-runs ingestion after changes settle.

Fingerprint gating makes each re-run cheap: only files whose size or
modification time changed are reprocessed. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchPackDir, "pack", "p", "", "pack directory (default from config)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "quiet period before re-ingesting")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	packDir := resolvePackDir(watchPackDir)

	orch, cleanup, err := ingestorFor(inputDir, packDir)
	if err != nil {
		return err
	}
	defer cleanup()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, inputDir); err != nil {
		return fmt.Errorf("watching %s: %w", inputDir, err)
	}

	// Catch up on whatever changed while we were not running.
	if err := ingestOnce(cmd.Context(), cmd, orch); err != nil {
		return err
	}

	cmd.Printf("Watching %s (debounce %s)...\n", inputDir, watchDebounce)

	// The timer fires once events stop arriving for a full debounce window.
	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			// New directories need their own watch before files land in them.
			if event.Op&fsnotify.Create != 0 {
				_ = watchTree(watcher, event.Name)
			}
			logger.Debug("change detected: %s %s", event.Op, event.Name)
			if pending {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce.Reset(watchDebounce)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-debounce.C:
			pending = false
			if err := ingestOnce(cmd.Context(), cmd, orch); err != nil {
				return err
			}
		}
	}
}

// watchTree adds root and every subdirectory beneath it to the watcher.
// Hidden directories are skipped, matching the ingest walk.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// relevantEvent filters out the event noise that cannot change pack
// contents, like chmod-only updates.
func relevantEvent(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func ingestOnce(ctx context.Context, cmd *cobra.Command, orch driving.Ingestor) error {
	report, err := orch.Ingest(ctx, driving.IngestOptions{})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if report.FilesProcessed > 0 || report.FilesFailed > 0 {
		printIngestReport(cmd, report)
	} else {
		logger.Debug("no changes to ingest")
	}
	return nil
}
