package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driving"
)

var (
	ingestPackDir string
	ingestForce   bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [export-dir]",
	Short: "Ingest a conversation export into a memory pack",
	Long: `Walks a conversation export directory, normalises every message, and
writes the result into the pack's store and full-text index.

Files whose size and modification time are unchanged since the last run
are skipped. The manifest is written last, so an interrupted run never
leaves a pack that claims to be complete.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestPackDir, "pack", "p", "", "pack directory (default from config)")
	ingestCmd.Flags().BoolVar(&ingestForce, "force", false, "reprocess files even when fingerprints match")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	packDir := resolvePackDir(ingestPackDir)

	orch, cleanup, err := ingestorFor(inputDir, packDir)
	if err != nil {
		return err
	}
	defer cleanup()

	cmd.Printf("Ingesting %s into %s...\n", inputDir, packDir)

	report, err := orch.Ingest(cmd.Context(), driving.IngestOptions{Force: ingestForce})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	printIngestReport(cmd, report)
	return nil
}

func printIngestReport(cmd *cobra.Command, report *domain.IngestReport) {
	cmd.Printf("Done in %s.\n", report.Duration.Round(time.Millisecond))
	cmd.Printf("  Files:     %d processed, %d skipped, %d failed\n",
		report.FilesProcessed, report.FilesSkipped, report.FilesFailed)
	cmd.Printf("  Written:   %d messages, %d documents\n",
		report.MessagesWritten, report.DocumentsWritten)
	if report.Manifest.SchemaVersion != 0 {
		cmd.Printf("  Pack:      %d messages, %d documents total\n",
			report.Manifest.Counts.Messages, report.Manifest.Counts.Documents)
	}

	for _, failure := range report.Failures {
		cmd.Printf("  Failed:    %s: %v\n", failure.Path, failure.Cause)
	}
}
