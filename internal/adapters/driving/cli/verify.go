package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mempack/internal/adapters/driven/config/file"
)

var verifySmokeToken string

var verifyCmd = &cobra.Command{
	Use:   "verify [pack-dir]",
	Short: "Verify a memory pack",
	Long: `Checks a completed pack without modifying it: the manifest must be
present, its counts must match the store, the content digest must match,
and a smoke query must come back with results when documents exist.

Exits non-zero when any check fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifySmokeToken, "token", "", "term the smoke query searches for")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	packDir := ""
	if len(args) > 0 {
		packDir = args[0]
	}
	packDir = resolvePackDir(packDir)

	token := verifySmokeToken
	if token == "" && configStore != nil {
		token = configStore.GetString(file.KeySmokeToken)
	}

	v, cleanup, err := verifierFor(packDir)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := v.Verify(cmd.Context(), token)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	if report.OK {
		cmd.Printf("Pack %s verified.\n", packDir)
		if report.FTSSampleDocID != "" {
			cmd.Printf("  Smoke query matched document %s\n", report.FTSSampleDocID)
		}
		return nil
	}

	cmd.Printf("Pack %s failed verification:\n", packDir)
	for _, failure := range report.Failures {
		cmd.Printf("  - %s\n", failure)
	}
	return errors.New("verification failed")
}
