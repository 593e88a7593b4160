package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

func TestVerifyCmd_Use(t *testing.T) {
	assert.Equal(t, "verify [pack-dir]", verifyCmd.Use)
}

func TestVerifyCmd_HealthyPack(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"verify", t.TempDir()})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "verified")
	assert.Contains(t, buf.String(), "d_0011223344556677")
}

func TestVerifyCmd_FailingPackExitsNonZero(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	verifier = &stubVerifier{
		report: &domain.VerifyReport{
			Failures: []string{domain.ErrManifestMismatch.Error()},
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"verify", t.TempDir()})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "verification failed")
	assert.Contains(t, buf.String(), domain.ErrManifestMismatch.Error())
}
