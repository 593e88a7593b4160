package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mempack/internal/adapters/driven/config/file"
)

func setupTestConfig(t *testing.T) func() {
	t.Helper()

	old := configStore
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = store

	return func() {
		configStore = old
	}
}

func TestConfigCmd_SetAndGet(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "pack.dir", "/data/packs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Set pack.dir = /data/packs")

	buf.Reset()
	rootCmd.SetArgs([]string{"config", "get", "pack.dir"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "/data/packs")
}

func TestConfigCmd_GetMissingKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "get", "no.such.key"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestResolvePackDir_FlagWins(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	require.NoError(t, configStore.Set(file.KeyPackDir, "/from/config"))

	assert.Equal(t, "/explicit", resolvePackDir("/explicit"))
	assert.Equal(t, "/from/config", resolvePackDir(""))
}
