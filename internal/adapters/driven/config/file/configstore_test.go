package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()

	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := setupTestConfigStore(t)

	require.NoError(t, store.Set(KeyPackDir, "/data/packs/main"))

	val, ok := store.Get(KeyPackDir)
	require.True(t, ok)
	assert.Equal(t, "/data/packs/main", val)

	_, ok = store.Get("missing.key")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := setupTestConfigStore(t)

	require.NoError(t, store.Set(KeySmokeToken, "hello"))
	require.NoError(t, store.Set("search.limit", 50))
	require.NoError(t, store.Set("ingest.force", true))

	assert.Equal(t, "hello", store.GetString(KeySmokeToken))
	assert.Equal(t, 50, store.GetInt("search.limit"))
	assert.True(t, store.GetBool("ingest.force"))

	// Missing keys return zero values
	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))

	// Type mismatches return zero values
	assert.Equal(t, "", store.GetString("search.limit"))
	assert.Equal(t, 0, store.GetInt(KeySmokeToken))
}

func TestConfigStore_SetPersistsImmediately(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyInputDir, "/exports/messenger"))

	// A fresh store sees the value from disk
	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "/exports/messenger", reopened.GetString(KeyInputDir))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()

	content := "[pack]\ndir = \"/data/packs\"\n\n[verify]\nsmoke_token = \"unicorn\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "/data/packs", store.GetString(KeyPackDir))
	assert.Equal(t, "unicorn", store.GetString(KeySmokeToken))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := setupTestConfigStore(t)
	require.NoError(t, store.Set(KeySmokeToken, "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_GetIntHandlesTOMLInt64(t *testing.T) {
	dir := t.TempDir()

	content := "[search]\nlimit = 25\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	// TOML decodes integers as int64; GetInt must still return them
	assert.Equal(t, 25, store.GetInt("search.limit"))
}
