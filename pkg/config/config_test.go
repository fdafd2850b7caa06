package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeAndAccessors(t *testing.T) {
	resetGlobalForTest()
	defer resetGlobalForTest()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	require.NoError(t, Initialize(configPath))
	assert.True(t, IsInitialized())

	browser := GetBrowser()
	require.NotNil(t, browser)
	assert.Equal(t, "./browser_session", browser.GetStorageDir())
	assert.True(t, browser.IsHeadless())

	generation := GetGeneration()
	require.NotNil(t, generation)
	assert.Equal(t, 4, generation.GetMaxWorkers())
}

func TestAccessorsWithoutInitialize(t *testing.T) {
	resetGlobalForTest()
	defer resetGlobalForTest()

	assert.False(t, IsInitialized())
	assert.Nil(t, GetBrowser())
	assert.Nil(t, GetGeneration())
}

func TestConfigRoundTrip(t *testing.T) {
	resetGlobalForTest()
	defer resetGlobalForTest()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	require.NoError(t, Initialize(configPath))

	browser := GetBrowser()
	browser.SetHeadless(false)
	browser.SetStorageDir("/tmp/qa-profile")
	require.NoError(t, Global().SaveAll())

	// Reinitialize from disk and verify persisted values survive
	resetGlobalForTest()
	require.NoError(t, Initialize(configPath))

	reloaded := GetBrowser()
	require.NotNil(t, reloaded)
	assert.False(t, reloaded.IsHeadless())
	assert.Equal(t, "/tmp/qa-profile", reloaded.GetStorageDir())
}

func TestFileStoreMissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewFileStore(filepath.Join(tmpDir, "missing.json"))
	require.NoError(t, err)

	data, err := store.GetSection("browser")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFileStoreAtomicSave(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SetSection("browser", map[string]interface{}{"headless": false}))
	require.NoError(t, store.Save())

	// No temp file should linger after a successful save
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	data, err := reloaded.GetSection("browser")
	require.NoError(t, err)
	assert.Equal(t, false, data["headless"])
}

func TestBrowserSectionValidate(t *testing.T) {
	section := NewBrowserSection()
	assert.NoError(t, section.Validate())

	section.StorageDir = ""
	assert.Error(t, section.Validate())

	section.Reset()
	section.WaitSeconds = -1
	assert.Error(t, section.Validate())

	section.Reset()
	section.ViewportWidth = 10
	assert.Error(t, section.Validate())
}

func TestBrowserSectionSetData(t *testing.T) {
	section := NewBrowserSection()

	// JSON-decoded numbers arrive as float64
	err := section.SetData(map[string]interface{}{
		"headless":     false,
		"storage_dir":  "/tmp/s1",
		"wait_seconds": float64(7),
	})
	require.NoError(t, err)

	assert.False(t, section.IsHeadless())
	assert.Equal(t, "/tmp/s1", section.GetStorageDir())
	assert.Equal(t, 7, section.GetWaitSeconds())
}

func TestGenerationSectionClampsWorkers(t *testing.T) {
	section := NewGenerationSection()

	require.NoError(t, section.SetData(map[string]interface{}{"max_workers": float64(16)}))
	assert.Equal(t, 4, section.GetMaxWorkers())
	assert.Error(t, section.Validate())

	require.NoError(t, section.SetData(map[string]interface{}{"max_workers": float64(2)}))
	assert.Equal(t, 2, section.GetMaxWorkers())
	assert.NoError(t, section.Validate())
}
