package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_JsonStorage_NoConfigFile(t *testing.T) {
	nonExistingFile := filepath.Join(t.TempDir(), "sub", "nonExistingFile.json")
	storage := NewJsonStorage(nonExistingFile)

	err := storage.Set("someKey", "someValue")
	assert.NoError(t, err)
	assert.FileExists(t, nonExistingFile)
}

func readStoredConfig(t *testing.T, configFile string) map[string]any {
	t.Helper()
	storedConfig := make(map[string]any)
	fileBytes, err := os.ReadFile(configFile)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(fileBytes, &storedConfig))
	return storedConfig
}

func Test_JsonStorage_Set(t *testing.T) {
	t.Parallel()
	const key = "someKey"
	const expectedValue = "someValue"
	const preExistingKey = "someOtherKey"
	const preExistingValue = "someOtherValue"

	preExisting, _ := json.Marshal(map[string]string{preExistingKey: preExistingValue})
	configFile := filepath.Join(t.TempDir(), "test.json")
	require.NoError(t, os.WriteFile(configFile, preExisting, 0o600))
	storage := NewJsonStorage(configFile)

	require.NoError(t, storage.Set(key, expectedValue))

	t.Run("File contains key", func(t *testing.T) {
		assert.Equal(t, expectedValue, readStoredConfig(t, configFile)[key])
	})
	t.Run("Pre-stored values are not deleted", func(t *testing.T) {
		assert.Equal(t, preExistingValue, readStoredConfig(t, configFile)[preExistingKey])
	})
	t.Run("Overwrites existing value", func(t *testing.T) {
		require.NoError(t, storage.Set(key, "new value"))
		assert.Equal(t, "new value", readStoredConfig(t, configFile)[key])
	})
	t.Run("Unset removes only the given key", func(t *testing.T) {
		require.NoError(t, storage.Unset(key))
		stored := readStoredConfig(t, configFile)
		assert.NotContains(t, stored, key)
		assert.Equal(t, preExistingValue, stored[preExistingKey])
	})
}
