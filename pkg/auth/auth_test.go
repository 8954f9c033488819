package auth

import (
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
)

func Test_ConfigurationKeyStore(t *testing.T) {
	config := configuration.NewInMemory()
	storageFile := filepath.Join(t.TempDir(), "cybedefend.json")
	config.SetStorage(configuration.NewJsonStorage(storageFile))
	store := NewConfigurationKeyStore(config)

	key, err := store.GetApiKey()
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, store.SetApiKey("  secret-key \n"))
	key, err = store.GetApiKey()
	require.NoError(t, err)
	assert.Equal(t, "secret-key", key)
	assert.FileExists(t, storageFile)

	require.NoError(t, store.RemoveApiKey())
	key, err = store.GetApiKey()
	require.NoError(t, err)
	assert.Empty(t, key)
}

func Test_ConfigurationKeyStore_RejectsEmptyKey(t *testing.T) {
	store := NewConfigurationKeyStore(configuration.NewInMemory())

	err := store.SetApiKey("   ")

	assert.ErrorIs(t, err, errorcatalog.ErrConfiguration)
}

type staticKeyStore struct {
	key string
	err error
}

func (s *staticKeyStore) GetApiKey() (string, error) { return s.key, s.err }
func (s *staticKeyStore) SetApiKey(key string) error { s.key = key; return nil }
func (s *staticKeyStore) RemoveApiKey() error        { s.key = ""; return nil }

func Test_ApiKeyAuthenticator_AddsHeader(t *testing.T) {
	authenticator := NewApiKeyAuthenticator(&staticKeyStore{key: "abc"})
	request, _ := http.NewRequest(http.MethodGet, "https://api-us.cybedefend.com/project/p", nil)

	require.NoError(t, authenticator.AddAuthenticationHeader(request))

	assert.Equal(t, "abc", request.Header.Get("X-API-Key"))
	assert.True(t, authenticator.IsSupported())
}

func Test_ApiKeyAuthenticator_MissingKey(t *testing.T) {
	authenticator := NewApiKeyAuthenticator(&staticKeyStore{})
	request, _ := http.NewRequest(http.MethodGet, "https://api-us.cybedefend.com/project/p", nil)

	err := authenticator.AddAuthenticationHeader(request)

	assert.ErrorIs(t, err, ErrApiKeyNotConfigured)
	assert.Equal(t, errorcatalog.KindConfiguration, errorcatalog.KindOf(err))
	assert.Empty(t, request.Header.Get("X-API-Key"))
	assert.False(t, authenticator.IsSupported())
}

func Test_ApiKeyAuthenticator_StoreError(t *testing.T) {
	authenticator := NewApiKeyAuthenticator(&staticKeyStore{err: errors.New("keychain locked")})
	request, _ := http.NewRequest(http.MethodGet, "https://api-us.cybedefend.com", nil)

	err := authenticator.AddAuthenticationHeader(request)

	assert.ErrorContains(t, err, "keychain locked")
}
