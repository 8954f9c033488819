package auth

import (
	"strings"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
)

var _ KeyStore = (*configurationKeyStore)(nil)

// configurationKeyStore keeps the API key in the configuration. The key is persisted into the user
// configuration file when the configuration is file backed; the CYBEDEFEND_API_KEY environment
// variable always takes precedence over the persisted value.
type configurationKeyStore struct {
	config configuration.Configuration
}

func NewConfigurationKeyStore(config configuration.Configuration) KeyStore {
	config.PersistInStorage(configuration.API_KEY)
	return &configurationKeyStore{config: config}
}

func (k *configurationKeyStore) GetApiKey() (string, error) {
	return strings.TrimSpace(k.config.GetString(configuration.API_KEY)), nil
}

func (k *configurationKeyStore) SetApiKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if len(apiKey) == 0 {
		return errorcatalog.NewConfigurationError("store API key", "the API key must not be empty")
	}

	k.config.Set(configuration.API_KEY, apiKey)
	return nil
}

func (k *configurationKeyStore) RemoveApiKey() error {
	k.config.Unset(configuration.API_KEY)
	return nil
}
