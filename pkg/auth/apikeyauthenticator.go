package auth

import (
	"fmt"
	"net/http"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
)

var _ Authenticator = (*apiKeyAuthenticator)(nil)

// ErrApiKeyNotConfigured is returned before any request is sent when no API key is available.
var ErrApiKeyNotConfigured = errorcatalog.NewConfigurationError("", "API key not configured, run `cybedefend auth` or set CYBEDEFEND_API_KEY")

type apiKeyAuthenticator struct {
	store KeyStore
}

// NewApiKeyAuthenticator returns an authenticator that reads the key from store for every request,
// so that a key changed during the lifetime of the process is picked up.
func NewApiKeyAuthenticator(store KeyStore) Authenticator {
	return &apiKeyAuthenticator{store: store}
}

func (a *apiKeyAuthenticator) AddAuthenticationHeader(request *http.Request) error {
	if request == nil {
		return fmt.Errorf("request must not be nil")
	}

	apiKey, err := a.store.GetApiKey()
	if err != nil {
		return errorcatalog.Label("read API key", err)
	}

	if len(apiKey) == 0 {
		return ErrApiKeyNotConfigured
	}

	request.Header.Set(constants.CYBEDEFEND_API_KEY_HEADER, apiKey)
	return nil
}

func (a *apiKeyAuthenticator) IsSupported() bool {
	apiKey, err := a.store.GetApiKey()
	return err == nil && len(apiKey) > 0
}
