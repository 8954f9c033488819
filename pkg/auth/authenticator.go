package auth

import (
	"net/http"
)

//go:generate go tool github.com/golang/mock/mockgen -source=authenticator.go -destination ../mocks/authenticator.go -package mocks -self_package github.com/CybeDefend/cybedefend-vscode-sub000/pkg/auth/

type Authenticator interface {
	// AddAuthenticationHeader adds the authentication header to the request.
	// It fails with a configuration error if no credentials are available.
	AddAuthenticationHeader(request *http.Request) error
	// IsSupported returns true if the authenticator is ready for use.
	IsSupported() bool
}

// KeyStore holds the API key sent with every request.
type KeyStore interface {
	GetApiKey() (string, error)
	SetApiKey(apiKey string) error
	RemoveApiKey() error
}
