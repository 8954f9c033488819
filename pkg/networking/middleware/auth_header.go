package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/api"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/auth"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
)

// AuthHeaderMiddleware attaches the API key to every request sent to the configured API.
// A request that needs a key but has none is rejected before it reaches the network.
type AuthHeaderMiddleware struct {
	next          http.RoundTripper
	authenticator auth.Authenticator
	config        configuration.Configuration
}

func NewAuthHeaderMiddleware(
	config configuration.Configuration,
	authenticator auth.Authenticator,
	roundTripper http.RoundTripper,
) *AuthHeaderMiddleware {
	return &AuthHeaderMiddleware{
		next:          roundTripper,
		config:        config,
		authenticator: authenticator,
	}
}

func (n *AuthHeaderMiddleware) RoundTrip(request *http.Request) (*http.Response, error) {
	if request.URL == nil {
		return n.next.RoundTrip(request)
	}

	requiresAuth, err := ShouldRequireAuthentication(n.config.GetString(configuration.API_URL), request.URL)
	if err != nil || !requiresAuth {
		return n.next.RoundTrip(request)
	}

	// RoundTrippers must not modify the original request
	newRequest := request.Clone(request.Context())
	if err = n.authenticator.AddAuthenticationHeader(newRequest); err != nil {
		if request.Body != nil {
			_ = request.Body.Close()
		}
		return nil, err
	}

	return n.next.RoundTrip(newRequest)
}

// ShouldRequireAuthentication returns true if the request targets the host and base path of the API.
func ShouldRequireAuthentication(apiUrl string, requestUrl *url.URL) (bool, error) {
	canonicalApiUrl, err := api.GetCanonicalApiUrl(apiUrl)
	if err != nil {
		return false, err
	}

	parsedApiUrl, err := url.Parse(canonicalApiUrl)
	if err != nil {
		return false, err
	}

	if !strings.EqualFold(parsedApiUrl.Scheme, requestUrl.Scheme) || !strings.EqualFold(hostWithPort(parsedApiUrl), hostWithPort(requestUrl)) {
		return false, nil
	}

	return strings.HasPrefix(requestUrl.Path, parsedApiUrl.Path), nil
}

func hostWithPort(u *url.URL) string {
	port := u.Port()
	if len(port) == 0 {
		switch strings.ToLower(u.Scheme) {
		case "https":
			port = "443"
		case "http":
			port = "80"
		}
	}
	return u.Hostname() + ":" + port
}
