package middleware_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/auth"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/mocks"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/networking/middleware"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func Test_ShouldRequireAuthentication(t *testing.T) {
	cases := map[string]bool{
		"https://api-us.cybedefend.com/project/1/scan/start": true,
		"https://api-us.cybedefend.com:443/project":          true,
		"https://API-US.cybedefend.com/project":              true,
		"http://api-us.cybedefend.com/project":               false,
		"https://api-eu.cybedefend.com/project":              false,
		"https://api-us.cybedefend.com.evil.com/project":     false,
		"https://example.com":                                false,
	}

	for u, expected := range cases {
		t.Run(u, func(t *testing.T) {
			requestUrl, err := url.Parse(u)
			require.NoError(t, err)
			actual, err := middleware.ShouldRequireAuthentication("https://api-us.cybedefend.com/", requestUrl)
			assert.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}
}

func Test_ShouldRequireAuthentication_BasePath(t *testing.T) {
	requestUrl, _ := url.Parse("https://gateway.example.com/other/project")
	actual, err := middleware.ShouldRequireAuthentication("https://gateway.example.com/cybedefend", requestUrl)
	assert.NoError(t, err)
	assert.False(t, actual)

	requestUrl, _ = url.Parse("https://gateway.example.com/cybedefend/project")
	actual, err = middleware.ShouldRequireAuthentication("https://gateway.example.com/cybedefend", requestUrl)
	assert.NoError(t, err)
	assert.True(t, actual)
}

func Test_AuthHeaderMiddleware_AddsHeaderForApiRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	authenticator := mocks.NewMockAuthenticator(ctrl)
	config := configuration.NewInMemory()
	config.Set(configuration.API_URL, "https://api-us.cybedefend.com")

	authenticator.EXPECT().AddAuthenticationHeader(gomock.Any()).DoAndReturn(func(r *http.Request) error {
		r.Header.Set("X-API-Key", "secret")
		return nil
	}).Times(1)

	var received *http.Request
	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		received = r
		return &http.Response{StatusCode: http.StatusOK}, nil
	})

	mw := middleware.NewAuthHeaderMiddleware(config, authenticator, next)

	apiRequest, _ := http.NewRequest(http.MethodGet, "https://api-us.cybedefend.com/project/p/scan/s", nil)
	_, err := mw.RoundTrip(apiRequest)
	require.NoError(t, err)
	assert.Equal(t, "secret", received.Header.Get("X-API-Key"))
	assert.Empty(t, apiRequest.Header.Get("X-API-Key"), "original request must not be modified")

	// other hosts never see the key
	otherRequest, _ := http.NewRequest(http.MethodGet, "https://example.com/download", nil)
	_, err = mw.RoundTrip(otherRequest)
	require.NoError(t, err)
	assert.Empty(t, received.Header.Get("X-API-Key"))
}

func Test_AuthHeaderMiddleware_MissingKeyFailsBeforeNetwork(t *testing.T) {
	config := configuration.NewInMemory()
	config.Set(configuration.API_URL, "https://api-us.cybedefend.com")
	store := auth.NewConfigurationKeyStore(config)

	called := false
	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: http.StatusOK}, nil
	})

	mw := middleware.NewAuthHeaderMiddleware(config, auth.NewApiKeyAuthenticator(store), next)
	request, _ := http.NewRequest(http.MethodGet, "https://api-us.cybedefend.com/project/p/results/sast", nil)

	response, err := mw.RoundTrip(request)

	assert.Nil(t, response)
	assert.ErrorIs(t, err, auth.ErrApiKeyNotConfigured)
	assert.False(t, called)
}
