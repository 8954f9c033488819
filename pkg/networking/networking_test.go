package networking

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/auth"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
)

func Test_HttpClient_DecoratesApiRequests(t *testing.T) {
	var received http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	config := configuration.NewInMemory()
	config.Set(configuration.API_URL, server.URL)
	config.Set(configuration.API_KEY, "the-key")
	net := NewNetworkAccess(config)
	net.AddHeaderField("X-Custom", "value")
	net.SetUserAgent(UserAgent(UaWithApplication("cybedefend", "1.2.3")))

	response, err := net.GetHttpClient().Get(server.URL + "/project/p/scan/s")
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Equal(t, "the-key", received.Get("X-API-Key"))
	assert.Equal(t, "value", received.Get("X-Custom"))
	assert.NotEmpty(t, received.Get("X-Request-Id"))
	assert.True(t, strings.HasPrefix(received.Get("User-Agent"), "cybedefend/1.2.3 ("))
}

func Test_HttpClient_MissingApiKeyNeverReachesServer(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	config := configuration.NewInMemory()
	config.Set(configuration.API_URL, server.URL)
	net := NewNetworkAccess(config)

	_, err := net.GetHttpClient().Get(server.URL + "/project/p/results/sast")

	assert.ErrorIs(t, err, auth.ErrApiKeyNotConfigured)
	assert.Equal(t, int32(0), calls.Load())
}

func Test_HttpClient_KeyIsReadPerRequest(t *testing.T) {
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("X-API-Key"))
	}))
	defer server.Close()

	config := configuration.NewInMemory()
	config.Set(configuration.API_URL, server.URL)
	config.Set(configuration.API_KEY, "first")
	client := NewNetworkAccess(config).GetHttpClient()

	response, err := client.Get(server.URL)
	require.NoError(t, err)
	_ = response.Body.Close()

	config.Set(configuration.API_KEY, "second")
	response, err = client.Get(server.URL)
	require.NoError(t, err)
	_ = response.Body.Close()

	assert.Equal(t, []string{"first", "second"}, keys)
}
