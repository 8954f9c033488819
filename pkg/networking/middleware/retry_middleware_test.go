package middleware

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
)

type countingRoundTripper struct {
	statusCodes []int
	bodies      []string
	calls       int
}

func (c *countingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	idx := c.calls
	if idx >= len(c.statusCodes) {
		idx = len(c.statusCodes) - 1
	}
	c.calls++

	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		c.bodies = append(c.bodies, string(body))
	}

	return &http.Response{
		StatusCode: c.statusCodes[idx],
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("attempt")),
		Request:    req,
	}, nil
}

func Test_RetryMiddleware_DisabledByDefault(t *testing.T) {
	logger := zerolog.Nop()
	next := &countingRoundTripper{statusCodes: []int{http.StatusServiceUnavailable, http.StatusOK}}
	rm := NewRetryMiddleware(configuration.NewInMemory(), &logger, next)

	request, _ := http.NewRequest(http.MethodGet, "https://api-us.cybedefend.com", nil)
	response, err := rm.RoundTrip(request)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, response.StatusCode)
	assert.Equal(t, 1, next.calls)
}

func Test_RetryMiddleware_RetriesWithReplayableBody(t *testing.T) {
	logger := zerolog.Nop()
	config := configuration.NewInMemory()
	config.Set(ConfigurationKeyRetryAttempts, 2)
	config.Set(ConfigurationKeyRetryAfter, 1)
	next := &countingRoundTripper{statusCodes: []int{http.StatusBadGateway, http.StatusOK}}
	rm := NewRetryMiddleware(config, &logger, next)

	request, _ := http.NewRequest(http.MethodPost, "https://api-us.cybedefend.com", strings.NewReader(`{"message":"hi"}`))
	response, err := rm.RoundTrip(request)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "2", response.Header.Get(retryCountHeaderKey))
	assert.Equal(t, []string{`{"message":"hi"}`, `{"message":"hi"}`}, next.bodies)
}

func Test_RetryMiddleware_FinalResponseBodyStaysReadable(t *testing.T) {
	logger := zerolog.Nop()
	config := configuration.NewInMemory()
	config.Set(ConfigurationKeyRetryAttempts, 2)
	config.Set(ConfigurationKeyRetryAfter, 1)
	next := &countingRoundTripper{statusCodes: []int{http.StatusInternalServerError}}
	rm := NewRetryMiddleware(config, &logger, next)

	request, _ := http.NewRequest(http.MethodGet, "https://api-us.cybedefend.com", nil)
	response, err := rm.RoundTrip(request)

	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Equal(t, "attempt", string(body))
}

func Test_RetryMiddleware_StreamedBodyIsSentOnce(t *testing.T) {
	logger := zerolog.Nop()
	config := configuration.NewInMemory()
	config.Set(ConfigurationKeyRetryAttempts, 3)
	next := &countingRoundTripper{statusCodes: []int{http.StatusServiceUnavailable, http.StatusOK}}
	rm := NewRetryMiddleware(config, &logger, next)

	pipeReader, pipeWriter := io.Pipe()
	go func() {
		_, _ = pipeWriter.Write([]byte("archive"))
		_ = pipeWriter.Close()
	}()
	request, _ := http.NewRequest(http.MethodPost, "https://api-us.cybedefend.com", pipeReader)
	response, err := rm.RoundTrip(request)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, response.StatusCode)
	assert.Equal(t, 1, next.calls)
}

func Test_parseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 120*time.Second, parseRetryAfterHeader("120"))
	assert.Equal(t, time.Duration(0), parseRetryAfterHeader("garbage"))
	assert.Equal(t, time.Duration(0), parseRetryAfterHeader(time.Now().Add(-time.Hour).UTC().Format(time.RFC1123)))
	assert.Greater(t, parseRetryAfterHeader(time.Now().Add(time.Hour).UTC().Format(time.RFC1123)), 50*time.Minute)
}
