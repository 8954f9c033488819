package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
)

const defaultRetryCount uint = 1 // Per default retries (=1) are disabled and need to be enabled via the configuration
const defaultRetryAfterSeconds = 5
const maxRetryAfter = 10 * time.Minute
const ConfigurationKeyRetryAttempts = "internal_network_request_max_attempts"
const ConfigurationKeyRetryAfter = "internal_network_request_retry_after_seconds"
const retryCountHeaderKey = "X-Cybedefend-Request-Attempt-Count"

// status codes that are worth another attempt
var statusCodesToRetryLUT = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusTooEarly:            true,
	http.StatusRequestTimeout:      true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

var errRetryNecessary = errors.New("retry with backoff")
var errRetryAfterHeaderError = errors.New("retry-after is too much in the future")

type RetryMiddleware struct {
	nextRoundtripper http.RoundTripper
	config           configuration.Configuration
	logger           *zerolog.Logger
}

func NewRetryMiddleware(config configuration.Configuration, logger *zerolog.Logger, roundTripper http.RoundTripper) *RetryMiddleware {
	return &RetryMiddleware{
		nextRoundtripper: roundTripper,
		config:           config,
		logger:           logger,
	}
}

func (rm RetryMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	maxAttempts := defaultRetryCount
	retryAfterSeconds := defaultRetryAfterSeconds

	if tmp := rm.config.GetInt(ConfigurationKeyRetryAttempts); tmp > 0 {
		maxAttempts = uint(tmp)
	}

	if tmp := rm.config.GetInt(ConfigurationKeyRetryAfter); tmp > 0 {
		retryAfterSeconds = tmp
	}

	// streamed bodies (archive uploads) can't be replayed, they are sent exactly once
	if maxAttempts <= 1 || (req.Body != nil && req.GetBody == nil) {
		return rm.nextRoundtripper.RoundTrip(req)
	}

	var localBodyBuffer []byte
	if req.Body != nil {
		var err error
		localBodyBuffer, err = io.ReadAll(req.Body)
		closeErr := req.Body.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, closeErr
		}
	}

	actualAttempts := 0
	op := func() (*http.Response, error) {
		actualAttempts++

		localRequest := req.Clone(req.Context())
		if localBodyBuffer != nil {
			localRequest.Body = io.NopCloser(bytes.NewReader(localBodyBuffer))
		}

		response, err := rm.nextRoundtripper.RoundTrip(localRequest)
		if response != nil && response.Header != nil && actualAttempts > 1 {
			response.Header.Set(retryCountHeaderKey, fmt.Sprintf("%d", actualAttempts))
		}

		// transport errors are not retried, the poll loop takes care of transient connectivity issues
		if err != nil {
			return response, backoff.Permanent(err)
		}

		if retryError := shouldRetry(response); retryError != nil {
			rm.logger.Debug().Int("attempt", actualAttempts).Msgf("Retrying request, reason: %v", retryError)
			bufferResponseBody(response)
			return response, retryError
		}

		return response, nil
	}

	backoffMethod := backoff.NewExponentialBackOff()
	backoffMethod.InitialInterval = time.Duration(retryAfterSeconds) * time.Second
	finalResponse, finalError := backoff.Retry(req.Context(), op, backoff.WithBackOff(backoffMethod), backoff.WithMaxTries(maxAttempts))

	// the last response is handed to the caller, which maps its status code to an error
	if errors.Is(finalError, errRetryNecessary) || errors.Is(finalError, errRetryAfterHeaderError) {
		rm.logger.Warn().Msgf("Retry ultimately failed after %d attempts", actualAttempts)
		finalError = nil
	}

	return finalResponse, finalError
}

func shouldRetry(response *http.Response) error {
	if !statusCodesToRetryLUT[response.StatusCode] {
		return nil
	}

	fixRetryDelay := time.Duration(0)
	if headerRetryAfterValue := response.Header.Get("Retry-After"); len(headerRetryAfterValue) > 0 {
		fixRetryDelay = parseRetryAfterHeader(headerRetryAfterValue)
	}

	if fixRetryDelay > maxRetryAfter {
		return backoff.Permanent(errRetryAfterHeaderError)
	}

	if fixRetryDelay > 0 {
		return &backoff.RetryAfterError{Duration: fixRetryDelay}
	}

	return errRetryNecessary
}

func parseRetryAfterHeader(headerRetryAfterValue string) time.Duration {
	// Retry-After: 120
	if tmp, err := strconv.ParseInt(headerRetryAfterValue, 10, 64); err == nil {
		return time.Duration(tmp) * time.Second
	}

	// Retry-After: Fri, 31 Dec 1999 23:59:59 GMT
	if tmp, err := time.Parse(time.RFC1123, headerRetryAfterValue); err == nil {
		if until := time.Until(tmp); until > 0 {
			return until
		}
	}

	return 0
}

// bufferResponseBody releases the connection of a response that might be superseded by another
// attempt while keeping its body readable in case it turns out to be the final one.
func bufferResponseBody(response *http.Response) {
	if response.Body == nil {
		return
	}
	bodyBytes, _ := io.ReadAll(response.Body)
	_ = response.Body.Close()
	response.Body = io.NopCloser(bytes.NewReader(bodyBytes))
}
