package errorcatalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	catalog "github.com/snyk/error-catalog-golang-public/snyk_errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FromStatusCode(t *testing.T) {
	testCases := []struct {
		status   int
		expected Kind
		sentinel error
	}{
		{http.StatusUnauthorized, KindAuthentication, ErrAuthentication},
		{http.StatusForbidden, KindAuthorization, ErrAuthorization},
		{http.StatusNotFound, KindNotFound, ErrNotFound},
		{http.StatusBadRequest, KindInvalidRequest, ErrInvalidRequest},
		{http.StatusTooManyRequests, KindRateLimited, ErrRateLimited},
		{http.StatusInternalServerError, KindServerError, ErrServerError},
		{http.StatusBadGateway, KindServerError, ErrServerError},
		{http.StatusTeapot, KindUnexpectedResponse, ErrUnexpectedResponse},
	}

	for _, tc := range testCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			err := FromStatusCode("fetch results", tc.status, "")

			assert.Equal(t, tc.expected, err.Kind)
			assert.Equal(t, tc.status, err.StatusCode)
			assert.ErrorIs(t, err, tc.sentinel)
			assert.Contains(t, err.Error(), "fetch results failed: ")
		})
	}
}

func Test_FromStatusCode_AppendsServerMessage(t *testing.T) {
	err := FromStatusCode("start scan", http.StatusBadRequest, " archive is empty ")
	assert.Equal(t, "start scan failed: invalid request: archive is empty", err.Error())
}

func Test_Label_KeepsKindAndCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	original := NewNetworkError("request", "https://api-us.cybedefend.com", cause)

	labeled := Label("fetch scan status", fmt.Errorf("wrapped: %w", original))

	assert.Equal(t, KindNetwork, KindOf(labeled))
	assert.ErrorIs(t, labeled, cause)
	assert.Contains(t, labeled.Error(), "fetch scan status failed")
	assert.Contains(t, labeled.Error(), "https://api-us.cybedefend.com")
	// the original is not modified
	assert.Equal(t, "request", original.Op)
}

func Test_Label_ClassifiesContextErrors(t *testing.T) {
	assert.Equal(t, KindCancelled, KindOf(Label("archive", context.Canceled)))
	assert.Equal(t, KindTimeout, KindOf(Label("upload", context.DeadlineExceeded)))
	assert.Equal(t, KindUnknown, KindOf(Label("upload", errors.New("boom"))))
	assert.Nil(t, Label("noop", nil))
}

func Test_IsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(NewCancelledError("archive", nil)))
	assert.True(t, IsCancelled(fmt.Errorf("outer: %w", context.Canceled)))
	assert.False(t, IsCancelled(NewTimeoutError("poll", "budget exhausted")))
	assert.False(t, IsCancelled(nil))
}

func Test_StatusCode(t *testing.T) {
	assert.Equal(t, 404, StatusCode(fmt.Errorf("x: %w", FromStatusCode("op", 404, ""))))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}

func Test_Error_MessageFallbacks(t *testing.T) {
	assert.Equal(t, "io", (&Error{Kind: KindIO}).Error())
	assert.Equal(t, "archive failed: disk full", NewIOError("archive", errors.New("disk full")).Error())
}

func Test_Catalog_DescribesKind(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	described := FromStatusCode("fetch results", http.StatusTooManyRequests, "").Catalog()
	assert.Equal(t, "Rate limit exceeded", described.Title)
	assert.Equal(t, "CD-RATE-LIMITED", described.ErrorCode)
	assert.Equal(t, "ACTIONABLE", described.Classification)
	assert.Equal(t, "error", described.Level)
	assert.Equal(t, http.StatusTooManyRequests, described.StatusCode)
	assert.Equal(t, "fetch results failed: rate limit exceeded, try again later", described.Detail)
	assert.Equal(t, "fetch results", described.Meta["operation"])

	network := NewNetworkError("request", "https://api-us.cybedefend.com", cause).Catalog()
	assert.Equal(t, "UNEXPECTED", network.Classification)
	assert.Equal(t, 0, network.StatusCode)

	assert.Equal(t, "info", NewCancelledError("archive", nil).Catalog().Level)
	assert.Equal(t, "Unexpected error", (&Error{Kind: "bogus"}).Catalog().Title)
}

func Test_As_CatalogError(t *testing.T) {
	err := fmt.Errorf("scan: %w", FromStatusCode("start scan", http.StatusForbidden, ""))

	catalogErr := catalog.Error{}
	require.ErrorAs(t, err, &catalogErr)
	assert.Equal(t, http.StatusForbidden, catalogErr.StatusCode)
	assert.Equal(t, "CD-AUTHORIZATION", catalogErr.ErrorCode)

	// the package type is still reachable
	var own *Error
	require.ErrorAs(t, err, &own)
	assert.Equal(t, KindAuthorization, own.Kind)

	assert.False(t, errors.As(errors.New("plain"), &catalogErr))
}
