package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
)

// RequestIdMiddleware tags every request with a unique id that is also written to the debug log,
// making it possible to correlate client logs with the service.
type RequestIdMiddleware struct {
	next http.RoundTripper
}

func NewRequestIdMiddleware(roundTripper http.RoundTripper) *RequestIdMiddleware {
	return &RequestIdMiddleware{next: roundTripper}
}

func (m *RequestIdMiddleware) RoundTrip(request *http.Request) (*http.Response, error) {
	if len(request.Header.Get(constants.CYBEDEFEND_REQUEST_ID_HEADER)) > 0 {
		return m.next.RoundTrip(request)
	}

	newRequest := request.Clone(request.Context())
	newRequest.Header.Set(constants.CYBEDEFEND_REQUEST_ID_HEADER, uuid.NewString())
	return m.next.RoundTrip(newRequest)
}
