// Package errorcatalog defines the error taxonomy shared by the transport, archive and scan layers.
// Every error carries a Kind that callers switch on and the operation it happened in; the cause
// stays reachable through errors.Unwrap.
package errorcatalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	catalog "github.com/snyk/error-catalog-golang-public/snyk_errors"
)

type Kind string

const (
	KindUnknown            Kind = "unknown"
	KindConfiguration      Kind = "configuration"
	KindNetwork            Kind = "network"
	KindAuthentication     Kind = "authentication"
	KindAuthorization      Kind = "authorization"
	KindNotFound           Kind = "not-found"
	KindInvalidRequest     Kind = "invalid-request"
	KindRateLimited        Kind = "rate-limited"
	KindServerError        Kind = "server-error"
	KindUnexpectedResponse Kind = "unexpected-response"
	KindCancelled          Kind = "cancelled"
	KindTimeout            Kind = "timeout"
	KindIO                 Kind = "io"
)

// Sentinels for errors.Is, they match any *Error of the same kind.
var (
	ErrConfiguration      = &Error{Kind: KindConfiguration}
	ErrNetwork            = &Error{Kind: KindNetwork}
	ErrAuthentication     = &Error{Kind: KindAuthentication}
	ErrAuthorization      = &Error{Kind: KindAuthorization}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidRequest     = &Error{Kind: KindInvalidRequest}
	ErrRateLimited        = &Error{Kind: KindRateLimited}
	ErrServerError        = &Error{Kind: KindServerError}
	ErrUnexpectedResponse = &Error{Kind: KindUnexpectedResponse}
	ErrCancelled          = &Error{Kind: KindCancelled}
	ErrTimeout            = &Error{Kind: KindTimeout}
	ErrIO                 = &Error{Kind: KindIO}
)

type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "fetch scan status".
	Op string
	// StatusCode is the http status that caused the error, 0 if none was received.
	StatusCode int
	// Detail is the human readable description shown to users.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	detail := e.Detail
	if len(detail) == 0 && e.Err != nil {
		detail = e.Err.Error()
	}
	if len(detail) == 0 {
		detail = string(e.Kind)
	}

	if len(e.Op) == 0 {
		return detail
	}
	return fmt.Sprintf("%s failed: %s", e.Op, detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Detail == "" && t.Err == nil && t.Kind == e.Kind
}

// As converts to the generic catalog error, so errors.As(err, &catalog.Error{}) works on every error
// of this package.
func (e *Error) As(target any) bool {
	if t, ok := target.(*catalog.Error); ok {
		*t = e.Catalog()
		return true
	}
	return false
}

var kindTitles = map[Kind]string{
	KindUnknown:            "Unexpected error",
	KindConfiguration:      "Configuration error",
	KindNetwork:            "Network error",
	KindAuthentication:     "Authentication error",
	KindAuthorization:      "Authorization error",
	KindNotFound:           "Not found",
	KindInvalidRequest:     "Invalid request",
	KindRateLimited:        "Rate limit exceeded",
	KindServerError:        "Server error",
	KindUnexpectedResponse: "Unexpected response",
	KindCancelled:          "Cancelled",
	KindTimeout:            "Timeout",
	KindIO:                 "File system error",
}

// ErrorCode is the stable code of a kind, e.g. CD-NOT-FOUND.
func ErrorCode(kind Kind) string {
	return "CD-" + strings.ToUpper(string(kind))
}

// Catalog describes e as a generic catalog error: title and code from the kind, the user facing
// message as detail and the operation in the metadata.
func (e *Error) Catalog() catalog.Error {
	title, ok := kindTitles[e.Kind]
	if !ok {
		title = kindTitles[KindUnknown]
	}

	classification, level := "ACTIONABLE", "error"
	switch e.Kind {
	case KindCancelled:
		level = "info"
	case KindUnknown, KindServerError, KindUnexpectedResponse, KindNetwork, KindIO, KindTimeout:
		classification = "UNEXPECTED"
	}

	catalogErr := catalog.Error{
		Title:          title,
		ErrorCode:      ErrorCode(e.Kind),
		Classification: classification,
		Level:          level,
		StatusCode:     e.StatusCode,
		Detail:         e.Error(),
		Meta:           map[string]any{},
	}
	if len(e.Op) > 0 {
		catalog.WithMeta("operation", e.Op)(&catalogErr)
	}
	if e.Err != nil {
		catalog.WithCause(e.Err)(&catalogErr)
	}
	return catalogErr
}

func newError(kind Kind, op string, detail string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail, Err: cause}
}

func NewConfigurationError(op string, detail string) *Error {
	return newError(KindConfiguration, op, detail, nil)
}

func NewNetworkError(op string, baseUrl string, cause error) *Error {
	detail := fmt.Sprintf("no response from server at %s, check the network connection and the API URL", baseUrl)
	return newError(KindNetwork, op, detail, cause)
}

func NewUnexpectedResponseError(op string, detail string, cause error) *Error {
	if len(detail) == 0 {
		detail = "unexpected response format"
	}
	return newError(KindUnexpectedResponse, op, detail, cause)
}

func NewCancelledError(op string, cause error) *Error {
	if cause == nil {
		cause = context.Canceled
	}
	return newError(KindCancelled, op, "cancelled by user", cause)
}

func NewTimeoutError(op string, detail string) *Error {
	return newError(KindTimeout, op, detail, context.DeadlineExceeded)
}

func NewIOError(op string, cause error) *Error {
	return newError(KindIO, op, "", cause)
}

// FromStatusCode maps an unsuccessful http status code to the matching error kind.
// serverMessage is appended when the service provided one.
func FromStatusCode(op string, statusCode int, serverMessage string) *Error {
	var kind Kind
	var detail string

	switch {
	case statusCode == http.StatusUnauthorized:
		kind, detail = KindAuthentication, "authentication failed, check your API key"
	case statusCode == http.StatusForbidden:
		kind, detail = KindAuthorization, "permission denied, the API key has no access to this resource"
	case statusCode == http.StatusNotFound:
		kind, detail = KindNotFound, "resource not found, check the project and identifiers"
	case statusCode == http.StatusBadRequest:
		kind, detail = KindInvalidRequest, "invalid request"
	case statusCode == http.StatusTooManyRequests:
		kind, detail = KindRateLimited, "rate limit exceeded, try again later"
	case statusCode >= http.StatusInternalServerError:
		kind, detail = KindServerError, fmt.Sprintf("server error (%d), try again later", statusCode)
	default:
		kind, detail = KindUnexpectedResponse, fmt.Sprintf("unexpected status code %d", statusCode)
	}

	if msg := strings.TrimSpace(serverMessage); len(msg) > 0 {
		detail = detail + ": " + msg
	}

	e := newError(kind, op, detail, nil)
	e.StatusCode = statusCode
	return e
}

// Label rewrites the operation of an error while keeping its kind and cause. Errors that are not
// yet part of the catalog are classified by their cause.
func Label(op string, err error) error {
	if err == nil {
		return nil
	}

	var catalogErr *Error
	if errors.As(err, &catalogErr) {
		relabeled := *catalogErr
		relabeled.Op = op
		return &relabeled
	}

	switch {
	case errors.Is(err, context.Canceled):
		return NewCancelledError(op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return newError(KindTimeout, op, "operation timed out", err)
	}

	return newError(KindUnknown, op, "", err)
}

// KindOf returns the kind of the first catalog error in the chain.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var catalogErr *Error
	if errors.As(err, &catalogErr) {
		return catalogErr.Kind
	}

	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	return KindUnknown
}

func IsCancelled(err error) bool {
	return KindOf(err) == KindCancelled
}

// StatusCode returns the http status code carried by err, 0 if there is none.
func StatusCode(err error) int {
	var catalogErr *Error
	if errors.As(err, &catalogErr) {
		return catalogErr.StatusCode
	}
	return 0
}
