package networking

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
)

const defaultNetworkLogLevel = zerolog.DebugLevel
const extendedNetworkLogLevel = zerolog.TraceLevel
const maxNumberOfRequestBodyCharacters = 256
const maxNumberOfResponseBodyCharacters = 10 * 1024
const redactedHeaderValue = "***"

var sensitiveHeaders = []string{
	constants.CYBEDEFEND_API_KEY_HEADER,
	"Authorization",
	"Cookie",
	"Set-Cookie",
}

// content types whose bodies are never logged
var binaryMIMETypes = []string{
	"application/octet-stream",
	"application/zip",
	"application/x-zip-compressed",
	"application/gzip",
	"multipart/form-data",
}

func shouldNotLog(currentLevel zerolog.Level, levelToLogAt zerolog.Level) bool {
	return currentLevel > levelToLogAt
}

func redactHeader(header http.Header) http.Header {
	redacted := header.Clone()
	for _, key := range sensitiveHeaders {
		if len(redacted.Values(key)) > 0 {
			redacted.Set(key, redactedHeaderValue)
		}
	}
	return redacted
}

// isBinaryContent checks if the content type indicates data that shouldn't be logged
func isBinaryContent(contentType string) bool {
	mimeType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for _, binaryMIMEType := range binaryMIMETypes {
		if mimeType == binaryMIMEType {
			return true
		}
	}
	return false
}

// shortenStringFromCenter keeps only maxCharacters of str, removing content from the center.
func shortenStringFromCenter(str string, maxCharacters int) string {
	if maxCharacters > 0 && len(str) > maxCharacters {
		half := maxCharacters / 2
		str = fmt.Sprintf("%s [...shortened...] %s", str[:half], str[len(str)-half:])
	}
	return str
}

func readRequestBody(request *http.Request) []byte {
	if request.GetBody == nil {
		// streamed bodies can only be consumed once
		return nil
	}

	body, err := request.GetBody()
	if err != nil {
		return nil
	}
	defer body.Close()

	bodyBytes, _ := io.ReadAll(body)
	return bodyBytes
}

func readResponseBody(response *http.Response) []byte {
	if response.Body == nil {
		return nil
	}

	bodyBytes, err := io.ReadAll(response.Body)
	_ = response.Body.Close()
	response.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	if err != nil {
		return nil
	}
	return bodyBytes
}

func LogRequest(r *http.Request, logger *zerolog.Logger) {
	if shouldNotLog(logger.GetLevel(), defaultNetworkLogLevel) {
		return
	}

	logPrefixRequest := fmt.Sprintf("> request [%p]:", r)
	logger.WithLevel(defaultNetworkLogLevel).Msgf("%s %s %s", logPrefixRequest, r.Method, r.URL.String())
	logger.WithLevel(defaultNetworkLogLevel).Msgf("%s header: %v", logPrefixRequest, redactHeader(r.Header))

	if shouldNotLog(logger.GetLevel(), extendedNetworkLogLevel) || isBinaryContent(r.Header.Get("Content-Type")) {
		return
	}

	if body := readRequestBody(r); len(body) > 0 {
		logger.WithLevel(defaultNetworkLogLevel).Msgf("%s body: %s", logPrefixRequest, shortenStringFromCenter(string(body), maxNumberOfRequestBodyCharacters))
	}
}

func LogResponse(response *http.Response, logger *zerolog.Logger) {
	if response == nil || shouldNotLog(logger.GetLevel(), defaultNetworkLogLevel) {
		return
	}

	logPrefixResponse := fmt.Sprintf("< response [%p]:", response.Request)
	logger.WithLevel(defaultNetworkLogLevel).Msgf("%s %s", logPrefixResponse, response.Status)
	logger.WithLevel(defaultNetworkLogLevel).Msgf("%s header: %v", logPrefixResponse, redactHeader(response.Header))

	// bodies are logged for errors and in trace mode
	if response.StatusCode < 400 && shouldNotLog(logger.GetLevel(), extendedNetworkLogLevel) {
		return
	}

	if isBinaryContent(response.Header.Get("Content-Type")) {
		logger.WithLevel(defaultNetworkLogLevel).Msgf("%s body: [BINARY CONTENT - NOT LOGGED]", logPrefixResponse)
		return
	}

	if body := readResponseBody(response); len(body) > 0 {
		logger.WithLevel(defaultNetworkLogLevel).Msgf("%s body: %s", logPrefixResponse, shortenStringFromCenter(string(body), maxNumberOfResponseBodyCharacters))
	}
}
