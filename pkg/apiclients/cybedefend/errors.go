package cybedefend

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
)

// handleUnexpectedStatusCodes maps an unsuccessful response to the error catalog. A message
// provided by the service is appended to the description.
func handleUnexpectedStatusCodes(body io.Reader, statusCode int, op string) error {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrorMessageSize))
	return errorcatalog.FromStatusCode(op, statusCode, serverMessage(data))
}

func serverMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var response errorResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return ""
	}

	switch message := response.Message.(type) {
	case string:
		return message
	case []any:
		parts := make([]string, 0, len(message))
		for _, part := range message {
			if s, ok := part.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return response.Error
}
