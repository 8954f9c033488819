package cybedefend

import (
	"github.com/rs/zerolog"
)

// Option allows customizing the client during construction.
type Option func(*HTTPClient)

// WithLogger allows injecting a custom logger instance.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}
