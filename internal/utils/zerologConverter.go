package utils

import (
	"strings"

	"github.com/rs/zerolog"
)

// ToZeroLogDebug adapts an io.Writer based logger, like the one used by http.Server or
// log.Logger, to a zerolog logger.
type ToZeroLogDebug struct {
	Logger *zerolog.Logger
}

func (w *ToZeroLogDebug) Write(p []byte) (n int, err error) {
	w.Logger.Debug().Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}
