package utils

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const FILEPERM_700 = 0o700

// TempDirectory returns the directory scan archives are written to, creating it if necessary.
// An empty base falls back to the system temp directory.
func TempDirectory(logger *zerolog.Logger, base string, product string) (string, error) {
	if len(base) == 0 {
		base = os.TempDir()
	}

	dir := filepath.Join(base, product)
	if _, err := os.Stat(dir); err != nil {
		logger.Debug().Str("dir", dir).Msg("temp directory does not exist, creating it")
		if err = os.MkdirAll(dir, FILEPERM_700); err != nil {
			logger.Debug().Err(err).Str("dir", dir).Msg("failed to create temp directory")
			return "", err
		}
	}

	return dir, nil
}
