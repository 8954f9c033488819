package configuration

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
)

// DefaultEnvFiles are looked up in the working directory when no explicit env files are configured.
var DefaultEnvFiles = []string{".env", ".cybedefend.env"}

// LoadEnvFiles reads the given dotenv files, relative paths are resolved against workingDir.
// Variables that are already present in the process environment win. Missing files are skipped.
func LoadEnvFiles(workingDir string, files []string) error {
	for _, file := range files {
		if !filepath.IsAbs(file) {
			file = filepath.Join(workingDir, file)
		}

		env, err := gotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}

		SetParsedVariablesToEnv(env)
	}
	return nil
}

// SetParsedVariablesToEnv copies variables into the process environment without overwriting existing ones.
func SetParsedVariablesToEnv(env gotenv.Env) {
	for k, v := range env {
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, v)
		}
	}
}
