package app

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/api"
	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	localworkflows "github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/logging"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

const defaultDetailCacheTtlSecs = 300

// DefaultEnvFiles are loaded from the working directory before the configuration is read, values
// already present in the environment win.
var DefaultEnvFiles = []string{".cybedefend.env", ".envrc"}

// initConfiguration initializes the configuration with initial values.
func initConfiguration(config configuration.Configuration, logger *zerolog.Logger) {
	if logger == nil {
		logger = &zlog.Logger
	}

	config.AddAlternativeKeys(configuration.API_KEY, []string{"cybedefend_token"})
	config.AddAlternativeKeys(configuration.PROJECT_ID, []string{"cybedefend_project"})

	config.AddDefaultValue(configuration.TIMEOUT, configuration.StandardDefaultValueFunction(constants.CYBEDEFEND_DEFAULT_TIMEOUT_SECS))
	config.AddDefaultValue(configuration.UPLOAD_TIMEOUT, configuration.StandardDefaultValueFunction(constants.CYBEDEFEND_DEFAULT_UPLOAD_TIMEOUT_SECS))
	config.AddDefaultValue(configuration.POLL_INTERVAL_MS, configuration.StandardDefaultValueFunction(constants.CYBEDEFEND_DEFAULT_POLL_INTERVAL_MS))
	config.AddDefaultValue(configuration.POLL_MAX_ATTEMPTS, configuration.StandardDefaultValueFunction(constants.CYBEDEFEND_DEFAULT_POLL_MAX_ATTEMPTS))
	config.AddDefaultValue(configuration.RESULTS_PAGE_SIZE, configuration.StandardDefaultValueFunction(constants.CYBEDEFEND_DEFAULT_RESULTS_PAGE_SIZE))
	config.AddDefaultValue(configuration.DETAIL_CACHE_TTL, configuration.StandardDefaultValueFunction(defaultDetailCacheTtlSecs))
	config.AddDefaultValue(configuration.TEMP_DIR_PATH, configuration.StandardDefaultValueFunction(os.TempDir()))
	config.AddDefaultValue(configuration.CUSTOM_ENV_FILES, configuration.StandardDefaultValueFunction(DefaultEnvFiles))

	config.AddDefaultValue(configuration.WORKING_DIRECTORY, func(existingValue any) any {
		if existingValue != nil {
			return existingValue
		}
		wd, err := os.Getwd()
		if err != nil {
			logger.Print("Failed to determine default value for \"WORKING_DIRECTORY\":", err)
		}
		return wd
	})

	config.AddDefaultValue(configuration.API_URL, func(existingValue any) any {
		urlString := constants.CYBEDEFEND_DEFAULT_API_URL

		if existingValue != nil {
			if temp, ok := existingValue.(string); ok && len(strings.TrimSpace(temp)) > 0 {
				urlString = temp
			}
		}

		apiString, err := api.GetCanonicalApiUrl(urlString)
		if err != nil {
			logger.Print("Failed to determine default value for \"API_URL\":", err)
			return constants.CYBEDEFEND_DEFAULT_API_URL
		}
		return apiString
	})

	config.AddDefaultValue(configuration.WEB_APP_URL, func(existingValue any) any {
		if existingValue != nil {
			return existingValue
		}

		canonicalApiUrl := config.GetString(configuration.API_URL)
		appUrl, err := api.DeriveAppUrl(canonicalApiUrl)
		if err != nil {
			logger.Print("Failed to determine default value for \"WEB_APP_URL\":", err)
		}

		return appUrl
	})
}

// loadEnvFiles applies the configured .env files to the process environment.
func loadEnvFiles(config configuration.Configuration, logger *zerolog.Logger) {
	files := config.GetStringSlice(configuration.CUSTOM_ENV_FILES)
	if err := configuration.LoadEnvFiles(config.GetString(configuration.WORKING_DIRECTORY), files); err != nil {
		logger.Warn().Err(err).Msg("Failed to load env files")
	}
}

// NewLogger creates the logger used by the CLI. Secrets are scrubbed before anything is written to
// out. The level is debug if DEBUG is set, otherwise LOG_LEVEL decides, warn by default.
func NewLogger(config configuration.Configuration, out io.Writer) *zerolog.Logger {
	writer := logging.NewScrubbingWriter(logging.NewConsoleWriter(out), logging.GetScrubDictFromConfig(config))
	logger := zerolog.New(writer).With().Timestamp().Logger().Level(logLevel(config))
	return &logger
}

func logLevel(config configuration.Configuration) zerolog.Level {
	if config.GetBool(configuration.DEBUG) {
		return zerolog.DebugLevel
	}

	if value := config.GetString(configuration.LOG_LEVEL); len(value) > 0 {
		if level, err := zerolog.ParseLevel(value); err == nil && level != zerolog.NoLevel {
			return level
		}
	}
	return zerolog.WarnLevel
}

// CreateAppEngine creates a new workflow engine backed by the user configuration file.
func CreateAppEngine() workflow.Engine {
	return CreateAppEngineWithOptions(WithConfiguration(configuration.New()))
}

func CreateAppEngineWithOptions(opts ...Opts) workflow.Engine {
	engine := workflow.NewWorkFlowEngine(configuration.NewInMemory())

	for _, opt := range opts {
		opt(engine)
	}

	config := engine.GetConfiguration()
	if config != nil {
		initConfiguration(config, engine.GetLogger())
		loadEnvFiles(config, engine.GetLogger())
	}

	engine.AddExtensionInitializer(localworkflows.Init)
	return engine
}
