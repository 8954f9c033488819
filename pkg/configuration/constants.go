package configuration

const (
	DEBUG           string = "debug"     // DEBUG (boolean) sets/returns if debugging is enabled or not
	INPUT_DIRECTORY string = "directory" // INPUT_DIRECTORY (string) sets/returns the project directory that shall be archived and scanned
	FLAG_JSON       string = "json"      // FLAG_JSON (boolean) sets/returns if output shall be rendered as json

	// cybedefend_ constants, also available as upper case environment variables
	API_URL             string = "cybedefend_api_url"             // API_URL (string) sets/returns the API URL, the url returned will always be valid and normalized
	API_KEY             string = "cybedefend_api_key"             // API_KEY (string) sets/returns the API key sent with every request (normally this value doesn't have to be used directly, see auth.KeyStore)
	PROJECT_ID          string = "cybedefend_project_id"          // PROJECT_ID (string) sets/returns the project the scans and results belong to
	TEMP_DIR_PATH       string = "cybedefend_tmp_path"            // TEMP_DIR_PATH (string) returns the temporary directory used for scan archives
	TIMEOUT             string = "cybedefend_timeout_secs"        // TIMEOUT (int) sets/returns the timeout in seconds for network requests
	UPLOAD_TIMEOUT      string = "cybedefend_upload_timeout_secs" // UPLOAD_TIMEOUT (int) sets/returns the timeout in seconds for the archive upload
	LOG_LEVEL           string = "cybedefend_log_level"           // LOG_LEVEL (string) return the log level based on zerolog levels (trace,debug,info,...)
	POLL_INTERVAL_MS    string = "cybedefend_poll_interval_ms"    // POLL_INTERVAL_MS (int) sets/returns the pause between two scan status queries
	POLL_MAX_ATTEMPTS   string = "cybedefend_poll_max_attempts"   // POLL_MAX_ATTEMPTS (int) sets/returns how often the scan status is queried before giving up
	RESULTS_PAGE_SIZE   string = "cybedefend_results_page_size"   // RESULTS_PAGE_SIZE (int) sets/returns the page size used when fetching results after a scan
	INTEGRATION_NAME    string = "cybedefend_integration_name"    // INTEGRATION_NAME (string) sets/returns the name of the integration, e.g. an IDE plugin
	INTEGRATION_VERSION string = "cybedefend_integration_version" // INTEGRATION_VERSION (string) sets/returns the version of the integration

	// internal constants
	CUSTOM_ENV_FILES  string = "internal_env_files"        // CUSTOM_ENV_FILES ([]string) .env files that are loaded before the configuration is read
	WORKING_DIRECTORY string = "internal_working_dir"      // WORKING_DIRECTORY (string) the directory the application was started from
	WEB_APP_URL       string = "internal_cybedefend_app"   // WEB_APP_URL (string) returns the URL of the web application and is derived from the API_URL
	DETAIL_CACHE_TTL  string = "internal_detail_cache_ttl" // DETAIL_CACHE_TTL (int) seconds finding details are cached within one process, 0 disables the cache
)
