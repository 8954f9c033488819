package constants

const CYBEDEFEND_DEFAULT_API_URL = "https://api-us.cybedefend.com"
const CYBEDEFEND_API_KEY_HEADER = "X-API-Key"
const CYBEDEFEND_REQUEST_ID_HEADER = "X-Request-Id"
const CYBEDEFEND_PRODUCT_NAME = "cybedefend"
const CYBEDEFEND_PROJECT_CONFIG_FILE = ".cybedefend.yaml"
const CYBEDEFEND_IGNORE_FILE = ".cybedefendignore"
const CYBEDEFEND_DEFAULT_TIMEOUT_SECS = 30
const CYBEDEFEND_DEFAULT_UPLOAD_TIMEOUT_SECS = 180
const CYBEDEFEND_DEFAULT_POLL_INTERVAL_MS = 5000
const CYBEDEFEND_DEFAULT_POLL_MAX_ATTEMPTS = 60
const CYBEDEFEND_DEFAULT_RESULTS_PAGE_SIZE = 100
