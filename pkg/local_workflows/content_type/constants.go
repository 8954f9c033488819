package content_type

const (
	SCAN_RESULTS   = "application/json; schema=cybedefend-results"
	FINDING_DETAIL = "application/json; schema=cybedefend-finding"
	CONVERSATION   = "application/json; schema=cybedefend-conversation"
	TEXT_PLAIN     = "text/plain"
)
