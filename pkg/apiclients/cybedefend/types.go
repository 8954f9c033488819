package cybedefend

import (
	"strings"
	"time"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
)

// ScanHandle identifies one scan attempt. It is only valid for that attempt.
type ScanHandle struct {
	ScanID    string
	ProjectID string
}

type ScanStatus string

const (
	ScanStatusQueued    ScanStatus = "QUEUED"
	ScanStatusRunning   ScanStatus = "RUNNING"
	ScanStatusCompleted ScanStatus = "COMPLETED"
	ScanStatusFailed    ScanStatus = "FAILED"
	ScanStatusUnknown   ScanStatus = "UNKNOWN"
)

// ParseScanStatus upper-cases the reported state. Unrecognised states are kept as they are.
func ParseScanStatus(state string) ScanStatus {
	state = strings.ToUpper(strings.TrimSpace(state))
	if len(state) == 0 {
		return ScanStatusUnknown
	}
	return ScanStatus(state)
}

// IsTerminal reports whether no further transition is expected.
func (s ScanStatus) IsTerminal() bool {
	return s == ScanStatusCompleted || s == ScanStatusFailed
}

type ResultsQuery struct {
	ProjectID  string
	Kind       findings.Kind
	Page       int
	PageSize   int
	Severities []findings.Severity
}

type ResultsPage struct {
	Kind       findings.Kind
	Findings   []findings.Finding
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

type StartConversationRequest struct {
	ProjectID string
	// FindingID and Kind are set for a conversation about a single finding.
	FindingID string
	Kind      findings.Kind
}

type ContinueConversationRequest struct {
	ProjectID      string
	ConversationID string
	Message        string
}

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type Conversation struct {
	ConversationID string
	Messages       []Message
}

// wire formats

type startScanResponse struct {
	Success *bool  `json:"success"`
	ScanId  string `json:"scanId"`
	Id      string `json:"id"`
	Message string `json:"message"`
}

type scanStatusResponse struct {
	State    *string `json:"state"`
	Progress *int    `json:"progress,omitempty"`
}

type resultsResponse struct {
	Vulnerabilities []vulnerabilityEntry `json:"vulnerabilities"`
	Page            int                  `json:"page"`
	Limit           int                  `json:"limit"`
	Total           int                  `json:"total"`
	TotalPages      int                  `json:"totalPages"`
}

type vulnerabilityEntry struct {
	Id                  string              `json:"id"`
	CurrentState        string              `json:"currentState"`
	CurrentSeverity     string              `json:"currentSeverity"`
	Language            string              `json:"language"`
	Path                string              `json:"path"`
	VulnerableStartLine int                 `json:"vulnerableStartLine"`
	VulnerableEndLine   int                 `json:"vulnerableEndLine"`
	DataFlowItems       []dataFlowItem      `json:"dataFlowItems"`
	ScaDetectedPackage  *scaDetectedPackage `json:"scaDetectedPackage"`
	Vulnerability       vulnerabilityInfo   `json:"vulnerability"`
}

type dataFlowItem struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Code string `json:"code"`
}

type scaDetectedPackage struct {
	PackageName    string `json:"packageName"`
	PackageVersion string `json:"packageVersion"`
	FileName       string `json:"fileName"`
}

type vulnerabilityInfo struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	HowToPrevent      string   `json:"howToPrevent"`
	Cwe               []string `json:"cwe"`
	VulnerabilityType string   `json:"vulnerabilityType"`
}

type startConversationBody struct {
	IsVulnerabilityConversation bool   `json:"isVulnerabilityConversation"`
	VulnerabilityId             string `json:"vulnerabilityId,omitempty"`
	VulnerabilityType           string `json:"vulnerabilityType,omitempty"`
	ProjectId                   string `json:"projectId"`
}

type continueConversationBody struct {
	Message string `json:"message"`
}

type conversationResponse struct {
	ConversationId any       `json:"conversationId"`
	Messages       []Message `json:"messages"`
}

type errorResponse struct {
	Message any    `json:"message"`
	Error   string `json:"error"`
}
