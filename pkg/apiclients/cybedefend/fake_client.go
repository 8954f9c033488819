package cybedefend

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
)

// FakeClient is an in-memory Client. Scans complete after a configurable number of status
// queries and report the findings that were added to it.
type FakeClient struct {
	mutex          sync.Mutex
	err            error
	findings       map[findings.Kind][]findings.Finding
	scans          map[string]int
	pollsUntilDone int
	conversations  map[string][]Message
	uploads        []string
}

var _ Client = (*FakeClient)(nil)

func NewFakeClient() *FakeClient {
	return &FakeClient{
		findings:       map[findings.Kind][]findings.Finding{},
		scans:          map[string]int{},
		pollsUntilDone: 1,
		conversations:  map[string][]Message{},
	}
}

// WithError configures the fake to fail every call with err.
func (f *FakeClient) WithError(err error) *FakeClient {
	f.err = err
	return f
}

// WithFindings adds findings reported after a scan completes.
func (f *FakeClient) WithFindings(list ...findings.Finding) *FakeClient {
	for _, finding := range list {
		f.findings[finding.Kind] = append(f.findings[finding.Kind], finding)
	}
	return f
}

// WithPollsUntilDone sets how many status queries a scan stays RUNNING before it is COMPLETED.
func (f *FakeClient) WithPollsUntilDone(polls int) *FakeClient {
	f.pollsUntilDone = polls
	return f
}

// Uploads returns the paths of all archives StartScan received.
func (f *FakeClient) Uploads() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]string(nil), f.uploads...)
}

func (f *FakeClient) StartScan(ctx context.Context, projectID string, archivePath string) (ScanHandle, error) {
	if err := f.check(ctx, opStartScan); err != nil {
		return ScanHandle{}, err
	}
	if _, err := os.Stat(archivePath); err != nil {
		return ScanHandle{}, errorcatalog.NewIOError(opStartScan, err)
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	scanID := uuid.NewString()
	f.scans[scanID] = 0
	f.uploads = append(f.uploads, archivePath)
	return ScanHandle{ScanID: scanID, ProjectID: projectID}, nil
}

func (f *FakeClient) GetScanStatus(ctx context.Context, _ string, scanID string) (ScanStatus, error) {
	if err := f.check(ctx, opGetScanStatus); err != nil {
		return ScanStatusUnknown, err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	polls, ok := f.scans[scanID]
	if !ok {
		return ScanStatusUnknown, errorcatalog.FromStatusCode(opGetScanStatus, 404, "scan "+scanID+" not found")
	}
	polls++
	f.scans[scanID] = polls
	if polls >= f.pollsUntilDone {
		return ScanStatusCompleted, nil
	}
	return ScanStatusRunning, nil
}

func (f *FakeClient) ListResults(ctx context.Context, query ResultsQuery) (*ResultsPage, error) {
	if err := f.check(ctx, opListResults); err != nil {
		return nil, err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	var selected []findings.Finding
	for _, finding := range f.findings[query.Kind] {
		if matchesSeverity(finding, query.Severities) {
			selected = append(selected, finding)
		}
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = len(selected) + 1
	}
	page := max(query.Page, 1)
	start := min((page-1)*pageSize, len(selected))
	end := min(start+pageSize, len(selected))

	return &ResultsPage{
		Kind:       query.Kind,
		Findings:   append([]findings.Finding{}, selected[start:end]...),
		Page:       page,
		PageSize:   pageSize,
		Total:      len(selected),
		TotalPages: (len(selected) + pageSize - 1) / pageSize,
	}, nil
}

func matchesSeverity(finding findings.Finding, severities []findings.Severity) bool {
	if len(severities) == 0 {
		return true
	}
	for _, severity := range severities {
		if severity == finding.Severity {
			return true
		}
	}
	return false
}

func (f *FakeClient) GetFindingDetail(ctx context.Context, _ string, findingID string, kind findings.Kind) (*findings.Finding, error) {
	if err := f.check(ctx, opGetFindingDetail); err != nil {
		return nil, err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	for _, finding := range f.findings[kind] {
		if finding.ID == findingID {
			return &finding, nil
		}
	}
	return nil, errorcatalog.FromStatusCode(opGetFindingDetail, 404, "")
}

func (f *FakeClient) StartConversation(ctx context.Context, request StartConversationRequest) (*Conversation, error) {
	if err := f.check(ctx, opStartConversation); err != nil {
		return nil, err
	}

	greeting := "How can I help you with the findings of this project?"
	if len(request.FindingID) > 0 {
		greeting = fmt.Sprintf("Let's talk about %s finding %s.", request.Kind.DisplayName(), request.FindingID)
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	conversationID := uuid.NewString()
	f.conversations[conversationID] = []Message{{Role: "assistant", Content: greeting}}
	return &Conversation{ConversationID: conversationID, Messages: f.conversations[conversationID]}, nil
}

func (f *FakeClient) ContinueConversation(ctx context.Context, request ContinueConversationRequest) (*Conversation, error) {
	if err := f.check(ctx, opContinueConversation); err != nil {
		return nil, err
	}
	if err := requireValue(opContinueConversation, "conversation id", request.ConversationID); err != nil {
		return nil, err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	if _, ok := f.conversations[request.ConversationID]; !ok {
		return nil, errorcatalog.FromStatusCode(opContinueConversation, 404, "")
	}
	f.conversations[request.ConversationID] = append(f.conversations[request.ConversationID],
		Message{Role: "user", Content: request.Message},
		Message{Role: "assistant", Content: "You said: " + request.Message},
	)
	messages := f.conversations[request.ConversationID]
	return &Conversation{ConversationID: request.ConversationID, Messages: messages[len(messages)-2:]}, nil
}

func (f *FakeClient) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return errorcatalog.Label(op, err)
	}
	if f.err != nil {
		return errorcatalog.Label(op, f.err)
	}
	return nil
}
