package cybedefend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
)

func Test_FakeClient_ScanLifecycle(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "scan.zip")
	require.NoError(t, os.WriteFile(archive, []byte("zip"), 0o600))
	client := NewFakeClient().WithPollsUntilDone(3)

	handle, err := client.StartScan(context.Background(), "p-1", archive)
	require.NoError(t, err)
	assert.Equal(t, []string{archive}, client.Uploads())

	var states []ScanStatus
	for range 3 {
		status, statusErr := client.GetScanStatus(context.Background(), "p-1", handle.ScanID)
		require.NoError(t, statusErr)
		states = append(states, status)
	}
	assert.Equal(t, []ScanStatus{ScanStatusRunning, ScanStatusRunning, ScanStatusCompleted}, states)

	_, err = client.GetScanStatus(context.Background(), "p-1", "unknown")
	assert.ErrorIs(t, err, errorcatalog.ErrNotFound)
}

func Test_FakeClient_ListResultsPaginatesAndFilters(t *testing.T) {
	client := NewFakeClient().WithFindings(
		findings.Finding{Kind: findings.KindSCA, ID: "a", Severity: findings.SeverityHigh, Package: &findings.Package{Name: "lodash"}},
		findings.Finding{Kind: findings.KindSCA, ID: "b", Severity: findings.SeverityLow, Package: &findings.Package{Name: "left-pad"}},
		findings.Finding{Kind: findings.KindSCA, ID: "c", Severity: findings.SeverityHigh, Package: &findings.Package{Name: "minimist"}},
	)

	page, err := client.ListResults(context.Background(), ResultsQuery{Kind: findings.KindSCA, Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Findings, 1)
	assert.Equal(t, "c", page.Findings[0].ID)

	page, err = client.ListResults(context.Background(), ResultsQuery{Kind: findings.KindSCA, Severities: []findings.Severity{findings.SeverityLow}})
	require.NoError(t, err)
	require.Len(t, page.Findings, 1)
	assert.Equal(t, "b", page.Findings[0].ID)

	detail, err := client.GetFindingDetail(context.Background(), "p-1", "a", findings.KindSCA)
	require.NoError(t, err)
	assert.Equal(t, "lodash", detail.Package.Name)
}

func Test_FakeClient_Conversation(t *testing.T) {
	client := NewFakeClient()

	conversation, err := client.StartConversation(context.Background(), StartConversationRequest{ProjectID: "p-1"})
	require.NoError(t, err)
	require.NotEmpty(t, conversation.ConversationID)

	reply, err := client.ContinueConversation(context.Background(), ContinueConversationRequest{
		ProjectID:      "p-1",
		ConversationID: conversation.ConversationID,
		Message:        "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, []Message{{Role: "user", Content: "hello"}, {Role: "assistant", Content: "You said: hello"}}, reply.Messages)
}

func Test_FakeClient_ErrorsAndCancellation(t *testing.T) {
	client := NewFakeClient().WithError(errorcatalog.FromStatusCode("any", 401, ""))
	_, err := client.GetScanStatus(context.Background(), "p-1", "s-1")
	assert.ErrorIs(t, err, errorcatalog.ErrAuthentication)
	assert.ErrorContains(t, err, "fetch scan status failed")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFakeClient().ListResults(ctx, ResultsQuery{Kind: findings.KindSAST})
	assert.True(t, errorcatalog.IsCancelled(err))
}
