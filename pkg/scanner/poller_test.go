package scanner

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/mocks"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/progress"
)

const (
	testProjectID = "p-1"
	testScanID    = "s-1"
)

var testHandle = cybedefend.ScanHandle{ScanID: testScanID, ProjectID: testProjectID}

func newTestPoller(client cybedefend.Client, maxAttempts int) *Poller {
	return NewPoller(client, nil, PollerConfig{
		Interval:       time.Millisecond,
		MaxAttempts:    maxAttempts,
		ProgressBudget: progressPollingBudget,
	})
}

func expectStatuses(client *mocks.MockClient, statuses ...cybedefend.ScanStatus) {
	calls := make([]*gomock.Call, 0, len(statuses))
	for _, status := range statuses {
		calls = append(calls, client.EXPECT().GetScanStatus(gomock.Any(), testProjectID, testScanID).Return(status, nil))
	}
	gomock.InOrder(calls...)
}

func Test_Poller_StopsAtCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	// no further queries are expected after COMPLETED
	expectStatuses(client, cybedefend.ScanStatusQueued, cybedefend.ScanStatusRunning, cybedefend.ScanStatusCompleted)

	status, err := newTestPoller(client, 10).Poll(context.Background(), testHandle, nil)

	require.NoError(t, err)
	assert.Equal(t, cybedefend.ScanStatusCompleted, status)
}

func Test_Poller_FailedIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	expectStatuses(client, cybedefend.ScanStatusRunning, cybedefend.ScanStatusFailed)

	status, err := newTestPoller(client, 10).Poll(context.Background(), testHandle, nil)

	require.NoError(t, err)
	assert.Equal(t, cybedefend.ScanStatusFailed, status)
}

func Test_Poller_TimesOutAfterMaxAttempts(t *testing.T) {
	const maxAttempts = 5
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetScanStatus(gomock.Any(), testProjectID, testScanID).Return(cybedefend.ScanStatusRunning, nil).Times(maxAttempts)
	progressChannel := make(chan progress.ProgressParams, 2*maxAttempts)
	tracker := progress.NewTestTracker(progressChannel)

	_, err := newTestPoller(client, maxAttempts).Poll(context.Background(), testHandle, tracker)

	assert.ErrorIs(t, err, errorcatalog.ErrTimeout)
	assert.ErrorContains(t, err, "did not finish after 5 status checks")
	assert.Len(t, progressChannel, maxAttempts)
	assert.InDelta(t, progressPollingBudget, tracker.Percentage(), 0.0001)
}

func Test_Poller_UnknownStatesAreNotTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	expectStatuses(client, cybedefend.ScanStatusUnknown, cybedefend.ScanStatus("ANALYSING"))

	_, err := newTestPoller(client, 2).Poll(context.Background(), testHandle, nil)

	assert.ErrorIs(t, err, errorcatalog.ErrTimeout)
}

func Test_Poller_FatalStatusCodesAbortImmediately(t *testing.T) {
	for _, statusCode := range []int{401, 403, 404} {
		t.Run(http.StatusText(statusCode), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			client.EXPECT().GetScanStatus(gomock.Any(), testProjectID, testScanID).
				Return(cybedefend.ScanStatusUnknown, errorcatalog.FromStatusCode("fetch scan status", statusCode, "")).
				Times(1)

			_, err := newTestPoller(client, 60).Poll(context.Background(), testHandle, nil)

			assert.Equal(t, statusCode, errorcatalog.StatusCode(err))
			assert.NotErrorIs(t, err, errorcatalog.ErrTimeout)
		})
	}
}

func Test_Poller_MissingApiKeyAbortsImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetScanStatus(gomock.Any(), testProjectID, testScanID).
		Return(cybedefend.ScanStatusUnknown, errorcatalog.NewConfigurationError("fetch scan status", "API key not configured")).
		Times(1)

	_, err := newTestPoller(client, 60).Poll(context.Background(), testHandle, nil)

	assert.ErrorIs(t, err, errorcatalog.ErrConfiguration)
}

func Test_Poller_TransientErrorsAreRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().GetScanStatus(gomock.Any(), testProjectID, testScanID).Return(cybedefend.ScanStatusUnknown, errorcatalog.FromStatusCode("fetch scan status", 503, "")),
		client.EXPECT().GetScanStatus(gomock.Any(), testProjectID, testScanID).Return(cybedefend.ScanStatusUnknown, errorcatalog.NewNetworkError("fetch scan status", "https://api-us.cybedefend.com", context.DeadlineExceeded)),
		client.EXPECT().GetScanStatus(gomock.Any(), testProjectID, testScanID).Return(cybedefend.ScanStatusCompleted, nil),
	)

	status, err := newTestPoller(client, 5).Poll(context.Background(), testHandle, nil)

	require.NoError(t, err)
	assert.Equal(t, cybedefend.ScanStatusCompleted, status)
}

func Test_Poller_CancelledBeforeFirstAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPoller(client, 5).Poll(ctx, testHandle, nil)

	assert.True(t, errorcatalog.IsCancelled(err))
}

func Test_Poller_CancelledWhileWaiting(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	client.EXPECT().GetScanStatus(gomock.Any(), testProjectID, testScanID).
		DoAndReturn(func(context.Context, string, string) (cybedefend.ScanStatus, error) {
			cancel()
			return cybedefend.ScanStatusRunning, nil
		}).
		Times(1)

	poller := NewPoller(client, nil, PollerConfig{Interval: time.Hour, MaxAttempts: 5})
	_, err := poller.Poll(ctx, testHandle, nil)

	assert.True(t, errorcatalog.IsCancelled(err))
}

func Test_NewPoller_Defaults(t *testing.T) {
	poller := NewPoller(nil, nil, PollerConfig{})

	assert.Equal(t, 5*time.Second, poller.cfg.Interval)
	assert.Equal(t, 60, poller.cfg.MaxAttempts)
}
