package progress

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/mocks"
)

func TestBeginProgress(t *testing.T) {
	channel := make(chan ProgressParams, 2)
	progress := NewTestTracker(channel)

	progress.BeginWithMessage("title", "message")

	assert.Equal(
		t,
		ProgressParams{
			Token: "token",
			Value: WorkDoneProgressBegin{
				WorkDoneProgressKind: WorkDoneProgressKind{Kind: "begin"},
				Title:                "title",
				Message:              "message",
				Percentage:           0,
			},
		},
		<-channel,
	)
}

func TestReportProgress(t *testing.T) {
	channel := make(chan ProgressParams, 2)
	progress := NewTestTracker(channel)

	progress.Report(10, "archiving")

	assert.Equal(t, ProgressParams{
		Token: "token",
		Value: WorkDoneProgressReport{
			WorkDoneProgressKind: WorkDoneProgressKind{Kind: "report"},
			Message:              "archiving",
			Percentage:           10,
		},
	}, <-channel)
}

func TestReportProgress_IsClamped(t *testing.T) {
	channel := make(chan ProgressParams, 10)
	progress := NewTestTracker(channel)

	progress.Set(90, "")
	<-channel

	// 50/60 per poll attempt on top of fixed stage increments overshoots 100
	for i := 0; i < 3; i++ {
		progress.Report(50.0/60.0*20, "polling")
		<-channel
	}
	assert.Equal(t, 100.0, progress.Percentage())

	progress.Set(-5, "")
	report, ok := (<-channel).Value.(WorkDoneProgressReport)
	require.True(t, ok)
	assert.Equal(t, 0.0, report.Percentage)
}

func TestEndProgress(t *testing.T) {
	channel := make(chan ProgressParams, 2)
	progress := NewTestTracker(channel)

	progress.End("end message")

	assert.Equal(t, ProgressParams{
		Token: "token",
		Value: WorkDoneProgressEnd{
			WorkDoneProgressKind: WorkDoneProgressKind{Kind: "end"},
			Message:              "end message",
		},
	}, <-channel)
}

func TestEndProgressTwice(t *testing.T) {
	channel := make(chan ProgressParams, 4)
	progress := NewTestTracker(channel)

	progress.End("first")
	progress.End("second")
	progress.Report(10, "ignored")

	assert.Len(t, channel, 1)
}

func TestNewTracker_UsesUniqueTokens(t *testing.T) {
	assert.NotEqual(t, NewTracker(nil).token, NewTracker(nil).token)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1))
	assert.Equal(t, 42.5, Clamp(42.5))
	assert.Equal(t, 100.0, Clamp(130))
}

func TestBarTracker(t *testing.T) {
	ctrl := gomock.NewController(t)
	bar := mocks.NewMockProgressBar(ctrl)

	gomock.InOrder(
		bar.EXPECT().SetTitle("Scanning"),
		bar.EXPECT().UpdateProgress(0.0).Return(nil),
		bar.EXPECT().SetTitle("Scanning: Uploading archive"),
		bar.EXPECT().UpdateProgress(0.3).Return(nil),
		bar.EXPECT().UpdateProgress(1.0).Return(nil),
		bar.EXPECT().Clear().Return(nil).Times(1),
	)

	tracker := NewBarTracker(bar)
	tracker.Begin("Scanning")
	tracker.Set(30, "Uploading archive")
	tracker.Report(200, "")
	tracker.End("done")
	tracker.End("done")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Begin("x")
		Discard.Report(1, "x")
		Discard.Set(1, "x")
		Discard.End("x")
	})
}

func TestMulti(t *testing.T) {
	first := make(chan ProgressParams, 4)
	second := make(chan ProgressParams, 4)

	tracker := Multi(NewTestTracker(first), NewTestTracker(second))
	tracker.Begin("Scanning")
	tracker.Set(40, "Uploading archive")
	tracker.Report(10, "")
	tracker.End("done")

	for _, channel := range []chan ProgressParams{first, second} {
		require.Len(t, channel, 4)
		<-channel
		<-channel
		report, ok := (<-channel).Value.(WorkDoneProgressReport)
		require.True(t, ok)
		assert.Equal(t, 50.0, report.Percentage)
	}
}
