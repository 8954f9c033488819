package viewstate

import (
	"context"
	"maps"
	"slices"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/progress"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/scanner"
)

type ResultsState struct {
	ProjectID  string
	ScanID     string
	Stage      scanner.Stage
	Progress   float64
	StatusText string
	// Error is shown instead of results after a failed scan.
	Error string
	// Notice is informational, e.g. after a cancelled scan.
	Notice   string
	findings map[findings.Kind][]findings.Finding
	totals   map[findings.Kind]int
}

func NewResultsState(projectID string) ResultsState {
	return ResultsState{ProjectID: projectID, Stage: scanner.StageIdle}
}

// Findings returns the findings of kind. The slice must not be modified.
func (s ResultsState) Findings(kind findings.Kind) []findings.Finding {
	return s.findings[kind]
}

// Total is the number of findings of kind the service reported, which can exceed the number of
// loaded findings.
func (s ResultsState) Total(kind findings.Kind) int {
	return s.totals[kind]
}

func (s ResultsState) Loaded() []findings.Kind {
	var kinds []findings.Kind
	for _, kind := range findings.Kinds {
		if _, ok := s.findings[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func (s ResultsState) Busy() bool {
	return s.Stage != scanner.StageIdle && !s.Stage.IsTerminal()
}

type ResultsAction interface {
	reduceResults(ResultsState) ResultsState
}

// ScanStarted resets the state for a new scan of ProjectID. Previous results stay visible until
// they are replaced.
type ScanStarted struct {
	ProjectID string
}

type StageChanged struct {
	Stage scanner.Stage
}

type ScanIdentified struct {
	ScanID string
}

type ProgressReported struct {
	Percentage float64
	Message    string
}

// ResultsLoaded replaces the findings of the page's kind.
type ResultsLoaded struct {
	Page *cybedefend.ResultsPage
}

// ScanFailed shows Err and clears all results.
type ScanFailed struct {
	Err error
}

type ScanCancelled struct{}

func (a ScanStarted) reduceResults(s ResultsState) ResultsState {
	s.ProjectID = a.ProjectID
	s.ScanID = ""
	s.Stage = scanner.StageIdle
	s.Progress = 0
	s.StatusText = "Starting scan"
	s.Error = ""
	s.Notice = ""
	return s
}

func (a StageChanged) reduceResults(s ResultsState) ResultsState {
	s.Stage = a.Stage
	s.StatusText = stageText(a.Stage)
	return s
}

func (a ScanIdentified) reduceResults(s ResultsState) ResultsState {
	s.ScanID = a.ScanID
	return s
}

func (a ProgressReported) reduceResults(s ResultsState) ResultsState {
	s.Progress = progress.Clamp(a.Percentage)
	if len(a.Message) > 0 {
		s.StatusText = a.Message
	}
	return s
}

func (a ResultsLoaded) reduceResults(s ResultsState) ResultsState {
	if a.Page == nil {
		return s
	}
	s.findings = maps.Clone(s.findings)
	if s.findings == nil {
		s.findings = map[findings.Kind][]findings.Finding{}
	}
	s.totals = maps.Clone(s.totals)
	if s.totals == nil {
		s.totals = map[findings.Kind]int{}
	}
	s.findings[a.Page.Kind] = slices.Clip(slices.Clone(a.Page.Findings))
	s.totals[a.Page.Kind] = max(a.Page.Total, len(a.Page.Findings))
	s.Error = ""
	return s
}

func (a ScanFailed) reduceResults(s ResultsState) ResultsState {
	s.Stage = scanner.StageFailed
	s.findings = nil
	s.totals = nil
	s.Notice = ""
	s.StatusText = stageText(scanner.StageFailed)
	if a.Err != nil {
		s.Error = a.Err.Error()
	}
	return s
}

func (ScanCancelled) reduceResults(s ResultsState) ResultsState {
	s.Stage = scanner.StageCancelled
	s.StatusText = stageText(scanner.StageCancelled)
	s.Notice = "Scan cancelled"
	return s
}

func ReduceResults(state ResultsState, action ResultsAction) ResultsState {
	if action == nil {
		return state
	}
	return action.reduceResults(state)
}

func NewResultsStore(projectID string) *Store[ResultsState, ResultsAction] {
	return NewStore[ResultsState, ResultsAction](NewResultsState(projectID), ReduceResults)
}

func stageText(stage scanner.Stage) string {
	switch stage {
	case scanner.StageArchiving:
		return "Archiving project"
	case scanner.StageUploading:
		return "Uploading archive"
	case scanner.StagePolling:
		return "Waiting for scan results"
	case scanner.StageFetchingResults:
		return "Fetching results"
	case scanner.StageDone:
		return "Scan completed"
	case scanner.StageCancelled:
		return "Scan cancelled"
	case scanner.StageFailed:
		return "Scan failed"
	}
	return "Ready"
}

// StageObserver feeds orchestrator transitions into store.
func StageObserver(store *Store[ResultsState, ResultsAction]) scanner.StageObserver {
	return func(stage scanner.Stage, err error) {
		switch stage {
		case scanner.StageFailed:
			store.Dispatch(ScanFailed{Err: err})
		case scanner.StageCancelled:
			store.Dispatch(ScanCancelled{})
		default:
			store.Dispatch(StageChanged{Stage: stage})
		}
	}
}

// ScanObserver records the scan id in store as soon as the scan was started.
func ScanObserver(store *Store[ResultsState, ResultsAction]) scanner.ScanObserver {
	return func(handle cybedefend.ScanHandle) {
		store.Dispatch(ScanIdentified{ScanID: handle.ScanID})
	}
}

// ForwardProgress dispatches the updates of a progress.ChannelTracker until channel is closed or
// ctx is done.
func ForwardProgress(ctx context.Context, store *Store[ResultsState, ResultsAction], channel <-chan progress.ProgressParams) {
	for {
		select {
		case <-ctx.Done():
			return
		case params, ok := <-channel:
			if !ok {
				return
			}
			switch value := params.Value.(type) {
			case progress.WorkDoneProgressBegin:
				store.Dispatch(ProgressReported{Percentage: value.Percentage, Message: value.Message})
			case progress.WorkDoneProgressReport:
				store.Dispatch(ProgressReported{Percentage: value.Percentage, Message: value.Message})
			}
		}
	}
}
