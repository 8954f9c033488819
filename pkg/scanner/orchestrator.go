// Package scanner runs the scan lifecycle: archive the project, upload it, wait for the scan to
// finish and fetch its results.
package scanner

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/archive"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/progress"
)

type Stage string

const (
	StageIdle            Stage = "Idle"
	StageArchiving       Stage = "Archiving"
	StageUploading       Stage = "Uploading"
	StagePolling         Stage = "Polling"
	StageFetchingResults Stage = "FetchingResults"
	StageDone            Stage = "Done"
	StageCancelled       Stage = "Cancelled"
	StageFailed          Stage = "Failed"
)

// IsTerminal reports whether no further transition follows.
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageCancelled || s == StageFailed
}

// progress totals reached at the end of each stage
const (
	progressArchived      = 10
	progressUploaded      = 30
	progressPollingBudget = 50
	progressFetched       = 90
	progressDone          = 100
)

const opScan = "scan"

var ErrNoScanIdentifier = errors.New("scan initiation produced no identifier")

type ScanRequest struct {
	ProjectID string
	Directory string
}

type ScanResult struct {
	Handle  cybedefend.ScanHandle
	Status  cybedefend.ScanStatus
	Results *cybedefend.ResultsPage
}

// StageObserver is called for every transition. err is set for StageFailed and StageCancelled.
type StageObserver func(stage Stage, err error)

// ScanObserver receives the handle once the service accepted the upload, before polling starts.
type ScanObserver func(handle cybedefend.ScanHandle)

type OrchestratorOption func(*Orchestrator)

func WithStageObserver(observer StageObserver) OrchestratorOption {
	return func(o *Orchestrator) {
		o.observer = observer
	}
}

func WithScanObserver(observer ScanObserver) OrchestratorOption {
	return func(o *Orchestrator) {
		o.scanObserver = observer
	}
}

func WithPollerConfig(cfg PollerConfig) OrchestratorOption {
	return func(o *Orchestrator) {
		o.pollerConfig = cfg
	}
}

func WithResultsPageSize(pageSize int) OrchestratorOption {
	return func(o *Orchestrator) {
		if pageSize > 0 {
			o.resultsPageSize = pageSize
		}
	}
}

type Orchestrator struct {
	archiver        archive.Archiver
	client          cybedefend.Client
	logger          *zerolog.Logger
	observer        StageObserver
	scanObserver    ScanObserver
	pollerConfig    PollerConfig
	resultsPageSize int
	removeFile      func(string) error
}

func NewOrchestrator(archiver archive.Archiver, client cybedefend.Client, logger *zerolog.Logger, opts ...OrchestratorOption) *Orchestrator {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	o := &Orchestrator{
		archiver:        archiver,
		client:          client,
		logger:          logger,
		observer:        func(Stage, error) {},
		scanObserver:    func(cybedefend.ScanHandle) {},
		pollerConfig:    DefaultPollerConfig(),
		resultsPageSize: constants.CYBEDEFEND_DEFAULT_RESULTS_PAGE_SIZE,
		removeFile:      os.Remove,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.pollerConfig.ProgressBudget = progressPollingBudget
	return o
}

// scanRun is the state of a single invocation of Run.
type scanRun struct {
	*Orchestrator
	stage Stage
}

func (r *scanRun) enter(stage Stage, err error) {
	r.stage = stage
	r.logger.Debug().Str("stage", string(stage)).Msg("Scan stage changed")
	r.observer(stage, err)
}

// Run executes one scan. Stages run strictly in sequence and ctx is checked between them. The
// temporary archive is removed on every exit path.
func (o *Orchestrator) Run(ctx context.Context, request ScanRequest, tracker progress.Tracker) (result *ScanResult, err error) {
	if tracker == nil {
		tracker = progress.Discard
	}
	run := &scanRun{Orchestrator: o, stage: StageIdle}
	run.observer(StageIdle, nil)
	tracker.Begin("Scanning " + request.Directory)

	var archivePath string
	defer func() {
		run.cleanup(archivePath)
		if err != nil {
			err = run.fail(err)
			tracker.End(err.Error())
			return
		}
		tracker.Set(progressDone, "")
		run.enter(StageDone, nil)
		tracker.End("Scan completed")
	}()

	if len(request.ProjectID) == 0 {
		return nil, errorcatalog.NewConfigurationError(opScan, "project id is missing, run `cybedefend configure --project-id <id>`")
	}

	run.enter(StageArchiving, nil)
	archivePath, err = o.archiver.Archive(ctx, request.Directory)
	if err != nil {
		return nil, err
	}
	tracker.Set(progressArchived, "project archived")
	if err = checkCancelled(ctx); err != nil {
		return nil, err
	}

	run.enter(StageUploading, nil)
	handle, err := o.client.StartScan(ctx, request.ProjectID, archivePath)
	if err != nil {
		return nil, err
	}
	if len(handle.ScanID) == 0 {
		return nil, errorcatalog.NewUnexpectedResponseError(opScan, ErrNoScanIdentifier.Error(), ErrNoScanIdentifier)
	}
	o.logger.Info().Str("scanId", handle.ScanID).Str("projectId", handle.ProjectID).Msg("Scan started")
	o.scanObserver(handle)
	tracker.Set(progressUploaded, "archive uploaded")
	if err = checkCancelled(ctx); err != nil {
		return nil, err
	}

	run.enter(StagePolling, nil)
	status, err := NewPoller(o.client, o.logger, o.pollerConfig).Poll(ctx, handle, tracker)
	if err != nil {
		return nil, err
	}
	if status != cybedefend.ScanStatusCompleted {
		return nil, errorcatalog.NewUnexpectedResponseError(opScan, "scan finished with status "+string(status), nil)
	}
	if err = checkCancelled(ctx); err != nil {
		return nil, err
	}

	run.enter(StageFetchingResults, nil)
	page, err := o.client.ListResults(ctx, cybedefend.ResultsQuery{
		ProjectID: handle.ProjectID,
		Kind:      findings.KindSAST,
		Page:      1,
		PageSize:  o.resultsPageSize,
	})
	if err != nil {
		return nil, err
	}
	tracker.Set(progressFetched, "results fetched")

	return &ScanResult{Handle: handle, Status: status, Results: page}, nil
}

// fail moves the run into StageCancelled or StageFailed.
func (r *scanRun) fail(err error) error {
	failedIn := r.stage

	if errorcatalog.IsCancelled(err) {
		r.logger.Info().Str("stage", string(failedIn)).Msg("Scan cancelled")
		r.enter(StageCancelled, err)
		return err
	}

	r.logger.Error().Err(err).Str("stage", string(failedIn)).Msg("Scan failed")
	r.enter(StageFailed, err)
	return err
}

// cleanup removes the archive, a failure is logged only.
func (r *scanRun) cleanup(archivePath string) {
	if len(archivePath) == 0 {
		return
	}
	if err := r.removeFile(archivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Warn().Err(err).Str("path", archivePath).Msg("Failed to remove scan archive")
		return
	}
	r.logger.Debug().Str("path", archivePath).Msg("Removed scan archive")
}

func checkCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errorcatalog.Label(opScan, err)
	}
	return nil
}
