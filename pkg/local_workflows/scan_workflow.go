package localworkflows

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/utils"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/archive"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/content_type"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/json_schemas"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/progress"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/scanner"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/viewstate"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

type scanFlags struct {
	ProjectId workflow.Flag[string]
	Directory workflow.Flag[string]
}

func (f scanFlags) GetFlags() workflow.Flags {
	return workflow.Flags{f.ProjectId, f.Directory}
}

var (
	Scan = &scanWorkflow{
		Workflow: &workflow.Workflow{
			Name:     "scan",
			TypeName: "scanresult",
			Visible:  true,
			Flags: scanFlags{
				ProjectId: projectIdFlagDef,
				Directory: workflow.Flag[string]{
					Name:      configuration.INPUT_DIRECTORY,
					Shorthand: "d",
					Usage:     "Directory to scan, defaults to the root of the current git repository",
				},
			},
		},
		newClient: NewClient,
	}

	WORKFLOWID_SCAN workflow.Identifier = Scan.Identifier()
)

func InitScanWorkflow(engine workflow.Engine) error {
	return workflow.Register(Scan, engine)
}

type scanWorkflow struct {
	*workflow.Workflow
	newClient ClientFactory
}

// Entrypoint archives the project directory, uploads it, waits for the scan and returns the SAST
// results of the first page as a results document.
func (w *scanWorkflow) Entrypoint(invocation workflow.InvocationContext, _ []workflow.Data) ([]workflow.Data, error) {
	config := invocation.GetConfiguration()
	logger := w.Logger(invocation)
	ctx := invocation.Context()

	dir, err := resolveDirectory(config, logger)
	if err != nil {
		return nil, err
	}

	projectId, err := resolveProjectId(config, dir, logger)
	if err != nil {
		return nil, err
	}

	tempDir, err := utils.TempDirectory(logger, config.GetString(configuration.TEMP_DIR_PATH), constants.CYBEDEFEND_PRODUCT_NAME)
	if err != nil {
		return nil, errorcatalog.NewIOError("prepare temp directory", err)
	}

	store := viewstate.NewResultsStore(projectId)
	unsubscribe := store.Subscribe(logStageChanges(logger))
	defer unsubscribe()

	orchestrator := scanner.NewOrchestrator(
		archive.NewZipArchiver(logger, tempDir),
		w.newClient(invocation),
		logger,
		scanner.WithStageObserver(viewstate.StageObserver(store)),
		scanner.WithScanObserver(viewstate.ScanObserver(store)),
		scanner.WithPollerConfig(scanner.PollerConfig{
			Interval:    time.Duration(config.GetInt(configuration.POLL_INTERVAL_MS)) * time.Millisecond,
			MaxAttempts: config.GetInt(configuration.POLL_MAX_ATTEMPTS),
		}),
		scanner.WithResultsPageSize(config.GetInt(configuration.RESULTS_PAGE_SIZE)),
	)

	// the store is fed until the tracker has ended, even after ctx was cancelled
	channel := make(chan progress.ProgressParams, 16)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		viewstate.ForwardProgress(context.WithoutCancel(ctx), store, channel)
	}()

	tracker := progress.Multi(
		progress.NewBarTracker(invocation.GetUserInterface().NewProgressBar()),
		progress.NewTracker(channel),
	)

	store.Dispatch(viewstate.ScanStarted{ProjectID: projectId})
	result, err := orchestrator.Run(ctx, scanner.ScanRequest{ProjectID: projectId, Directory: dir}, tracker)
	close(channel)
	<-forwarded

	if err != nil {
		return nil, err
	}

	state := store.State()
	logger.Info().
		Str("scanId", state.ScanID).
		Float64("progress", state.Progress).
		Msg("Scan finished")

	document := json_schemas.NewResultsDocument(projectId, result.Handle.ScanID, string(result.Status), result.Results)
	data, err := newJsonData(w.TypeIdentifier(), content_type.SCAN_RESULTS, dir, document)
	if err != nil {
		return nil, err
	}
	return []workflow.Data{data}, nil
}

func logStageChanges(logger *zerolog.Logger) func(viewstate.ResultsState) {
	var mutex sync.Mutex
	var last scanner.Stage
	return func(state viewstate.ResultsState) {
		mutex.Lock()
		defer mutex.Unlock()
		if state.Stage == last {
			return
		}
		last = state.Stage
		logger.Debug().Str("stage", string(state.Stage)).Msg(state.StatusText)
	}
}
