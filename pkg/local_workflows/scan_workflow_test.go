package localworkflows

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/content_type"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/json_schemas"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
)

func setupScanConfig(t *testing.T) (configuration.Configuration, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o600))

	config := configuration.NewInMemory()
	config.Set(configuration.INPUT_DIRECTORY, dir)
	config.Set(configuration.TEMP_DIR_PATH, t.TempDir())
	config.Set(configuration.POLL_INTERVAL_MS, 1)
	config.Set(configuration.POLL_MAX_ATTEMPTS, 5)
	config.Set(configuration.RESULTS_PAGE_SIZE, 10)
	return config, dir
}

func Test_ScanWorkflow_Entrypoint(t *testing.T) {
	config, dir := setupScanConfig(t)
	config.Set(configuration.PROJECT_ID, testProjectId)

	client := cybedefend.NewFakeClient().
		WithPollsUntilDone(2).
		WithFindings(sastFinding("f-1", findings.SeverityCritical), sastFinding("f-2", findings.SeverityLow))
	w := &scanWorkflow{Workflow: Scan.Workflow, newClient: fakeClientFactory(client)}

	output, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	require.NoError(t, err)
	require.Len(t, output, 1)

	assert.Equal(t, content_type.SCAN_RESULTS, output[0].GetContentType())
	assert.Equal(t, dir, output[0].GetContentLocation())
	assert.Len(t, client.Uploads(), 1)

	document := unmarshalPayload[json_schemas.ResultsDocument](t, output[0])
	assert.Equal(t, testProjectId, document.ProjectID)
	assert.NotEmpty(t, document.ScanID)
	assert.Equal(t, string(cybedefend.ScanStatusCompleted), document.Status)
	require.Len(t, document.Results, 1)
	assert.Equal(t, findings.KindSAST, document.Results[0].Kind)
	assert.Equal(t, 2, document.Results[0].Total)

	state := document.State()
	assert.Equal(t, 2, state.Total(findings.KindSAST))
	assert.False(t, state.Busy())
}

func Test_ScanWorkflow_MissingProject(t *testing.T) {
	config, _ := setupScanConfig(t)
	client := cybedefend.NewFakeClient()
	w := &scanWorkflow{Workflow: Scan.Workflow, newClient: fakeClientFactory(client)}

	_, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)

	assert.ErrorIs(t, err, errorcatalog.ErrConfiguration)
	assert.Empty(t, client.Uploads())
}

func Test_ScanWorkflow_ServiceFailure(t *testing.T) {
	config, _ := setupScanConfig(t)
	config.Set(projectIdFlag, testProjectId)

	client := cybedefend.NewFakeClient().WithError(errorcatalog.FromStatusCode("start scan", 401, ""))
	w := &scanWorkflow{Workflow: Scan.Workflow, newClient: fakeClientFactory(client)}

	_, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errorcatalog.ErrAuthentication))
}
