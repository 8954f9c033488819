package localworkflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/json_schemas"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
)

func setupResultsWorkflow(client cybedefend.Client) (*resultsWorkflow, configuration.Configuration) {
	config := configuration.NewInMemory()
	config.Set(configuration.PROJECT_ID, testProjectId)
	config.Set(configuration.RESULTS_PAGE_SIZE, 10)
	return &resultsWorkflow{Workflow: Results.Workflow, newClient: fakeClientFactory(client)}, config
}

func Test_ResultsWorkflow_DefaultsToSast(t *testing.T) {
	client := cybedefend.NewFakeClient().WithFindings(sastFinding("f-1", findings.SeverityHigh), scaFinding("f-2"))
	w, config := setupResultsWorkflow(client)

	output, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	require.NoError(t, err)

	document := unmarshalPayload[json_schemas.ResultsDocument](t, output[0])
	require.Len(t, document.Results, 1)
	assert.Equal(t, findings.KindSAST, document.Results[0].Kind)
	assert.Equal(t, "f-1", document.Results[0].Findings[0].ID)
}

func Test_ResultsWorkflow_AllKinds(t *testing.T) {
	client := cybedefend.NewFakeClient().WithFindings(sastFinding("f-1", findings.SeverityHigh), scaFinding("f-2"))
	w, config := setupResultsWorkflow(client)
	config.Set(typeFlag, "all")

	output, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	require.NoError(t, err)

	document := unmarshalPayload[json_schemas.ResultsDocument](t, output[0])
	require.Len(t, document.Results, 3)
	for i, kind := range findings.Kinds {
		assert.Equal(t, kind, document.Results[i].Kind)
	}
	assert.Equal(t, 1, document.Results[0].Total)
	assert.Equal(t, 0, document.Results[1].Total)
	assert.Equal(t, "f-2", document.Results[2].Findings[0].ID)
}

func Test_ResultsWorkflow_SeverityAndPaging(t *testing.T) {
	client := cybedefend.NewFakeClient().WithFindings(
		sastFinding("f-1", findings.SeverityHigh),
		sastFinding("f-2", findings.SeverityLow),
		sastFinding("f-3", findings.SeverityHigh),
	)
	w, config := setupResultsWorkflow(client)
	config.Set("severity", "high, critical")
	config.Set("page-size", 1)
	config.Set("page", 2)

	output, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	require.NoError(t, err)

	document := unmarshalPayload[json_schemas.ResultsDocument](t, output[0])
	require.Len(t, document.Results, 1)
	result := document.Results[0]
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "f-3", result.Findings[0].ID)
}

func Test_ResultsWorkflow_InvalidFlags(t *testing.T) {
	testCases := map[string]struct {
		key   string
		value any
	}{
		"severity": {key: "severity", value: "urgent"},
		"type":     {key: typeFlag, value: "dast"},
		"page":     {key: "page", value: -1},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			w, config := setupResultsWorkflow(cybedefend.NewFakeClient())
			config.Set(tc.key, tc.value)

			_, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
			assert.ErrorIs(t, err, errorcatalog.ErrConfiguration)
		})
	}
}

func Test_ResultsWorkflow_FirstFailureIsReturned(t *testing.T) {
	client := cybedefend.NewFakeClient().WithError(errorcatalog.FromStatusCode("fetch results", 403, ""))
	w, config := setupResultsWorkflow(client)
	config.Set(typeFlag, "all")

	_, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	assert.ErrorIs(t, err, errorcatalog.ErrAuthorization)
}

func Test_ParseSeverities(t *testing.T) {
	severities, err := parseSeverities("")
	require.NoError(t, err)
	assert.Empty(t, severities)

	severities, err = parseSeverities("critical,,Info")
	require.NoError(t, err)
	assert.Equal(t, []findings.Severity{findings.SeverityCritical, findings.SeverityInfo}, severities)
}
