package localworkflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

func Test_Init_RegistersAllWorkflows(t *testing.T) {
	engine := workflow.NewWorkFlowEngine(configuration.NewInMemory())
	engine.AddExtensionInitializer(Init)
	require.NoError(t, engine.Init())

	expected := []workflow.Identifier{
		WORKFLOWID_SCAN, WORKFLOWID_RESULTS, WORKFLOWID_FINDING, WORKFLOWID_CHAT,
		WORKFLOWID_AUTH, WORKFLOWID_CONFIGURE, WORKFLOWID_OPEN, WORKFLOWID_OUTPUT_WORKFLOW,
	}
	for _, id := range expected {
		entry, ok := engine.GetWorkflow(id)
		require.True(t, ok, id.String())
		assert.NotNil(t, entry.GetConfigurationOptions())
	}

	output, ok := engine.GetWorkflow(WORKFLOWID_OUTPUT_WORKFLOW)
	require.True(t, ok)
	assert.False(t, output.IsVisible())

	scan, _ := engine.GetWorkflow(WORKFLOWID_SCAN)
	assert.True(t, scan.IsVisible())
}
