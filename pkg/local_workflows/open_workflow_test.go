package localworkflows

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
)

func Test_OpenWorkflow_Entrypoint(t *testing.T) {
	var opened []string
	w := &openWorkflow{Workflow: Open.Workflow, openBrowser: func(url string) error {
		opened = append(opened, url)
		return nil
	}}

	config := configuration.NewInMemory()
	config.Set(configuration.PROJECT_ID, testProjectId)
	config.Set(configuration.WEB_APP_URL, "https://us.cybedefend.com/")

	output, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	require.NoError(t, err)

	expected := "https://us.cybedefend.com/project/" + testProjectId
	assert.Equal(t, []string{expected}, opened)
	assert.Equal(t, "Project page: "+expected, payloadString(t, output))
}

func Test_OpenWorkflow_BrowserFailureIsNotFatal(t *testing.T) {
	w := &openWorkflow{Workflow: Open.Workflow, openBrowser: func(string) error {
		return errors.New("no browser")
	}}

	config := configuration.NewInMemory()
	config.Set(configuration.PROJECT_ID, testProjectId)
	config.Set(configuration.WEB_APP_URL, "https://us.cybedefend.com")

	output, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	require.NoError(t, err)
	assert.Contains(t, payloadString(t, output), testProjectId)
}

func Test_OpenWorkflow_MissingAppUrl(t *testing.T) {
	w := &openWorkflow{Workflow: Open.Workflow, openBrowser: func(string) error {
		t.Fatal("browser must not be opened")
		return nil
	}}

	config := configuration.NewInMemory()
	config.Set(configuration.PROJECT_ID, testProjectId)

	_, err := w.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	assert.ErrorIs(t, err, errorcatalog.ErrConfiguration)
}
