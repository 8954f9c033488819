package localworkflows

import (
	"github.com/pkg/browser"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/api"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/content_type"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

type openFlags struct {
	ProjectId workflow.Flag[string]
}

func (f openFlags) GetFlags() workflow.Flags {
	return workflow.Flags{f.ProjectId}
}

var (
	Open = &openWorkflow{
		Workflow: &workflow.Workflow{
			Name:     "open",
			TypeName: "url",
			Visible:  true,
			Flags:    openFlags{ProjectId: projectIdFlagDef},
		},
		openBrowser: browser.OpenURL,
	}

	WORKFLOWID_OPEN workflow.Identifier = Open.Identifier()
)

func InitOpenWorkflow(engine workflow.Engine) error {
	return workflow.Register(Open, engine)
}

type openWorkflow struct {
	*workflow.Workflow
	openBrowser func(url string) error
}

// Entrypoint opens the project page of the web application. The url is returned as well, for
// systems without a browser.
func (w *openWorkflow) Entrypoint(invocation workflow.InvocationContext, _ []workflow.Data) ([]workflow.Data, error) {
	config := invocation.GetConfiguration()
	logger := w.Logger(invocation)

	projectId, err := resolveProjectId(config, config.GetString(configuration.WORKING_DIRECTORY), logger)
	if err != nil {
		return nil, err
	}

	appUrl := config.GetString(configuration.WEB_APP_URL)
	if len(appUrl) == 0 {
		return nil, errorcatalog.NewConfigurationError("", "the web application url could not be determined from the API URL")
	}

	url := api.ProjectUrl(appUrl, projectId)
	if err = w.openBrowser(url); err != nil {
		logger.Warn().Err(err).Msg("Failed to open browser")
	}

	return []workflow.Data{workflow.NewData(w.TypeIdentifier(), content_type.TEXT_PLAIN, "Project page: "+url)}, nil
}
