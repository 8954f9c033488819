package localworkflows

import (
	"fmt"
	"strings"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/api"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/content_type"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

type configureFlags struct {
	ProjectId workflow.Flag[string]
	ApiUrl    workflow.Flag[string]
}

func (f configureFlags) GetFlags() workflow.Flags {
	return workflow.Flags{f.ProjectId, f.ApiUrl}
}

var (
	Configure = &configureWorkflow{
		Workflow: &workflow.Workflow{
			Name:     "configure",
			TypeName: "configuration",
			Visible:  true,
			Flags: configureFlags{
				ProjectId: workflow.Flag[string]{Name: projectIdFlag, Usage: "Project used by default"},
				ApiUrl:    workflow.Flag[string]{Name: "api-url", Usage: "URL of the CybeDefend API"},
			},
		},
	}

	WORKFLOWID_CONFIGURE workflow.Identifier = Configure.Identifier()
)

func InitConfigureWorkflow(engine workflow.Engine) error {
	return workflow.Register(Configure, engine)
}

type configureWorkflow struct {
	*workflow.Workflow
}

// Entrypoint persists the given settings in the user configuration file. Without flags the
// current settings are shown.
func (w *configureWorkflow) Entrypoint(invocation workflow.InvocationContext, _ []workflow.Data) ([]workflow.Data, error) {
	config := invocation.GetConfiguration()
	logger := w.Logger(invocation)
	flags := w.Workflow.Flags.(configureFlags)

	config.PersistInStorage(configuration.PROJECT_ID)
	config.PersistInStorage(configuration.API_URL)

	var changed []string

	if projectId := strings.TrimSpace(flags.ProjectId.Value(config)); len(projectId) > 0 {
		config.Set(configuration.PROJECT_ID, projectId)
		changed = append(changed, "project")
	}

	if apiUrl := strings.TrimSpace(flags.ApiUrl.Value(config)); len(apiUrl) > 0 {
		canonical, err := api.GetCanonicalApiUrl(apiUrl)
		if err != nil || !strings.HasPrefix(canonical, "http") {
			return nil, errorcatalog.NewConfigurationError("", fmt.Sprintf("invalid --api-url %q", apiUrl))
		}
		config.Set(configuration.API_URL, canonical)
		changed = append(changed, "API URL")
	}

	logger.Debug().Strs("changed", changed).Msg("Configuration updated")

	message := describeConfiguration(config)
	if len(changed) > 0 {
		message = fmt.Sprintf("Saved %s.\n%s", strings.Join(changed, " and "), message)
	}
	return []workflow.Data{workflow.NewData(w.TypeIdentifier(), content_type.TEXT_PLAIN, message)}, nil
}

func describeConfiguration(config configuration.Configuration) string {
	projectId := config.GetString(configuration.PROJECT_ID)
	if len(projectId) == 0 {
		projectId = "(not set)"
	}

	apiKey := "(not set)"
	if len(config.GetString(configuration.API_KEY)) > 0 {
		apiKey = "configured"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "  Project:  %s\n", projectId)
	fmt.Fprintf(&sb, "  API URL:  %s\n", config.GetString(configuration.API_URL))
	fmt.Fprintf(&sb, "  Web app:  %s\n", config.GetString(configuration.WEB_APP_URL))
	fmt.Fprintf(&sb, "  API key:  %s", apiKey)
	return sb.String()
}
