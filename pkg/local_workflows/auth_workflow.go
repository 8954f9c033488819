package localworkflows

import (
	"fmt"
	"strings"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/auth"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/content_type"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

const (
	authenticatedMessage = "API key stored, you are ready to scan."
	removedMessage       = "API key removed."
)

type authFlags struct {
	ApiKey workflow.Flag[string]
	Remove workflow.Flag[bool]
	Status workflow.Flag[bool]
}

func (f authFlags) GetFlags() workflow.Flags {
	return workflow.Flags{f.ApiKey, f.Remove, f.Status}
}

var (
	Auth = &authWorkflow{
		Workflow: &workflow.Workflow{
			Name:     "auth",
			TypeName: "auth",
			Visible:  true,
			Flags: authFlags{
				ApiKey: workflow.Flag[string]{Name: "api-key", Usage: "API key to store, you are prompted for it if omitted"},
				Remove: workflow.Flag[bool]{Name: "remove", Usage: "Remove the stored API key"},
				Status: workflow.Flag[bool]{Name: "status", Usage: "Show whether an API key is configured"},
			},
		},
		newKeyStore: auth.NewConfigurationKeyStore,
	}

	WORKFLOWID_AUTH workflow.Identifier = Auth.Identifier()
)

func InitAuthWorkflow(engine workflow.Engine) error {
	return workflow.Register(Auth, engine)
}

type authWorkflow struct {
	*workflow.Workflow
	newKeyStore func(config configuration.Configuration) auth.KeyStore
}

// Entrypoint stores, removes or reports the API key. The key is read from a hidden prompt when it
// is not passed as flag.
func (w *authWorkflow) Entrypoint(invocation workflow.InvocationContext, _ []workflow.Data) ([]workflow.Data, error) {
	config := invocation.GetConfiguration()
	logger := w.Logger(invocation)
	flags := w.Workflow.Flags.(authFlags)
	keyStore := w.newKeyStore(config)

	var message string
	switch {
	case flags.Remove.Value(config):
		logger.Debug().Msg("Removing API key")
		if err := keyStore.RemoveApiKey(); err != nil {
			return nil, err
		}
		message = removedMessage

	case flags.Status.Value(config):
		apiKey, err := keyStore.GetApiKey()
		if err != nil {
			return nil, err
		}
		message = authStatus(apiKey, config.GetString(configuration.API_URL))

	default:
		apiKey := strings.TrimSpace(flags.ApiKey.Value(config))
		if len(apiKey) == 0 {
			var err error
			apiKey, err = invocation.GetUserInterface().InputSecret("API key")
			if err != nil {
				return nil, errorcatalog.NewIOError("read API key", err)
			}
		}

		logger.Debug().Msg("Storing API key")
		if err := keyStore.SetApiKey(apiKey); err != nil {
			return nil, err
		}
		message = authenticatedMessage
	}

	return []workflow.Data{workflow.NewData(w.TypeIdentifier(), content_type.TEXT_PLAIN, message)}, nil
}

func authStatus(apiKey string, apiUrl string) string {
	if len(apiKey) == 0 {
		return auth.ErrApiKeyNotConfigured.Error()
	}
	return fmt.Sprintf("Authenticated for %s with API key %s", apiUrl, maskApiKey(apiKey))
}

// maskApiKey keeps the first four characters of keys long enough to stay unguessable.
func maskApiKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return strings.Repeat("*", len(apiKey))
	}
	return apiKey[:4] + strings.Repeat("*", len(apiKey)-4)
}
