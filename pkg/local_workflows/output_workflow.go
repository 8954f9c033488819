package localworkflows

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/presenters"
	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/utils"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/content_type"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/json_schemas"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

const OUTPUT_CONFIG_KEY_JSON_FILE = "json-file-output"

type outputFlags struct {
	Json     workflow.Flag[bool]
	JsonFile workflow.Flag[string]
}

func (f outputFlags) GetFlags() workflow.Flags {
	return workflow.Flags{f.Json, f.JsonFile}
}

var (
	Output = &outputWorkflow{
		Workflow: &workflow.Workflow{
			Name:     "output",
			TypeName: "output",
			Visible:  false,
			Flags: outputFlags{
				Json:     workflow.Flag[bool]{Name: configuration.FLAG_JSON, Usage: "Print json output to console"},
				JsonFile: workflow.Flag[string]{Name: OUTPUT_CONFIG_KEY_JSON_FILE, Usage: "Write json output to file"},
			},
		},
	}

	WORKFLOWID_OUTPUT_WORKFLOW workflow.Identifier = Output.Identifier()
)

// InitOutputWorkflow registers the output workflow. It prints the data other workflows return and
// is invoked with their output as input.
func InitOutputWorkflow(engine workflow.Engine) error {
	return workflow.Register(Output, engine)
}

type outputWorkflow struct {
	*workflow.Workflow
}

func (w *outputWorkflow) Entrypoint(invocation workflow.InvocationContext, input []workflow.Data) ([]workflow.Data, error) {
	return w.entrypoint(invocation, input, utils.NewOutputDestination())
}

func (w *outputWorkflow) entrypoint(invocation workflow.InvocationContext, input []workflow.Data, destination utils.OutputDestination) ([]workflow.Data, error) {
	config := invocation.GetConfiguration()
	logger := w.Logger(invocation)
	flags := w.Workflow.Flags.(outputFlags)

	for i := range input {
		mimeType := input[i].GetContentType()
		location := input[i].GetContentLocation()
		if len(location) == 0 {
			location = "unknown"
		}
		logger.Debug().Msgf("Processing '%s' based on '%s' of type '%s'", input[i].GetIdentifier().String(), location, mimeType)

		var err error
		if strings.HasPrefix(mimeType, "application/json") {
			err = handleContentTypeJson(input[i], flags.Json.Value(config), flags.JsonFile.Value(config), destination, logger)
		} else {
			err = handleContentTypeOthers(input[i], destination)
		}
		if err != nil {
			return nil, err
		}
	}

	return []workflow.Data{}, nil
}

func handleContentTypeJson(data workflow.Data, printJson bool, jsonFile string, destination utils.OutputDestination, logger *zerolog.Logger) error {
	payload, ok := data.GetPayload().([]byte)
	if !ok {
		return fmt.Errorf("invalid payload type: %T", data.GetPayload())
	}

	if len(jsonFile) > 0 {
		if err := jsonWriteToFile(payload, jsonFile, destination); err != nil {
			return err
		}
		logger.Debug().Msgf("Wrote %d bytes of json to '%s'", len(payload), jsonFile)
	}

	if printJson {
		_, err := destination.Println(string(payload))
		return err
	}

	humanReadable, err := renderHumanReadable(data.GetContentType(), payload)
	if err != nil {
		return err
	}
	_, err = destination.Println(humanReadable)
	return err
}

// renderHumanReadable presents known documents, unknown json is printed as it is.
func renderHumanReadable(contentType string, payload []byte) (string, error) {
	switch contentType {
	case content_type.SCAN_RESULTS:
		var document json_schemas.ResultsDocument
		if err := json.Unmarshal(payload, &document); err != nil {
			return "", fmt.Errorf("failed to read results: %w", err)
		}
		return presenters.RenderResults(document.State())

	case content_type.FINDING_DETAIL:
		var finding findings.Finding
		if err := json.Unmarshal(payload, &finding); err != nil {
			return "", fmt.Errorf("failed to read finding: %w", err)
		}
		return presenters.RenderFinding(finding, true), nil

	case content_type.CONVERSATION:
		var document json_schemas.ConversationDocument
		if err := json.Unmarshal(payload, &document); err != nil {
			return "", fmt.Errorf("failed to read conversation: %w", err)
		}
		return presenters.RenderChat(document.State()), nil
	}

	return string(payload), nil
}

func jsonWriteToFile(payload []byte, jsonFile string, destination utils.OutputDestination) error {
	var compact bytes.Buffer
	if _, err := presenters.NewJsonWriter(&compact, true).Write(payload); err != nil {
		return err
	}

	if err := destination.Remove(jsonFile); err != nil {
		return fmt.Errorf("failed to remove existing output file: %w", err)
	}
	if err := destination.WriteFile(jsonFile, compact.Bytes(), utils.FILEPERM_666); err != nil {
		return fmt.Errorf("failed to write json output: %w", err)
	}
	return nil
}

func handleContentTypeOthers(data workflow.Data, destination utils.OutputDestination) error {
	var text string
	switch payload := data.GetPayload().(type) {
	case string:
		text = payload
	case []byte:
		text = string(payload)
	default:
		return fmt.Errorf("unsupported output type: %s", data.GetContentType())
	}

	_, err := destination.Println(text)
	return err
}
