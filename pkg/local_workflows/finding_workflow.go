package localworkflows

import (
	"strings"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/content_type"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

type findingFlags struct {
	ProjectId workflow.Flag[string]
	FindingId workflow.Flag[string]
	Type      workflow.Flag[string]
}

func (f findingFlags) GetFlags() workflow.Flags {
	return workflow.Flags{f.ProjectId, f.FindingId, f.Type}
}

var findingTypeFlag = workflow.Flag[string]{
	Name:         typeFlag,
	Shorthand:    "t",
	Usage:        "Finding type (sast, iac or sca)",
	DefaultValue: string(findings.KindSAST),
}

var (
	Finding = &findingWorkflow{
		Workflow: &workflow.Workflow{
			Name:     "finding",
			TypeName: "finding",
			Visible:  true,
			Flags: findingFlags{
				ProjectId: projectIdFlagDef,
				FindingId: workflow.Flag[string]{Name: findingIdFlag, Usage: "Finding to show"},
				Type:      findingTypeFlag,
			},
		},
		newClient: NewClient,
	}

	WORKFLOWID_FINDING workflow.Identifier = Finding.Identifier()
)

func InitFindingWorkflow(engine workflow.Engine) error {
	return workflow.Register(Finding, engine)
}

type findingWorkflow struct {
	*workflow.Workflow
	newClient ClientFactory
}

func (w *findingWorkflow) Entrypoint(invocation workflow.InvocationContext, _ []workflow.Data) ([]workflow.Data, error) {
	config := invocation.GetConfiguration()
	logger := w.Logger(invocation)
	flags := w.Workflow.Flags.(findingFlags)

	projectId, err := resolveProjectId(config, config.GetString(configuration.WORKING_DIRECTORY), logger)
	if err != nil {
		return nil, err
	}

	findingId := strings.TrimSpace(flags.FindingId.Value(config))
	if len(findingId) == 0 {
		return nil, errorcatalog.NewConfigurationError("", "missing --finding-id")
	}

	kind, err := parseKindFlag(flags.Type.Value(config))
	if err != nil {
		return nil, err
	}

	finding, err := w.newClient(invocation).GetFindingDetail(invocation.Context(), projectId, findingId, kind)
	if err != nil {
		return nil, err
	}

	data, err := newJsonData(w.TypeIdentifier(), content_type.FINDING_DETAIL, "", finding)
	if err != nil {
		return nil, err
	}
	return []workflow.Data{data}, nil
}
