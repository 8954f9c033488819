package localworkflows

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/content_type"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/json_schemas"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

const allKinds = "all"

type resultsFlags struct {
	ProjectId workflow.Flag[string]
	Type      workflow.Flag[string]
	Page      workflow.Flag[int]
	PageSize  workflow.Flag[int]
	Severity  workflow.Flag[string]
}

func (f resultsFlags) GetFlags() workflow.Flags {
	return workflow.Flags{f.ProjectId, f.Type, f.Page, f.PageSize, f.Severity}
}

var (
	Results = &resultsWorkflow{
		Workflow: &workflow.Workflow{
			Name:     "results",
			TypeName: "results",
			Visible:  true,
			Flags: resultsFlags{
				ProjectId: projectIdFlagDef,
				Type: workflow.Flag[string]{
					Name:         typeFlag,
					Shorthand:    "t",
					Usage:        "Finding type (sast, iac, sca or all)",
					DefaultValue: string(findings.KindSAST),
				},
				Page: workflow.Flag[int]{
					Name:         "page",
					Usage:        "Page to show",
					DefaultValue: 1,
				},
				PageSize: workflow.Flag[int]{
					Name:  "page-size",
					Usage: "Findings per page, defaults to the configured page size",
				},
				Severity: workflow.Flag[string]{
					Name:  "severity",
					Usage: "Comma separated severities to show, e.g. critical,high",
				},
			},
		},
		newClient: NewClient,
	}

	WORKFLOWID_RESULTS workflow.Identifier = Results.Identifier()
)

func InitResultsWorkflow(engine workflow.Engine) error {
	return workflow.Register(Results, engine)
}

type resultsWorkflow struct {
	*workflow.Workflow
	newClient ClientFactory
}

func (w *resultsWorkflow) flags() resultsFlags {
	return w.Workflow.Flags.(resultsFlags)
}

// Entrypoint lists the findings of the latest scan. With --type all the three kinds are fetched
// concurrently, the first failure cancels the others.
func (w *resultsWorkflow) Entrypoint(invocation workflow.InvocationContext, _ []workflow.Data) ([]workflow.Data, error) {
	config := invocation.GetConfiguration()
	logger := w.Logger(invocation)
	flags := w.flags()

	projectId, err := resolveProjectId(config, config.GetString(configuration.WORKING_DIRECTORY), logger)
	if err != nil {
		return nil, err
	}

	kinds, err := parseKinds(flags.Type.Value(config))
	if err != nil {
		return nil, err
	}

	severities, err := parseSeverities(flags.Severity.Value(config))
	if err != nil {
		return nil, err
	}

	page := flags.Page.Value(config)
	if page < 1 {
		return nil, errorcatalog.NewConfigurationError("", fmt.Sprintf("invalid --page %d, pages start at 1", page))
	}

	pageSize := flags.PageSize.Value(config)
	if pageSize <= 0 {
		pageSize = config.GetInt(configuration.RESULTS_PAGE_SIZE)
	}

	client := w.newClient(invocation)
	pages := make([]*cybedefend.ResultsPage, len(kinds))
	g, ctx := errgroup.WithContext(invocation.Context())
	for i, kind := range kinds {
		g.Go(func() error {
			result, listErr := client.ListResults(ctx, cybedefend.ResultsQuery{
				ProjectID:  projectId,
				Kind:       kind,
				Page:       page,
				PageSize:   pageSize,
				Severities: severities,
			})
			if listErr != nil {
				return listErr
			}
			pages[i] = result
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug().Int("kinds", len(kinds)).Int("page", page).Msg("Fetched results")

	document := json_schemas.NewResultsDocument(projectId, "", "", pages...)
	data, err := newJsonData(w.TypeIdentifier(), content_type.SCAN_RESULTS, "", document)
	if err != nil {
		return nil, err
	}
	return []workflow.Data{data}, nil
}

func parseKinds(value string) ([]findings.Kind, error) {
	if strings.EqualFold(strings.TrimSpace(value), allKinds) {
		return findings.Kinds, nil
	}

	kind, err := parseKindFlag(value)
	if err != nil {
		return nil, err
	}
	return []findings.Kind{kind}, nil
}

func parseSeverities(value string) ([]findings.Severity, error) {
	var severities []findings.Severity
	for _, part := range strings.Split(value, ",") {
		if len(strings.TrimSpace(part)) == 0 {
			continue
		}
		severity := findings.ParseSeverity(part)
		if severity == findings.SeverityUnknown {
			return nil, errorcatalog.NewConfigurationError("", fmt.Sprintf("invalid --severity %q, use critical, high, medium, low or info", part))
		}
		severities = append(severities, severity)
	}
	return severities, nil
}
