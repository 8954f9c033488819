package localworkflows

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/projectconfig"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/utils/git"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

const (
	projectIdFlag = "project-id"
	findingIdFlag = "finding-id"
	typeFlag      = "type"
)

var projectIdFlagDef = workflow.Flag[string]{
	Name:  projectIdFlag,
	Usage: "Project to use instead of the configured one",
}

var errNoProjectId = errorcatalog.NewConfigurationError("", "no project configured, run `cybedefend configure --project-id <id>` or set CYBEDEFEND_PROJECT_ID")

// ClientFactory creates the client used to talk to the service. Tests replace it.
type ClientFactory func(invocation workflow.InvocationContext) cybedefend.Client

// NewClient builds an authenticated client from the invocation's configuration and network access.
func NewClient(invocation workflow.InvocationContext) cybedefend.Client {
	config := invocation.GetConfiguration()

	cfg := cybedefend.DefaultConfig(config.GetString(configuration.API_URL))
	cfg.RequestTimeout = time.Duration(config.GetInt(configuration.TIMEOUT)) * time.Second
	cfg.UploadTimeout = time.Duration(config.GetInt(configuration.UPLOAD_TIMEOUT)) * time.Second
	cfg.ResultsPageSize = config.GetInt(configuration.RESULTS_PAGE_SIZE)

	var client cybedefend.Client = cybedefend.NewClient(
		invocation.GetNetworkAccess().GetHttpClient(),
		cfg,
		cybedefend.WithLogger(invocation.GetEnhancedLogger()),
	)

	if ttl := config.GetInt(configuration.DETAIL_CACHE_TTL); ttl > 0 {
		client = cybedefend.NewCachedClient(client, time.Duration(ttl)*time.Second)
	}
	return client
}

// resolveProjectId prefers the --project-id flag over the configuration and the projectId of the
// project configuration file in dir.
func resolveProjectId(config configuration.Configuration, dir string, logger *zerolog.Logger) (string, error) {
	if id := strings.TrimSpace(projectIdFlagDef.Value(config)); len(id) > 0 {
		return id, nil
	}

	if id := strings.TrimSpace(config.GetString(configuration.PROJECT_ID)); len(id) > 0 {
		return id, nil
	}

	if len(dir) > 0 {
		pc, err := projectconfig.Load(dir)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to read project configuration")
		} else if len(pc.ProjectId) > 0 {
			return pc.ProjectId, nil
		}
	}

	return "", errNoProjectId
}

// resolveDirectory returns --directory if set, otherwise the root of the git repository containing
// the working directory, otherwise the working directory itself.
func resolveDirectory(config configuration.Configuration, logger *zerolog.Logger) (string, error) {
	if dir := config.GetString(configuration.INPUT_DIRECTORY); len(dir) > 0 {
		return dir, nil
	}

	wd := config.GetString(configuration.WORKING_DIRECTORY)
	if len(wd) == 0 {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return "", errorcatalog.NewIOError("determine working directory", err)
		}
	}

	root, err := git.RepoRootFromDir(wd)
	if err != nil {
		logger.Debug().Err(err).Str("dir", wd).Msg("Not a git repository, scanning the working directory")
		return wd, nil
	}
	return root, nil
}

func parseKindFlag(value string) (findings.Kind, error) {
	kind, err := findings.ParseKind(value)
	if err != nil {
		return "", errorcatalog.NewConfigurationError("", fmt.Sprintf("invalid --%s %q, use one of sast, iac, sca", typeFlag, value))
	}
	return kind, nil
}

func newJsonData(typeId workflow.Identifier, contentType string, location string, document any) (workflow.Data, error) {
	payload, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	data := workflow.NewData(typeId, contentType, payload)
	if len(location) > 0 {
		data.SetContentLocation(location)
	}
	return data, nil
}
