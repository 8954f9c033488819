package workflow

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/networking"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/runtimeinfo"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
)

type invocationContextImpl struct {
	ctx            context.Context
	workflowID     Identifier
	workflowEngine Engine
	configuration  configuration.Configuration
}

func (ici *invocationContextImpl) Context() context.Context {
	return ici.ctx
}

func (ici *invocationContextImpl) GetWorkflowIdentifier() Identifier {
	return ici.workflowID
}

func (ici *invocationContextImpl) GetConfiguration() configuration.Configuration {
	return ici.configuration
}

func (ici *invocationContextImpl) GetEngine() Engine {
	return ici.workflowEngine
}

func (ici *invocationContextImpl) GetNetworkAccess() networking.NetworkAccess {
	return ici.workflowEngine.GetNetworkAccess()
}

// GetEnhancedLogger returns the engine's logger tagged with the workflow.
func (ici *invocationContextImpl) GetEnhancedLogger() *zerolog.Logger {
	logger := ici.workflowEngine.GetLogger().With().Str("workflow", GetCommandFromWorkflowIdentifier(ici.workflowID)).Logger()
	return &logger
}

func (ici *invocationContextImpl) GetUserInterface() ui.UserInterface {
	return ici.workflowEngine.GetUserInterface()
}

func (ici *invocationContextImpl) GetRuntimeInfo() runtimeinfo.RuntimeInfo {
	return ici.workflowEngine.GetRuntimeInfo()
}
