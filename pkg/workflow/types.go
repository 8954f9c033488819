package workflow

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/networking"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/runtimeinfo"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
)

//go:generate go tool github.com/golang/mock/mockgen -source=types.go -destination ../mocks/workflow.go -package mocks -self_package github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow/

// typedefs
type Identifier = *url.URL
type Callback func(invocation InvocationContext, input []Data) ([]Data, error)
type ExtensionInit func(engine Engine) error

// interfaces

// Data is passed between workflows, a payload plus meta data such as its content type.
type Data interface {
	SetMetaData(key string, value string)
	GetMetaData(key string) (string, error)
	SetPayload(payload interface{})
	GetPayload() interface{}
	GetIdentifier() Identifier
	GetContentType() string
	GetContentLocation() string
	SetContentLocation(string)
}

// InvocationContext is handed to a workflow when it is invoked.
type InvocationContext interface {
	// Context is cancelled when the user interrupts the invocation.
	Context() context.Context
	GetWorkflowIdentifier() Identifier
	GetConfiguration() configuration.Configuration
	GetEngine() Engine
	GetNetworkAccess() networking.NetworkAccess
	GetEnhancedLogger() *zerolog.Logger
	GetUserInterface() ui.UserInterface
	GetRuntimeInfo() runtimeinfo.RuntimeInfo
}

// ConfigurationOptions describe the options a workflow accepts, see ConfigurationOptionsFromFlagset.
type ConfigurationOptions interface {
}

type Entry interface {
	GetEntryPoint() Callback
	GetConfigurationOptions() ConfigurationOptions
	IsVisible() bool
	SetVisibility(visible bool)
}

// Engine is the interface that wraps the methods that are used to manage workflows.
type Engine interface {
	Init() error
	AddExtensionInitializer(initializer ExtensionInit)
	Register(id Identifier, config ConfigurationOptions, callback Callback) (Entry, error)
	GetWorkflows() []Identifier
	GetWorkflow(id Identifier) (Entry, bool)
	Invoke(id Identifier, opts ...EngineInvokeOption) ([]Data, error)
	InvokeWithInput(id Identifier, input []Data) ([]Data, error)
	InvokeWithConfig(id Identifier, config configuration.Configuration) ([]Data, error)

	GetNetworkAccess() networking.NetworkAccess
	GetConfiguration() configuration.Configuration
	SetConfiguration(config configuration.Configuration)
	SetLogger(logger *zerolog.Logger)
	GetLogger() *zerolog.Logger
	GetUserInterface() ui.UserInterface
	SetUserInterface(ui ui.UserInterface)
	GetRuntimeInfo() runtimeinfo.RuntimeInfo
	SetRuntimeInfo(ri runtimeinfo.RuntimeInfo)
}
