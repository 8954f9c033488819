package workflow

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/networking"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/runtimeinfo"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
)

type EngineImpl struct {
	mutex             sync.Mutex
	workflows         map[string]Entry
	initializers      []ExtensionInit
	config            configuration.Configuration
	networkAccess     networking.NetworkAccess
	logger            *zerolog.Logger
	ui                ui.UserInterface
	runtimeInfo       runtimeinfo.RuntimeInfo
	initialized       bool
	invocationCounter int
}

var _ Engine = (*EngineImpl)(nil)

// NewWorkflowIdentifier turns a command like "results list" into the identifier flw://results.list.
func NewWorkflowIdentifier(command string) Identifier {
	dotSeparatedCommand := strings.ReplaceAll(command, " ", ".")
	id := url.URL{Scheme: "flw", Host: dotSeparatedCommand}
	return &id
}

// GetCommandFromWorkflowIdentifier is the inverse of NewWorkflowIdentifier.
func GetCommandFromWorkflowIdentifier(id Identifier) string {
	if id == nil || id.Scheme != "flw" {
		return ""
	}
	return strings.ReplaceAll(id.Host, ".", " ")
}

func NewTypeIdentifier(workflowID Identifier, dataType string) Identifier {
	id := *workflowID
	id.Scheme = "tpe"
	id.Path = dataType
	return &id
}

func NewWorkFlowEngine(config configuration.Configuration) Engine {
	nop := zerolog.Nop()
	return &EngineImpl{
		workflows:   make(map[string]Entry),
		config:      config,
		logger:      &nop,
		ui:          ui.DefaultUi(),
		runtimeInfo: runtimeinfo.New(),
	}
}

func (e *EngineImpl) AddExtensionInitializer(initializer ExtensionInit) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.initializers = append(e.initializers, initializer)
}

// Init runs all extension initializers and sets up network access. It must be called before the
// first invocation.
func (e *EngineImpl) Init() error {
	e.mutex.Lock()
	initializers := e.initializers
	e.initializers = nil
	e.mutex.Unlock()

	for _, initializer := range initializers {
		if err := initializer(e); err != nil {
			return errors.Wrap(err, "failed to initialize extension")
		}
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.networkAccess == nil {
		e.networkAccess = networking.NewNetworkAccess(e.config)
	}
	e.networkAccess.SetLogger(e.logger)
	if e.runtimeInfo != nil && len(e.runtimeInfo.GetName()) > 0 {
		e.networkAccess.SetUserAgent(networking.UserAgent(
			networking.UaWithConfig(e.config),
			networking.UaWithApplication(e.runtimeInfo.GetName(), e.runtimeInfo.GetVersion()),
		))
	}

	e.initialized = true
	return nil
}

func (e *EngineImpl) Register(id Identifier, config ConfigurationOptions, entryPoint Callback) (Entry, error) {
	if entryPoint == nil {
		return nil, fmt.Errorf("entry point must not be nil")
	}

	if config == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	if id == nil {
		return nil, fmt.Errorf("id must not be nil")
	}

	entry := &entryImpl{
		visible:        true,
		expectedConfig: config,
		entryPoint:     entryPoint,
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.workflows[id.String()] = entry

	if flagset := FlagsetFromConfigurationOptions(config); flagset != nil {
		if err := e.config.AddFlagSet(flagset); err != nil {
			return nil, errors.Wrapf(err, "failed to add flags of workflow %s", id)
		}
	}

	return entry, nil
}

// GetWorkflows returns the identifiers of all registered workflows, sorted.
func (e *EngineImpl) GetWorkflows() []Identifier {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	keys := make([]string, 0, len(e.workflows))
	for k := range e.workflows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]Identifier, 0, len(keys))
	for _, k := range keys {
		if id, err := url.Parse(k); err == nil {
			result = append(result, id)
		}
	}
	return result
}

func (e *EngineImpl) GetWorkflow(id Identifier) (Entry, bool) {
	if id == nil {
		return nil, false
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	workflow, ok := e.workflows[id.String()]
	return workflow, ok
}

type engineRuntimeConfig struct {
	input  []Data
	config configuration.Configuration
	ctx    context.Context
}

type EngineInvokeOption func(*engineRuntimeConfig)

func WithInput(input []Data) EngineInvokeOption {
	return func(c *engineRuntimeConfig) {
		c.input = input
	}
}

// WithConfig runs the workflow with config instead of a clone of the engine's configuration.
func WithConfig(config configuration.Configuration) EngineInvokeOption {
	return func(c *engineRuntimeConfig) {
		c.config = config
	}
}

func WithContext(ctx context.Context) EngineInvokeOption {
	return func(c *engineRuntimeConfig) {
		c.ctx = ctx
	}
}

func (e *EngineImpl) Invoke(id Identifier, opts ...EngineInvokeOption) ([]Data, error) {
	options := &engineRuntimeConfig{}
	for _, opt := range opts {
		opt(options)
	}

	e.mutex.Lock()
	initialized := e.initialized
	e.invocationCounter++
	e.mutex.Unlock()

	if !initialized {
		return nil, fmt.Errorf("workflow engine must be initialized with Init() before it can be invoked")
	}

	workflow, ok := e.GetWorkflow(id)
	if !ok {
		return nil, fmt.Errorf("workflow '%v' not found", id)
	}

	callback := workflow.GetEntryPoint()
	if callback == nil {
		return nil, nil
	}

	config := options.config
	if config == nil {
		config = e.GetConfiguration().Clone()
	}
	ctx := options.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	invocation := &invocationContextImpl{
		ctx:            ctx,
		workflowID:     id,
		configuration:  config,
		workflowEngine: e,
	}

	e.GetLogger().Debug().Str("workflow", id.String()).Msg("Invoking workflow")
	output, err := callback(invocation, options.input)
	if err != nil {
		return output, errors.Wrapf(err, "workflow '%s' failed", GetCommandFromWorkflowIdentifier(id))
	}
	return output, nil
}

func (e *EngineImpl) InvokeWithInput(id Identifier, input []Data) ([]Data, error) {
	return e.Invoke(id, WithInput(input))
}

func (e *EngineImpl) InvokeWithConfig(id Identifier, config configuration.Configuration) ([]Data, error) {
	return e.Invoke(id, WithConfig(config))
}

func (e *EngineImpl) GetNetworkAccess() networking.NetworkAccess {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.networkAccess
}

func (e *EngineImpl) GetConfiguration() configuration.Configuration {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.config
}

func (e *EngineImpl) SetConfiguration(config configuration.Configuration) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.config = config
	if e.networkAccess != nil {
		e.networkAccess = networking.NewNetworkAccess(config)
		e.networkAccess.SetLogger(e.logger)
	}
}

func (e *EngineImpl) SetLogger(logger *zerolog.Logger) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.logger = logger
	if e.networkAccess != nil {
		e.networkAccess.SetLogger(logger)
	}
}

func (e *EngineImpl) GetLogger() *zerolog.Logger {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.logger
}

func (e *EngineImpl) GetUserInterface() ui.UserInterface {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.ui
}

func (e *EngineImpl) SetUserInterface(userInterface ui.UserInterface) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.ui = userInterface
}

func (e *EngineImpl) GetRuntimeInfo() runtimeinfo.RuntimeInfo {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.runtimeInfo
}

func (e *EngineImpl) SetRuntimeInfo(ri runtimeinfo.RuntimeInfo) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.runtimeInfo = ri
}

type entryImpl struct {
	visible        bool
	expectedConfig ConfigurationOptions
	entryPoint     Callback
}

func (e *entryImpl) GetEntryPoint() Callback                       { return e.entryPoint }
func (e *entryImpl) GetConfigurationOptions() ConfigurationOptions { return e.expectedConfig }
func (e *entryImpl) IsVisible() bool                               { return e.visible }
func (e *entryImpl) SetVisibility(visible bool)                    { e.visible = visible }
