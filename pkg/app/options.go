package app

import (
	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/runtimeinfo"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

type Opts func(engine workflow.Engine)

func WithConfiguration(config configuration.Configuration) Opts {
	return func(engine workflow.Engine) {
		engine.SetConfiguration(config)
	}
}

func WithZeroLogger(logger *zerolog.Logger) Opts {
	return func(engine workflow.Engine) {
		engine.SetLogger(logger)
	}
}

func WithUserInterface(userInterface ui.UserInterface) Opts {
	return func(engine workflow.Engine) {
		engine.SetUserInterface(userInterface)
	}
}

func WithInitializers(initializers ...workflow.ExtensionInit) Opts {
	return func(engine workflow.Engine) {
		for _, i := range initializers {
			engine.AddExtensionInitializer(i)
		}
	}
}

func WithRuntimeInfo(ri runtimeinfo.RuntimeInfo) Opts {
	return func(engine workflow.Engine) {
		engine.SetRuntimeInfo(ri)
	}
}
