package localworkflows

import (
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

// Init registers all workflows of this package with the engine.
func Init(engine workflow.Engine) error {
	initMethods := []func(workflow.Engine) error{
		InitScanWorkflow,
		InitResultsWorkflow,
		InitFindingWorkflow,
		InitChatWorkflow,
		InitAuthWorkflow,
		InitConfigureWorkflow,
		InitOpenWorkflow,
		InitOutputWorkflow,
	}

	for i := range initMethods {
		if err := initMethods[i](engine); err != nil {
			return err
		}
	}

	return nil
}
