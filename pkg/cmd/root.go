// Package cmd exposes the registered workflows as cobra commands.
package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/utils"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/app"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	localworkflows "github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

const logLevelFlag = "log-level"

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// Root builds the command tree of an initialized engine. Every visible workflow becomes a command,
// the flags of the output workflow are available on all of them.
func Root(engine workflow.Engine) *cobra.Command {
	root := newNode(constants.CYBEDEFEND_PRODUCT_NAME)
	for _, w := range engine.GetWorkflows() {
		if w.String() == localworkflows.WORKFLOWID_OUTPUT_WORKFLOW.String() {
			continue
		}
		fullCmd := workflow.GetCommandFromWorkflowIdentifier(w)
		parts := strings.Fields(fullCmd)
		root.add(parts, w)
	}

	rootCmd := root.cmd(engine)
	rootCmd.Short = "Scan projects with CybeDefend and explore the results"
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if ri := engine.GetRuntimeInfo(); ri != nil && len(ri.GetName()) > 0 {
		rootCmd.Version = ri.String()
		rootCmd.SetVersionTemplate("{{.Version}}\n")
	}

	rootCmd.PersistentFlags().AddFlagSet(globalFlags(engine))
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		config := engine.GetConfiguration()
		if err := config.AddFlagSet(cmd.Flags()); err != nil {
			return err
		}
		if flag := cmd.Flags().Lookup(logLevelFlag); flag != nil && flag.Changed {
			config.Set(configuration.LOG_LEVEL, flag.Value.String())
		}

		logger := app.NewLogger(config, os.Stderr)
		engine.SetLogger(logger)
		log.SetOutput(&utils.ToZeroLogDebug{Logger: logger})
		log.SetFlags(0)
		return nil
	}

	return rootCmd
}

func globalFlags(engine workflow.Engine) *pflag.FlagSet {
	flags := pflag.NewFlagSet("global", pflag.ContinueOnError)
	flags.Bool(configuration.DEBUG, false, "Print debug logs to stderr")
	flags.String(logLevelFlag, "", "Log level, one of trace, debug, info, warn, error")

	if output, ok := engine.GetWorkflow(localworkflows.WORKFLOWID_OUTPUT_WORKFLOW); ok {
		if outputFlags := workflow.FlagsetFromConfigurationOptions(output.GetConfigurationOptions()); outputFlags != nil {
			flags.AddFlagSet(outputFlags)
		}
	}
	return flags
}

// ExitCode reports err to the user and returns the process exit code. Cancellation is not an
// error.
func ExitCode(err error, userInterface ui.UserInterface) int {
	if err == nil {
		return ExitCodeSuccess
	}

	if errorcatalog.IsCancelled(err) {
		_ = userInterface.Output("Cancelled.")
		return ExitCodeSuccess
	}

	_ = userInterface.OutputError(err)
	return ExitCodeError
}
