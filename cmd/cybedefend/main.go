package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/app"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/cmd"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/runtimeinfo"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
)

// set with -ldflags "-X main.version=..."
var (
	version string
	commit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := app.CreateAppEngineWithOptions(
		app.WithConfiguration(configuration.New()),
		app.WithRuntimeInfo(runtimeinfo.New(
			runtimeinfo.WithName(constants.CYBEDEFEND_PRODUCT_NAME),
			runtimeinfo.WithVersion(version),
			runtimeinfo.WithCommit(commit),
		)),
	)

	if err := engine.Init(); err != nil {
		return cmd.ExitCode(err, ui.DefaultUi())
	}

	err := cmd.Root(engine).ExecuteContext(ctx)
	return cmd.ExitCode(err, engine.GetUserInterface())
}
