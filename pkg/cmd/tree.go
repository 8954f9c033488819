package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	localworkflows "github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

type cmdTree struct {
	name       string
	children   map[string]*cmdTree
	workflowID workflow.Identifier
}

func newNode(name string) *cmdTree {
	return &cmdTree{
		name:     name,
		children: map[string]*cmdTree{},
	}
}

func (n *cmdTree) add(parts []string, workflowID workflow.Identifier) {
	if len(parts) < 1 {
		n.workflowID = workflowID
		return
	}
	head := parts[0]
	child, ok := n.children[head]
	if !ok {
		child = newNode(head)
		n.children[head] = child
	}
	child.add(parts[1:], workflowID)
}

func (n *cmdTree) cmd(engine workflow.Engine) *cobra.Command {
	var cmd *cobra.Command
	if n.workflowID == nil {
		cmd = newEmptyCommand(n.name)
	} else {
		cmd = newWorkflowCommand(n.name, engine, n.workflowID)
	}

	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.AddCommand(n.children[name].cmd(engine))
	}
	return cmd
}

func runEmpty(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return cmd.Help()
}

func newEmptyCommand(name string) *cobra.Command {
	return &cobra.Command{
		Use:  name,
		RunE: runEmpty,
	}
}

// newWorkflowCommand runs the workflow and hands its output to the output workflow. Flags are
// bound to the configuration again before each run since workflows share flag names.
func newWorkflowCommand(name string, engine workflow.Engine, id workflow.Identifier) *cobra.Command {
	w, _ := engine.GetWorkflow(id)
	cmd := &cobra.Command{
		Use:    name,
		Hidden: !w.IsVisible(),
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := engine.GetConfiguration()
			if err := config.AddFlagSet(cmd.Flags()); err != nil {
				return err
			}
			return run(cmd, engine, id)
		},
	}
	options := w.GetConfigurationOptions()
	flagset := workflow.FlagsetFromConfigurationOptions(options)
	if flagset != nil {
		cmd.Flags().AddFlagSet(flagset)
	}
	return cmd
}

func run(cmd *cobra.Command, engine workflow.Engine, id workflow.Identifier) error {
	ctx := cmd.Context()
	data, err := engine.Invoke(id, workflow.WithContext(ctx))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	_, err = engine.Invoke(localworkflows.WORKFLOWID_OUTPUT_WORKFLOW,
		workflow.WithInput(data),
		workflow.WithContext(ctx),
	)
	return err
}
