package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bundle/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [task]",
		Short: "Run a task by name (default: default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			task, err := domain.ParseCommand(name)
			if err != nil {
				return err
			}
			return c.runTask(cmd, task)
		},
	}
}

// newTaskCmds creates one shortcut subcommand per task. The default task is
// the root command itself.
func (c *CLI) newTaskCmds() []*cobra.Command {
	var cmds []*cobra.Command
	for _, info := range c.app.Tasks() {
		if info.Name == domain.CommandDefault {
			continue
		}
		task := info.Name
		cmds = append(cmds, &cobra.Command{
			Use:   string(task),
			Short: info.Description,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.runTask(cmd, task)
			},
		})
	}
	return cmds
}
