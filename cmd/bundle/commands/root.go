// Package commands implements the CLI commands for bundle.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/bundle/internal/app"
	"go.trai.ch/bundle/internal/build"
	"go.trai.ch/bundle/internal/core/domain"
)

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, cmd domain.Command, opts app.RunOptions) error
	Tasks() []domain.CommandInfo
}

// LogSettings is the part of the logger the global flags control.
type LogSettings interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// CLI represents the command line interface for bundle.
type CLI struct {
	app     Application
	logging LogSettings
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app. logging may be nil.
func New(a Application, logging LogSettings) *CLI {
	c := &CLI{
		app:     a,
		logging: logging,
	}

	rootCmd := &cobra.Command{
		Use:   "bundle",
		Short: "Build stylesheets, scripts and static files for the browser",
		Long: "Build stylesheets, scripts and static files for the browser.\n\n" +
			"Without a subcommand bundle runs the default task: a full development build followed by watching.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           build.Version,
		PersistentPreRunE: c.applyGlobalFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTask(cmd, domain.CommandDefault)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to the config file (default: discover bundle.yaml upwards)")
	flags.Bool("production", false, "Force production mode on or off, overriding the config file")
	flags.Bool("no-watch", false, "Stop the default task after the initial build")
	flags.Bool("json-logs", false, "Write logs as JSON")
	flags.Bool("verbose", false, "Show debug logs")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newRunCmd())
	for _, cmd := range c.newTaskCmds() {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(c.newTasksCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	if c.logging == nil {
		return nil
	}
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	verbose, _ := cmd.Flags().GetBool("verbose")
	c.logging.SetJSON(jsonLogs)
	c.logging.SetVerbose(verbose)
	return nil
}

// runOptions reads the task flags. --production only overrides the config
// file when given explicitly.
func runOptions(cmd *cobra.Command) app.RunOptions {
	var opts app.RunOptions
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.NoWatch, _ = cmd.Flags().GetBool("no-watch")
	if f := cmd.Flags().Lookup("production"); f != nil && f.Changed {
		production, _ := cmd.Flags().GetBool("production")
		opts.Production = &production
	}
	return opts
}

func (c *CLI) runTask(cmd *cobra.Command, task domain.Command) error {
	return c.app.Run(cmd.Context(), task, runOptions(cmd))
}
