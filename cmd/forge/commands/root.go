// Package commands implements the CLI commands for the forge build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/build"
)

// CLI represents the command line interface for forge.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app. Extra commands are
// registered alongside the built-in ones; an extra command whose name matches
// a built-in replaces it.
func New(a *app.App, extra ...*cobra.Command) *CLI {
	rootCmd := &cobra.Command{
		Use:           "forge",
		Short:         "An incremental build tool for C and Go projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	overridden := make(map[string]struct{}, len(extra))
	for _, cmd := range extra {
		overridden[cmd.Name()] = struct{}{}
	}

	for _, cmd := range []*cobra.Command{
		c.newBuildCmd(),
		c.newCleanCmd(),
		c.newGraphCmd(),
		c.newVersionCmd(),
	} {
		if _, ok := overridden[cmd.Name()]; ok {
			continue
		}
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(extra...)

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

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
