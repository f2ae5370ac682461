package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [targets...]",
		Short: "Build the specified targets, or everything",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, _ := cmd.Flags().GetBool("graph")
			if graph {
				return c.app.Graph(cmd.Context(), cmd.OutOrStdout())
			}

			force, _ := cmd.Flags().GetBool("force")
			release, _ := cmd.Flags().GetBool("release")
			ignoreFatal, _ := cmd.Flags().GetBool("ignore-fatal")
			jobs, _ := cmd.Flags().GetInt("jobs")
			return c.app.Build(cmd.Context(), args, app.BuildOptions{
				Force:       force,
				Release:     release,
				IgnoreFatal: ignoreFatal,
				Jobs:        jobs,
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Force rebuild, bypassing checksums")
	cmd.Flags().BoolP("release", "r", false, "Build with optimizations")
	cmd.Flags().BoolP("graph", "g", false, "Print the dependency graph instead of building")
	cmd.Flags().Bool("ignore-fatal", false, "Continue building past failed targets")
	cmd.Flags().IntP("jobs", "j", 1, "Number of concurrent build jobs")
	return cmd
}
