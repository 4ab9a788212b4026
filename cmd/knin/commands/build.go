package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [-- ninja args...]",
		Short: "Generate the build file and invoke ninja on it",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return c.app.Build(cmd.Context(), projectFlag(cmd), output, args)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Path of the generated build file (default: <build dir>/build.ninja)")
	return cmd
}
