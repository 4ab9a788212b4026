package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the ninja build file from the project description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			_, err := c.app.Generate(projectFlag(cmd), output)
			return err
		},
	}
	cmd.Flags().StringP("output", "o", "", "Path of the generated build file (default: <build dir>/build.ninja)")
	return cmd
}
