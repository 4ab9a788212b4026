package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newToolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool <name> [args...]",
		Short: "Run a toolchain binary against a definition",
		Long: "Run a toolchain binary (e.g. krun, kast, kprove) against one of the " +
			"project's definitions, forwarding stdio and the tool's exit code.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			definition, _ := cmd.Flags().GetString("definition")
			return c.app.Tool(cmd.Context(), projectFlag(cmd), args[0], definition, args[1:])
		},
	}
	cmd.Flags().StringP("definition", "d", "", "Definition alias (default: first declared)")
	return cmd
}
