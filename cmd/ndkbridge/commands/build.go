package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile native libraries for all declared architectures and validate placement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variant, err := cmd.Flags().GetString("variant")
			if err != nil {
				return err
			}
			return c.app.Build(cmd.Context(), variant)
		},
	}
	cmd.Flags().String("variant", "debug", "Build variant (debug or release)")
	return cmd
}
