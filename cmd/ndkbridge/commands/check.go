package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Re-validate artifact placement without compiling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variant, err := cmd.Flags().GetString("variant")
			if err != nil {
				return err
			}
			return c.app.Check(cmd.Context(), variant)
		},
	}
	cmd.Flags().String("variant", "debug", "Build variant (debug or release)")
	return cmd
}
