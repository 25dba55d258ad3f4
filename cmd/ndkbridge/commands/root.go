// Package commands implements the CLI commands for ndkbridge.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.spelunk.dev/ndkbridge/internal/app"
)

// CLI represents the command line interface for ndkbridge.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ndkbridge",
		Short:         "Builds native libraries for every packaged architecture before the packager runs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "ndkbridge.yaml", "Path to project file")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed("config") {
			return nil
		}
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		a.SetConfigPath(configPath)
		return nil
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCheckCmd())
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
