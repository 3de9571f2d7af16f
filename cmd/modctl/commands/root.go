// Package commands implements the CLI commands for the modctl client.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
	modulecmd "github.com/modkit-io/modkit/cmd/modctl/commands/module"
	settingscmd "github.com/modkit-io/modkit/cmd/modctl/commands/settings"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "modctl",
	Short: "modctl - Remote management client for modkitd",
	Long: `modctl is the command-line client for managing a modkitd daemon remotely.

Use this tool to enable, disable, and inspect capability modules and to
manage daemon settings through the REST API.

Use "modctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Sync flags to cmdutil.Flags for subcommands
		cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().String("server", cmdutil.DefaultServerURL, "Server URL")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(modulecmd.Cmd)
	rootCmd.AddCommand(settingscmd.Cmd)
}
