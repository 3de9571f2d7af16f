package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate a configuration file without starting the daemon.

Examples:
  # Validate the default config
  modkitd config validate

  # Validate a specific file
  modkitd config validate --config /etc/modkit/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	if _, err := config.Load(configPath); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
	return nil
}
