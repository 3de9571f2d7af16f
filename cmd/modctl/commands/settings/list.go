package settings

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	Long: `List all daemon settings.

Examples:
  # List as table
  modctl settings list

  # List as JSON
  modctl settings list -o json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	settings, err := cmdutil.GetClient().ListSettings()
	if err != nil {
		return fmt.Errorf("failed to list settings: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, settings, len(settings) == 0, "No settings found.", SettingsList(settings))
}
