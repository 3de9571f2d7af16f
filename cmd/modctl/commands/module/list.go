package module

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all modules",
	Long: `List every capability module known to the daemon.

Examples:
  # List as table
  modctl module list

  # List as JSON
  modctl module list -o json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	modules, err := cmdutil.GetClient().ListModules()
	if err != nil {
		return fmt.Errorf("failed to list modules: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, modules, len(modules) == 0, "No modules found.", ModuleList(modules))
}
