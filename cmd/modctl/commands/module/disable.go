package module

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
)

var disableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable a module",
	Long: `Disable a capability module. The change is persisted by the daemon
and takes effect on the next load pass.

Examples:
  modctl module disable gallery`,
	Args: cobra.ExactArgs(1),
	RunE: runDisable,
}

func runDisable(cmd *cobra.Command, args []string) error {
	name := args[0]

	if _, err := cmdutil.GetClient().DisableModule(name); err != nil {
		return fmt.Errorf("failed to disable module: %w", err)
	}

	fmt.Printf("Module '%s' disabled\n", name)
	return nil
}
