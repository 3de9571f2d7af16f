package module

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
	"github.com/modkit-io/modkit/internal/cli/prompt"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset modules to their defaults",
	Long: `Restore the default active/inactive partition, discarding any manual
enable and disable decisions.

Examples:
  # Reset with confirmation prompt
  modctl module reset

  # Reset without prompting
  modctl module reset --force`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	confirmed, err := prompt.ConfirmWithForce("Reset all modules to defaults?", resetForce)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	modules, err := cmdutil.GetClient().ResetModules()
	if err != nil {
		return fmt.Errorf("failed to reset modules: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, modules, len(modules) == 0, "No modules found.", ModuleList(modules))
}
