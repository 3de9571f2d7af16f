package module

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
	"github.com/modkit-io/modkit/pkg/apiclient"
)

var enableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable a module",
	Long: `Enable a capability module. The change is persisted by the daemon
and takes effect on the next load pass.

Examples:
  modctl module enable gallery`,
	Args: cobra.ExactArgs(1),
	RunE: runEnable,
}

func runEnable(cmd *cobra.Command, args []string) error {
	name := args[0]

	module, err := cmdutil.GetClient().EnableModule(name)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.IsForbidden() {
			return fmt.Errorf("module %q is locked: a license is required", name)
		}
		return fmt.Errorf("failed to enable module: %w", err)
	}

	fmt.Printf("Module '%s' enabled\n", module.Name)
	return nil
}
