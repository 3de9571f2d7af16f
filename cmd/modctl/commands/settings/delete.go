package settings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
	"github.com/modkit-io/modkit/internal/cli/prompt"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a setting",
	Long: `Delete one setting from the daemon.

Examples:
  modctl settings delete site_title
  modctl settings delete site_title --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	key := args[0]

	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete setting '%s'?", key), deleteForce)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	if err := cmdutil.GetClient().DeleteSetting(key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}

	fmt.Printf("Setting '%s' deleted\n", key)
	return nil
}
