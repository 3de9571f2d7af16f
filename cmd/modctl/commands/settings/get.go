package settings

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
	"github.com/modkit-io/modkit/internal/cli/output"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a setting value",
	Long: `Get the value of one setting.

Examples:
  modctl settings get active_modules
  modctl settings get active_modules -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	setting, err := cmdutil.GetClient().GetSetting(args[0])
	if err != nil {
		return fmt.Errorf("failed to get setting: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, setting, nil)
	}

	fmt.Println(renderValue(setting.Value))
	return nil
}
