package settings

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
)

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting value",
	Long: `Set the value of one setting. The value is parsed as JSON when
possible, so numbers, booleans, and arrays round-trip with their types;
anything else is stored as a string.

Examples:
  modctl settings set site_title "My Site"
  modctl settings set retry_limit 3
  modctl settings set features '["a","b"]'`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	// Typed values come in as JSON; fall back to the literal string.
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}

	setting, err := cmdutil.GetClient().SetSetting(key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}

	fmt.Printf("Setting '%s' updated\n", setting.Key)
	return nil
}
