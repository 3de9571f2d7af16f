// Package settings implements the settings subcommands for modctl.
package settings

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/pkg/apiclient"
)

// Cmd is the parent command for settings operations.
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage daemon settings",
	Long:  `Inspect and modify the settings persisted by the daemon.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(deleteCmd)
}

// SettingsList is a list of settings for table rendering.
type SettingsList []apiclient.Setting

// Headers implements TableRenderer.
func (sl SettingsList) Headers() []string {
	return []string{"KEY", "VALUE"}
}

// Rows implements TableRenderer.
func (sl SettingsList) Rows() [][]string {
	rows := make([][]string, 0, len(sl))
	for _, s := range sl {
		rows = append(rows, []string{s.Key, renderValue(s.Value)})
	}
	return rows
}

// renderValue formats a setting value for table display. Composite values
// are shown as compact JSON.
func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "-"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
