// Package module implements the module subcommands for modctl.
package module

import (
	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
	"github.com/modkit-io/modkit/pkg/apiclient"
)

// Cmd is the parent command for module operations.
var Cmd = &cobra.Command{
	Use:   "module",
	Short: "Manage capability modules",
	Long:  `Inspect, enable, and disable the capability modules hosted by the daemon.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(infoCmd)
	Cmd.AddCommand(enableCmd)
	Cmd.AddCommand(disableCmd)
	Cmd.AddCommand(resetCmd)
	Cmd.AddCommand(categoriesCmd)
}

// ModuleList is a list of modules for table rendering.
type ModuleList []apiclient.Module

// Headers implements TableRenderer.
func (ml ModuleList) Headers() []string {
	return []string{"NAME", "CATEGORY", "ACTIVE", "COMPATIBLE", "PREMIUM"}
}

// Rows implements TableRenderer.
func (ml ModuleList) Rows() [][]string {
	rows := make([][]string, 0, len(ml))
	for _, m := range ml {
		rows = append(rows, []string{
			m.Name,
			cmdutil.EmptyOr(m.Category, "-"),
			cmdutil.BoolToYesNo(m.Active),
			cmdutil.BoolToYesNo(m.Compatible),
			cmdutil.BoolToYesNo(m.Premium),
		})
	}
	return rows
}
