package module

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
	"github.com/modkit-io/modkit/internal/cli/output"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show module details",
	Long: `Show the full status of one capability module.

Examples:
  modctl module info gallery
  modctl module info gallery -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	module, err := cmdutil.GetClient().GetModule(args[0])
	if err != nil {
		return fmt.Errorf("failed to get module: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, module, nil)
	}

	generations := make([]string, len(module.Generations))
	copy(generations, module.Generations)

	output.SimpleTable(os.Stdout, [][2]string{
		{"Name", module.Name},
		{"Category", cmdutil.EmptyOr(module.CategoryTitle, "-")},
		{"Generations", strings.Join(generations, ", ")},
		{"Active", cmdutil.BoolToYesNo(module.Active)},
		{"Default active", cmdutil.BoolToYesNo(module.DefaultActive)},
		{"Compatible", cmdutil.BoolToYesNo(module.Compatible)},
		{"Requirements met", cmdutil.BoolToYesNo(module.RequirementsMet)},
		{"Premium", cmdutil.BoolToYesNo(module.Premium)},
	})
	return nil
}
