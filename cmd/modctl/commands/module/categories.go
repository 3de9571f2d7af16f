package module

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/modkit-io/modkit/cmd/modctl/cmdutil"
	"github.com/modkit-io/modkit/internal/cli/output"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List module categories",
	Long: `List the categories modules are grouped under.

Examples:
  modctl module categories`,
	RunE: runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	categories, err := cmdutil.GetClient().ModuleCategories()
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	ids := make([]string, 0, len(categories))
	for id := range categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	table := output.NewTableData("ID", "TITLE")
	for _, id := range ids {
		table.AddRow(id, categories[id])
	}

	return cmdutil.PrintOutput(os.Stdout, categories, len(categories) == 0, "No categories found.", table)
}
