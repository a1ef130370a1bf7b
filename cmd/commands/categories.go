package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/internal/cli"
)

// NewCategoriesCommand creates the categories command
func NewCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "List the catalog categories",
		Args:    cobra.NoArgs,
		RunE:    runCategories,
	}
}

func runCategories(cmd *cobra.Command, args []string) error {
	categories, err := rt.Service.Categories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	if output().IsStructured() {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, map[string][]string{"categories": categories})
	}

	if len(categories) == 0 {
		cli.PrintInfo("No categories found")
		return nil
	}
	for _, c := range categories {
		fmt.Fprintln(cmd.OutOrStdout(), c)
	}
	return nil
}
