package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/Ikanga93/ritt-ai-assistant/internal/display"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the menu sections of a restaurant",
	Example: `  rittmatch categories -f catalog.yaml -r microdose
  rittmatch categories -f catalog.yaml --json`,
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := s.selectRestaurant(cmd); err != nil {
		return err
	}

	items := s.restaurant.Items()
	if len(items) == 0 {
		return notFoundError(
			fmt.Sprintf("no menu found for %s", s.restaurant.Name),
			"Add menu sections to the catalog.",
		)
	}

	cats := catalog.Categories(items)

	if flagJSON {
		return display.PrintCategoriesJSON(cmd.OutOrStdout(), cats)
	}
	display.PrintCategories(cmd.OutOrStdout(), cats, s.restaurant.Name)
	return nil
}
