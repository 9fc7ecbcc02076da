package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/Ikanga93/ritt-ai-assistant/internal/display"
)

var (
	flagMenuCategory string
	flagMenuQuery    string
	flagMenuSort     string
	flagMenuMaxPrice float64
	flagMenuLimit    int
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Browse the restaurant's menu",
	Example: `  rittmatch menu -f catalog.yaml -r microdose
  rittmatch menu -f catalog.yaml --category drinks --sort price
  rittmatch menu -f catalog.yaml --query latte --max-price 5 --json`,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)

	registerMenuFilterFlags(menuCmd.Flags())
}

func registerMenuFilterFlags(f *pflag.FlagSet) {
	f.StringVarP(&flagMenuCategory, "category", "c", "", "Filter by menu section (e.g., drinks, sides, coffee)")
	f.StringVarP(&flagMenuQuery, "query", "q", "", "Search item names")
	f.StringVar(&flagMenuSort, "sort", "", "Sort by name, price, price-desc or category")
	f.Float64Var(&flagMenuMaxPrice, "max-price", 0, "Only items at or below this price")
	f.IntVarP(&flagMenuLimit, "limit", "n", 0, "Limit number of results (0 = all)")
}

func validateSortMode() error {
	raw := strings.TrimSpace(flagMenuSort)
	if raw == "" || strings.EqualFold(raw, "menu") || catalog.NormalizeSortMode(raw) != catalog.SortMenu {
		return nil
	}
	return invalidArgsError(
		"invalid value for --sort (use name, price, price-desc or category)",
		"rittmatch menu --sort price",
		"rittmatch menu --sort name",
	)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	if err := validateSortMode(); err != nil {
		return err
	}
	if flagMenuMaxPrice < 0 || flagMenuLimit < 0 {
		return invalidArgsError("--max-price and --limit must not be negative", "rittmatch menu --max-price 5 --limit 10")
	}

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

	items = catalog.Filter(items, catalog.Options{
		Category: flagMenuCategory,
		Query:    flagMenuQuery,
		MaxPrice: flagMenuMaxPrice,
		Sort:     flagMenuSort,
		Limit:    flagMenuLimit,
	})
	if len(items) == 0 {
		return notFoundError(
			"no menu items match your filters",
			"Relax filters like --category/--query/--max-price.",
		)
	}

	if flagJSON {
		return display.PrintMenuJSON(cmd.OutOrStdout(), items)
	}
	display.PrintMenu(cmd.OutOrStdout(), items, s.restaurant.Name)
	return nil
}
