package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ikanga93/ritt-ai-assistant/internal/display"
)

var restaurantsCmd = &cobra.Command{
	Use:   "restaurants",
	Short: "List the restaurants in the catalog",
	Long:  "List catalog restaurants with their ids and aliases. Use this to find a value for --restaurant.",
	Example: `  rittmatch restaurants -f catalog.yaml
  rittmatch restaurants --catalog-url http://localhost:8080 --json`,
	RunE: runRestaurants,
}

func init() {
	rootCmd.AddCommand(restaurantsCmd)
}

func runRestaurants(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := s.openCatalog(cmd); err != nil {
		return err
	}

	if flagJSON {
		return display.PrintRestaurantsJSON(cmd.OutOrStdout(), s.file.Restaurants)
	}
	display.PrintRestaurants(cmd.OutOrStdout(), s.file.Restaurants)
	return nil
}
