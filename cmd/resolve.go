package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/Ikanga93/ritt-ai-assistant/internal/display"
)

var flagResolveKind = string(catalog.KindRestaurant)

var resolveCmd = &cobra.Command{
	Use:   "resolve QUERY",
	Short: "Resolve a spoken restaurant or menu section name",
	Long: "Resolve a name through the tiers id, alias, substring, fuzzy and sounds-like,\n" +
		"and report which tier matched.",
	Example: `  rittmatch resolve "micro dose" -f catalog.yaml
  rittmatch resolve "mac donalds" -f catalog.yaml --json
  rittmatch resolve drinks -f catalog.yaml -r microdose --kind category`,
	Args: requireArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&flagResolveKind, "kind", "k", string(catalog.KindRestaurant), "What to resolve: restaurant or category")
}

func runResolve(cmd *cobra.Command, args []string) error {
	kind := catalog.Kind(strings.ToLower(strings.TrimSpace(flagResolveKind)))
	if kind != catalog.KindRestaurant && kind != catalog.KindCategory {
		return invalidArgsError(
			"invalid value for --kind (use restaurant or category)",
			`rittmatch resolve "micro dose" --kind restaurant`,
			"rittmatch resolve drinks --kind category",
		)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	resolver := catalog.NewResolver(s.cfg.Threshold)

	var res catalog.Resolution
	switch kind {
	case catalog.KindCategory:
		if err := s.selectRestaurant(cmd); err != nil {
			return err
		}
		_, res, err = resolver.LookupCategory(query, s.restaurant.CategoryNames())
	default:
		if err := s.openCatalog(cmd); err != nil {
			return err
		}
		_, res, err = resolver.LookupRestaurant(query, s.file.Restaurants)
	}
	if err != nil {
		return err
	}
	s.log.Info("resolved", zap.String("kind", string(kind)), zap.String("name", res.Name), zap.String("method", string(res.Method)))

	if flagJSON {
		return display.PrintResolutionJSON(cmd.OutOrStdout(), query, kind, res)
	}
	display.PrintResolution(cmd.OutOrStdout(), query, kind, res)
	return nil
}
