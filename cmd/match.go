package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/Ikanga93/ritt-ai-assistant/internal/display"
	"github.com/Ikanga93/ritt-ai-assistant/internal/fuzzy"
)

var (
	flagMatchAll   bool
	flagExplain    bool
	flagCandidates []string
)

var matchCmd = &cobra.Command{
	Use:   "match QUERY",
	Short: "Rank menu items (or given candidates) against a spoken query",
	Example: `  rittmatch match "capuccino" -f catalog.yaml
  rittmatch match "latte" -f catalog.yaml --all --explain
  rittmatch match "burgr" --candidate Burger --candidate "Veggie Burger" --json`,
	Args: requireArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	f := matchCmd.Flags()
	f.BoolVarP(&flagMatchAll, "all", "a", false, "Show every candidate above the threshold, best first")
	f.BoolVarP(&flagExplain, "explain", "e", false, "Show which scoring step produced each score")
	f.StringArrayVar(&flagCandidates, "candidate", nil, "Match against this text instead of the menu (repeatable)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	raw := strings.Join(args, " ")
	query := fuzzy.Normalize(raw)
	if query == "" {
		query = strings.ToLower(strings.TrimSpace(raw))
	}
	if query == "" {
		return invalidArgsError("query is empty", `rittmatch match "latte"`)
	}

	candidates := flagCandidates
	if len(candidates) == 0 {
		if err := s.selectRestaurant(cmd); err != nil {
			return err
		}
		candidates = catalog.Names(s.restaurant.Items())
	}

	threshold := fuzzy.DynamicThreshold(query, s.cfg.Threshold)
	var matches []fuzzy.MatchResult
	if flagMatchAll {
		matches = fuzzy.FindAllMatchesAbove(query, candidates, threshold)
	} else if best, ok := fuzzy.FindBestMatchThreshold(query, candidates, s.cfg.Threshold); ok {
		matches = []fuzzy.MatchResult{best}
	}
	s.log.Debug("matched",
		zap.String("query", query),
		zap.Float64("threshold", threshold),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(matches)),
	)

	if len(matches) == 0 {
		suggestions := []string{"Lower --threshold or try --all."}
		if ranked := fuzzy.FindAllMatchesAbove(query, candidates, 0); len(ranked) > 0 && ranked[0].Similarity > 0 {
			suggestions = append([]string{fmt.Sprintf("Closest: %q (%.2f)", ranked[0].MatchedText, ranked[0].Similarity)}, suggestions...)
		}
		return notFoundError(fmt.Sprintf("nothing matches %q", raw), suggestions...)
	}

	var steps []fuzzy.Step
	if flagExplain {
		steps = make([]fuzzy.Step, len(matches))
		for i, m := range matches {
			_, steps[i] = fuzzy.Explain(query, m.MatchedText)
		}
	}

	if flagJSON {
		return display.PrintMatchesJSON(cmd.OutOrStdout(), raw, threshold, matches, steps)
	}
	display.PrintMatches(cmd.OutOrStdout(), raw, matches, steps)
	return nil
}
