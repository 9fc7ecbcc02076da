package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ikanga93/ritt-ai-assistant/internal/display"
	"github.com/Ikanga93/ritt-ai-assistant/internal/order"
)

var flagLinesFile string

var verifyCmd = &cobra.Command{
	Use:   "verify [LINE...]",
	Short: "Verify order lines against the restaurant's menu",
	Long: "Verify each requested line against the selected restaurant's menu.\n" +
		"A line may start with a quantity (2, 2x, x2, two) and carry modifiers\n" +
		"(\"latte no foam\"). Lines with no menu item, like \"extra napkins\", are kept\n" +
		"as special instructions. The subtotal counts verified lines only.",
	Example: `  rittmatch verify -f catalog.yaml "two lattes no foam" "a blueberry muffin"
  rittmatch verify -f catalog.yaml -r "micro dose" --lines order.yaml
  echo '- 2 americano' | rittmatch verify -f catalog.yaml --lines - --json`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&flagLinesFile, "lines", "l", "", "YAML or JSON file of order lines (- for stdin)")
}

func requestedLines(cmd *cobra.Command, args []string) ([]order.RequestedLine, error) {
	lines := make([]order.RequestedLine, 0, len(args))
	if flagLinesFile != "" {
		loaded, err := order.LoadLinesFile(flagLinesFile, cmd.InOrStdin())
		if err != nil {
			return nil, invalidArgsError(err.Error(), "Each line is a string (\"2 lattes\") or a {name, quantity} mapping.")
		}
		lines = append(lines, loaded...)
	}
	for _, arg := range args {
		lines = append(lines, order.ParseLine(arg))
	}
	if len(lines) == 0 {
		return nil, invalidArgsError(
			"no order lines given",
			`rittmatch verify "2 lattes" "extra napkins"`,
			"rittmatch verify --lines order.yaml",
		)
	}
	return lines, nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	lines, err := requestedLines(cmd, args)
	if err != nil {
		return err
	}
	if err := s.selectRestaurant(cmd); err != nil {
		return err
	}

	result := order.Verify(lines, s.restaurant.Items(), s.cfg.Threshold)

	verified, special, unverified := display.Tally(result)
	s.log.Info("order verified",
		zap.String("restaurant", s.restaurant.ID),
		zap.Int("verified", verified),
		zap.Int("special", special),
		zap.Int("unverified", unverified),
		zap.Float64("subtotal", order.Subtotal(result)),
	)
	for _, l := range result {
		if l.Status() == order.StatusUnverified {
			s.log.Debug("line not on menu", zap.String("name", l.Name), zap.Float64("confidence", l.Confidence), zap.String("suggestion", l.Suggestion))
		}
	}

	if flagJSON {
		return display.PrintOrderJSON(cmd.OutOrStdout(), result, s.restaurant.ID)
	}
	display.PrintOrder(cmd.OutOrStdout(), result, s.restaurant.Name)
	return nil
}
