package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ikanga93/ritt-ai-assistant/internal/display"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize TEXT...",
	Short: "Show how transcribed text is normalized before matching",
	Example: `  rittmatch normalize "um can I get a LG latte"
  rittmatch normalize "Mac &amp; Cheese" "the quickie" --json`,
	Args: requireArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	if flagJSON {
		return display.PrintNormalizedJSON(cmd.OutOrStdout(), args)
	}
	display.PrintNormalized(cmd.OutOrStdout(), args)
	return nil
}
