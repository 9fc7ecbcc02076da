package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/Ikanga93/ritt-ai-assistant/internal/display"
	"github.com/Ikanga93/ritt-ai-assistant/internal/order"
)

var flagPlain bool

var tuiCmd = &cobra.Command{
	Use:   "tui [LINE...]",
	Short: "Take an order interactively in the terminal",
	Long: "Type order lines one at a time and watch each one get verified against the menu.\n" +
		"Lines given as arguments start the order. With --plain the session reads lines\n" +
		"from stdin instead of drawing a full-screen interface.",
	Example: `  rittmatch tui -f catalog.yaml -r "micro dose"
  rittmatch tui -f catalog.yaml -r bk "2 whoppers"
  printf '2 lattes\nextra napkins\n' | rittmatch tui -f catalog.yaml --plain`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&flagPlain, "plain", false, "Line-by-line session on stdin and stdout")
}

// orderSession verifies lines one by one against a fixed menu.
type orderSession struct {
	restaurant catalog.Restaurant
	items      []catalog.Entry
	threshold  float64
	log        *zap.Logger
}

func newOrderSession(r catalog.Restaurant, threshold float64, logger *zap.Logger) *orderSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderSession{restaurant: r, items: r.Items(), threshold: threshold, log: logger}
}

func (o *orderSession) verify(req order.RequestedLine) order.VerifiedLine {
	line := order.Verify([]order.RequestedLine{req}, o.items, o.threshold)[0]
	o.log.Debug("line verified", zap.String("request", req.Name), zap.String("status", string(line.Status())), zap.Float64("confidence", line.Confidence))
	return line
}

func (o *orderSession) verifyText(text string) (order.RequestedLine, order.VerifiedLine) {
	req := order.ParseLine(text)
	return req, o.verify(req)
}

func runTUI(cmd *cobra.Command, args []string) error {
	interactive := isInteractiveSession(cmd.InOrStdin(), cmd.OutOrStdout())
	if !flagJSON && !flagPlain && !interactive {
		return invalidArgsError(
			"`rittmatch tui` requires an interactive terminal",
			"Use `rittmatch tui --plain` to read lines from stdin.",
			"Use `rittmatch verify \"2 lattes\" --json` in pipelines.",
		)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	s.quiet = !flagPlain
	if err := s.selectRestaurant(cmd); err != nil {
		return err
	}
	session := newOrderSession(*s.restaurant, s.cfg.Threshold, s.log)

	if flagJSON {
		lines := make([]order.VerifiedLine, 0, len(args))
		for _, arg := range args {
			_, line := session.verifyText(arg)
			lines = append(lines, line)
		}
		return display.PrintOrderJSON(cmd.OutOrStdout(), lines, s.restaurant.ID)
	}

	if flagPlain {
		return runLineSession(cmd.OutOrStdout(), cmd.InOrStdin(), session, args)
	}

	model := newOrderTUIModel(tuiLoadConfig{session: session, initialLines: args})
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	if m, ok := final.(orderTUIModel); ok && len(m.results) > 0 {
		display.PrintOrder(cmd.OutOrStdout(), m.results, s.restaurant.Name)
	}
	return nil
}

func isInteractiveSession(stdin io.Reader, stdout io.Writer) bool {
	inputFile, ok := stdin.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(inputFile.Fd())) {
		return false
	}
	return isTTY(stdout)
}

// runLineSession reads one order line per input line until EOF or "done".
// "undo" drops the last line and "clear" starts over.
func runLineSession(out io.Writer, in io.Reader, session *orderSession, initial []string) error {
	var lines []order.VerifiedLine
	add := func(text string) {
		_, line := session.verifyText(text)
		lines = append(lines, line)
		display.PrintLine(out, line)
	}

	fmt.Fprintf(out, "rittmatch | %s | %d menu items\n", session.restaurant.Name, len(session.items))
	fmt.Fprint(out, "commands: <order line> | undo | clear | done\n\n")
	for _, text := range initial {
		add(text)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(text) {
		case "":
			continue
		case "q", "quit", "exit", "done":
			display.PrintOrder(out, lines, session.restaurant.Name)
			return nil
		case "undo":
			if len(lines) > 0 {
				lines = lines[:len(lines)-1]
			}
			fmt.Fprintf(out, "%d lines\n", len(lines))
		case "clear":
			lines = nil
			fmt.Fprintln(out, "order cleared")
		default:
			add(text)
		}
	}
	fmt.Fprintln(out)
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading order lines: %w", err)
	}
	display.PrintOrder(out, lines, session.restaurant.Name)
	return nil
}
