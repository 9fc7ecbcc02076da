package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
)

const (
	// ExitSuccess is returned when the command succeeds.
	ExitSuccess = 0
	// ExitNotFound is returned when a restaurant, menu item or match is not found.
	ExitNotFound = 1
	// ExitInvalidArgs is returned when the command input is invalid.
	ExitInvalidArgs = 2
	// ExitUpstream is returned when the catalog service fails.
	ExitUpstream = 3
	// ExitInternal is returned for unexpected internal failures.
	ExitInternal = 4
)

type cliError struct {
	Code        string
	Message     string
	Suggestions []string
	ExitCode    int
}

func (e *cliError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidArgsError(message string, suggestions ...string) *cliError {
	return &cliError{Code: "INVALID_ARGS", Message: message, Suggestions: suggestions, ExitCode: ExitInvalidArgs}
}

func notFoundError(message string, suggestions ...string) error {
	return &cliError{Code: "NOT_FOUND", Message: message, Suggestions: suggestions, ExitCode: ExitNotFound}
}

func upstreamError(message string, suggestions ...string) *cliError {
	return &cliError{Code: "UPSTREAM_ERROR", Message: message, Suggestions: suggestions, ExitCode: ExitUpstream}
}

type jsonErrorPayload struct {
	Error jsonErrorBody `json:"error"`
}

type jsonErrorBody struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	ExitCode    int      `json:"exitCode"`
}

func printCLIErrorJSON(w io.Writer, err *cliError) error {
	if err == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(jsonErrorPayload{Error: jsonErrorBody(*err)})
}

func formatCLIErrorText(err *cliError) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "error[%s]: %s", strings.ToLower(err.Code), err.Message)
	if len(err.Suggestions) > 0 {
		b.WriteString("\nsuggestions:")
		for _, s := range err.Suggestions {
			b.WriteString("\n  " + s)
		}
	}
	return b.String()
}

// classifyCLIError turns err into the CLI's error shape. Catalog and flag
// parsing failures are recognized by type; anything else is internal.
func classifyCLIError(err error) *cliError {
	if err == nil {
		return nil
	}

	var (
		typed     *cliError
		miss      *catalog.NoMatchError
		fetch     *catalog.FetchError
		notExist  *pflag.NotExistError
		needValue *pflag.ValueRequiredError
		badValue  *pflag.InvalidValueError
		badSyntax *pflag.InvalidSyntaxError
	)
	switch {
	case errors.As(err, &typed):
		return typed

	case errors.As(err, &miss):
		return noMatchError(miss)

	case errors.As(err, &fetch):
		suggestions := []string{"Retry in a moment."}
		switch {
		case errors.Is(err, catalog.ErrInvalid):
			suggestions = []string{"The catalog service returned restaurants without an id or name."}
		case fetch.StatusCode == 404:
			suggestions = []string{"Check --catalog-url; it should point at the service root that serves /restaurants."}
		}
		return upstreamError(err.Error(), suggestions...)

	case errors.Is(err, catalog.ErrInvalid):
		return invalidArgsError(err.Error(),
			"Each restaurant needs an id and a name; see `rittmatch --help` for the catalog layout.")

	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return invalidArgsError(err.Error(), "Check the --catalog or --config path.")

	case errors.As(err, &notExist):
		name := notExist.GetSpecifiedName()
		if notExist.GetSpecifiedShortnames() != "" {
			return invalidArgsError(err.Error(), "Run `rittmatch --help` for the available shorthands.")
		}
		if suggestion, ok := resolveFlagName(name); ok && suggestion != name {
			return invalidArgsError(err.Error(), fmt.Sprintf("Try `--%s`.", suggestion))
		}
		return invalidArgsError(err.Error(), "Run `rittmatch --help` for the available flags.")

	case errors.As(err, &needValue):
		return invalidArgsError(err.Error(), flagUsageHint(needValue.GetFlag()))

	case errors.As(err, &badValue):
		return invalidArgsError(err.Error(), flagUsageHint(badValue.GetFlag()))

	case errors.As(err, &badSyntax):
		return invalidArgsError(err.Error(), "Flags look like --name value or --name=value.")

	default:
		return &cliError{
			Code:        "INTERNAL_ERROR",
			Message:     strings.TrimSpace(err.Error()),
			Suggestions: []string{"Run `rittmatch --help` for usage details."},
			ExitCode:    ExitInternal,
		}
	}
}

// noMatchError offers the closest name the resolver saw and the command that
// lists every candidate.
func noMatchError(miss *catalog.NoMatchError) *cliError {
	var suggestions []string
	if miss.Closest != "" {
		suggestions = append(suggestions, fmt.Sprintf("Did you mean %q?", miss.Closest))
	}
	switch miss.Kind {
	case catalog.KindCategory:
		suggestions = append(suggestions, "rittmatch categories")
	default:
		suggestions = append(suggestions, "rittmatch restaurants")
	}
	return &cliError{Code: "NOT_FOUND", Message: miss.Error(), Suggestions: suggestions, ExitCode: ExitNotFound}
}

func flagUsageHint(f *pflag.Flag) string {
	if f == nil {
		return "Run `rittmatch --help` for usage details."
	}
	return fmt.Sprintf("--%s: %s", f.Name, f.Usage)
}

// requireArgs rejects a call with fewer than n positional arguments, pointing
// at the command's first example.
func requireArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) >= n {
			return nil
		}
		var suggestions []string
		if example, _, _ := strings.Cut(strings.TrimSpace(cmd.Example), "\n"); example != "" {
			suggestions = append(suggestions, example)
		}
		return invalidArgsError("missing arguments; usage: "+cmd.UseLine(), suggestions...)
	}
}

// runUnknownCommand handles positional arguments given to the root command.
// With none it prints the quick start.
func runUnknownCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return printQuickStart(cmd.OutOrStdout(), flagJSON)
	}
	msg := fmt.Sprintf("unknown command %q", args[0])
	if suggestion, ok := resolveCommand(args[0]); ok {
		return invalidArgsError(msg, fmt.Sprintf("Did you mean `%s`?", suggestion))
	}
	return invalidArgsError(msg,
		`rittmatch verify -f catalog.yaml "2 lattes"`,
		"rittmatch restaurants -f catalog.yaml",
	)
}

func isTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func hasJSONPreference(args []string) bool {
	for _, arg := range args {
		if arg == "--json" || strings.HasPrefix(arg, "--json=") {
			return true
		}
	}
	return false
}

func hasHelpRequest(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

// shouldAutoJSON switches piped output to JSON. Help, completion scripts and
// the interactive session keep their own formats.
func shouldAutoJSON(args []string, stdoutIsTTY bool) bool {
	if stdoutIsTTY || len(args) == 0 {
		return false
	}
	if hasJSONPreference(args) || hasHelpRequest(args) {
		return false
	}
	switch firstCommand(args) {
	case "completion", "help", "tui":
		return false
	default:
		return true
	}
}

// firstCommand returns the first positional argument, skipping flag values.
func firstCommand(args []string) string {
	flags := commandLineFlags()
	expectingValue := false
	for _, arg := range args {
		switch {
		case expectingValue:
			expectingValue = false
		case arg == "--":
			return ""
		case strings.HasPrefix(arg, "--"):
			name, rest := splitFlag(strings.TrimPrefix(arg, "--"))
			expectingValue = rest == "" && flags.long[name].requiresValue
		case len(arg) == 2 && arg[0] == '-':
			expectingValue = flags.short[arg[1]].requiresValue
		case !strings.HasPrefix(arg, "-"):
			return arg
		}
	}
	return ""
}

type quickStartJSON struct {
	Name     string   `json:"name"`
	Usage    string   `json:"usage"`
	Commands []string `json:"commands"`
	Examples []string `json:"examples"`
}

func printQuickStart(w io.Writer, asJSON bool) error {
	help := quickStartJSON{
		Name:  rootCmd.Name(),
		Usage: fmt.Sprintf("%s [%s] [flags]", rootCmd.Name(), strings.Join(commandNames(), "|")),
		Examples: []string{
			`rittmatch verify -f catalog.yaml -r microdose "two lattes no foam"`,
			`rittmatch match "capuccino" -f catalog.yaml --explain`,
			"rittmatch restaurants -f catalog.yaml",
		},
	}
	for _, c := range rootCmd.Commands() {
		if c.IsAvailableCommand() {
			help.Commands = append(help.Commands, fmt.Sprintf("%-12s %s", c.Name(), c.Short))
		}
	}

	if asJSON {
		return json.NewEncoder(w).Encode(help)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\nusage: %s\n\ncommands:\n", help.Name, rootCmd.Short, help.Usage)
	for _, c := range help.Commands {
		fmt.Fprintf(&b, "  %s\n", c)
	}
	b.WriteString("\nexamples:\n")
	for _, e := range help.Examples {
		fmt.Fprintf(&b, "  %s\n", e)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
