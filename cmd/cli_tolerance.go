package cmd

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Ikanga93/ritt-ai-assistant/internal/fuzzy"
)

const (
	// cliMatchBase is the base threshold for correcting a mistyped command or
	// flag name. fuzzy.DynamicThreshold raises it for short tokens.
	cliMatchBase = 0.7
	// cliMatchMargin is how far the best name must lead the runner-up.
	cliMatchMargin = 0.05
)

// flagAliases maps words people reach for onto the flag they mean.
var flagAliases = map[string]string{
	"file":       "catalog",
	"menu-file":  "catalog",
	"url":        "catalog-url",
	"store":      "restaurant",
	"place":      "restaurant",
	"cutoff":     "threshold",
	"min-score":  "threshold",
	"verbosity":  "log-level",
	"loglevel":   "log-level",
	"order":      "lines",
	"section":    "category",
	"search":     "query",
	"budget":     "max-price",
	"max":        "limit",
	"candidates": "candidate",
}

type flagSpec struct {
	requiresValue bool
}

// cliFlags indexes every flag registered anywhere in the command tree.
type cliFlags struct {
	long  map[string]flagSpec
	short map[byte]flagSpec
}

// commandLineFlags collects the flags of rootCmd and its subcommands. cobra
// adds --help lazily, so it is seeded here.
func commandLineFlags() cliFlags {
	flags := cliFlags{
		long:  map[string]flagSpec{"help": {}},
		short: map[byte]flagSpec{'h': {}},
	}
	var walk func(*cobra.Command)
	walk = func(c *cobra.Command) {
		for _, set := range []*pflag.FlagSet{c.PersistentFlags(), c.Flags()} {
			set.VisitAll(func(f *pflag.Flag) {
				spec := flagSpec{requiresValue: f.NoOptDefVal == ""}
				if _, seen := flags.long[f.Name]; !seen {
					flags.long[f.Name] = spec
				}
				if len(f.Shorthand) == 1 {
					if _, seen := flags.short[f.Shorthand[0]]; !seen {
						flags.short[f.Shorthand[0]] = spec
					}
				}
			})
		}
		for _, child := range c.Commands() {
			walk(child)
		}
	}
	walk(rootCmd)
	return flags
}

// commandNames lists the subcommands of rootCmd, including the help and
// completion commands cobra only attaches during Execute.
func commandNames() []string {
	names := map[string]bool{"help": true, "completion": true}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	return sortedKeys(names)
}

// cliToken is one argument after correction.
type cliToken struct {
	text       string
	note       string
	flag       bool
	takesValue bool
	command    bool
}

// normalizeCLIArgs repairs flag syntax, flag aliases and misspelled names
// before cobra sees the arguments. It returns one note per rewrite.
func normalizeCLIArgs(args []string) ([]string, []string) {
	flags := commandLineFlags()
	out := make([]string, 0, len(args))
	var notes []string

	command := ""
	nestedOpen := false
	expectingValue := false
	for i, tok := range args {
		if expectingValue {
			out = append(out, tok)
			expectingValue = false
			continue
		}
		if tok == "--" {
			return append(out, args[i:]...), notes
		}

		canBeCommand := command == "" || nestedOpen
		bareFlags := command == "" || bareFlagRewriteAllowed(command)
		t := flags.classifyToken(tok, canBeCommand, bareFlags)
		if t.note != "" {
			notes = append(notes, t.note)
		}
		out = append(out, t.text)

		switch {
		case t.command && command == "":
			command = t.text
			nestedOpen = allowsNestedCommandArg(command)
		case t.command:
			nestedOpen = false
		case t.takesValue:
			expectingValue = true
		}
	}
	return out, notes
}

func (f cliFlags) classifyToken(tok string, canBeCommand, bareFlags bool) cliToken {
	switch {
	case strings.HasPrefix(tok, "--"):
		return f.flagToken(tok, strings.TrimPrefix(tok, "--"))
	case len(tok) == 2 && tok[0] == '-':
		spec, ok := f.short[tok[1]]
		return cliToken{text: tok, flag: true, takesValue: ok && spec.requiresValue}
	case strings.HasPrefix(tok, "-"):
		return f.flagToken(tok, strings.TrimPrefix(tok, "-"))
	}

	if name, _, ok := strings.Cut(tok, "="); ok && isPlainWord(name) {
		if _, known := f.resolve(name); known {
			return f.flagToken(tok, tok)
		}
	}

	if canBeCommand {
		if corrected, ok := resolveCommand(tok); ok {
			t := cliToken{text: corrected, command: true}
			if corrected != tok {
				t.note = fmt.Sprintf("interpreted command `%s` as `%s`; use `%s` next time.", tok, corrected, corrected)
			}
			return t
		}
	}

	// A bare word is only read as a flag when it names one outright; near
	// misses are more likely values.
	if bareFlags {
		if canonical, ok := f.exact(tok); ok {
			return f.flagToken(tok, canonical)
		}
	}
	return cliToken{text: tok}
}

// flagToken rewrites body, a flag with its dashes removed, to the canonical
// --name or --name=value form.
func (f cliFlags) flagToken(tok, body string) cliToken {
	name, value, hasValue := strings.Cut(body, "=")
	canonical, ok := f.resolve(name)
	if !ok {
		return cliToken{text: tok, flag: true}
	}

	text := "--" + canonical
	if hasValue {
		text += "=" + value
	}
	t := cliToken{text: text, flag: true, takesValue: !hasValue && f.long[canonical].requiresValue}
	if text != tok {
		t.note = fmt.Sprintf("interpreted `%s` as `%s`; use `%s` next time.", tok, text, text)
	}
	return t
}

func bareFlagRewriteAllowed(command string) bool {
	// Flag-only commands. The others take spoken text as arguments, where
	// "all" or "no" must stay words.
	switch command {
	case "menu", "categories", "restaurants":
		return true
	default:
		return false
	}
}

func allowsNestedCommandArg(command string) bool {
	// These commands accept another command token as a positional argument.
	switch command {
	case "help", "completion":
		return true
	default:
		return false
	}
}

func flagSpelling(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
}

// exact resolves raw when it is a flag name or an alias.
func (f cliFlags) exact(raw string) (string, bool) {
	name := flagSpelling(raw)
	if canonical, ok := flagAliases[name]; ok {
		return canonical, true
	}
	if _, ok := f.long[name]; ok {
		return name, true
	}
	return "", false
}

// resolve is exact with a fallback to the closest flag name.
func (f cliFlags) resolve(raw string) (string, bool) {
	if canonical, ok := f.exact(raw); ok {
		return canonical, true
	}
	return suggestName(flagSpelling(raw), sortedKeys(f.long))
}

func resolveFlagName(raw string) (string, bool) {
	return commandLineFlags().resolve(raw)
}

// resolveCommand maps raw to a command name. Only plain words are
// considered, so paths and quantities are never taken for commands.
func resolveCommand(raw string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if !isPlainWord(name) {
		return "", false
	}
	names := commandNames()
	if slices.Contains(names, name) {
		return name, true
	}
	return suggestName(name, names)
}

// suggestName returns the name raw most likely misspells. It declines when
// no name clears the threshold or two names score too close to call.
func suggestName(raw string, names []string) (string, bool) {
	ranked := fuzzy.FindAllMatchesAbove(raw, names, fuzzy.DynamicThreshold(raw, cliMatchBase))
	if len(ranked) == 0 {
		return "", false
	}
	if len(ranked) > 1 && ranked[0].Similarity-ranked[1].Similarity < cliMatchMargin {
		return "", false
	}
	return ranked[0].MatchedText, true
}

func isPlainWord(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-'
	}) < 0
}

func splitFlag(value string) (string, string) {
	name, rest, ok := strings.Cut(value, "=")
	if !ok {
		return value, ""
	}
	return name, "=" + rest
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
