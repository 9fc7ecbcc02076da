package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
)

func TestShouldAutoJSON(t *testing.T) {
	assert.True(t, shouldAutoJSON([]string{"restaurants", "-f", "catalog.yaml"}, false))
	assert.False(t, shouldAutoJSON([]string{"restaurants", "-f", "catalog.yaml", "--json"}, false))
	assert.False(t, shouldAutoJSON([]string{"completion", "zsh"}, false))
	assert.False(t, shouldAutoJSON([]string{"tui", "-f", "catalog.yaml"}, false))
	assert.False(t, shouldAutoJSON([]string{"--help"}, false))
	assert.False(t, shouldAutoJSON([]string{"restaurants", "-f", "catalog.yaml"}, true))
}

func TestFirstCommand_SkipsFlagValues(t *testing.T) {
	assert.Equal(t, "menu", firstCommand([]string{"--catalog", "catalog.yaml", "menu"}))
	assert.Equal(t, "tui", firstCommand([]string{"-r", "microdose", "tui"}))
	assert.Equal(t, "verify", firstCommand([]string{"--json", "verify", "latte"}))
}

func TestPrintQuickStart_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := printQuickStart(&buf, true)
	require.NoError(t, err)

	var payload quickStartJSON
	err = json.Unmarshal(buf.Bytes(), &payload)
	require.NoError(t, err)

	assert.Equal(t, "rittmatch", payload.Name)
	assert.NotEmpty(t, payload.Usage)
	assert.Len(t, payload.Examples, 3)
	assert.NotEmpty(t, payload.Commands)
	assert.Contains(t, payload.Usage, "verify")
}

func TestPrintCLIErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	err := printCLIErrorJSON(&buf, classifyCLIError(invalidArgsError("bad flag", "rittmatch --help")))
	require.NoError(t, err)

	var payload map[string]any
	err = json.Unmarshal(buf.Bytes(), &payload)
	require.NoError(t, err)

	errorObject, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INVALID_ARGS", errorObject["code"])
	assert.Equal(t, "bad flag", errorObject["message"])
	assert.EqualValues(t, ExitInvalidArgs, errorObject["exitCode"])
}

func TestClassifyCLIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"typed", invalidArgsError("bad"), ExitInvalidArgs},
		{"no match", &catalog.NoMatchError{Kind: catalog.KindRestaurant, Query: "taco hut"}, ExitNotFound},
		{"wrapped no match", fmt.Errorf("menu: %w", &catalog.NoMatchError{Kind: catalog.KindCategory, Query: "pies"}), ExitNotFound},
		{"upstream status", &catalog.FetchError{Op: "fetching restaurants", URL: "http://x", StatusCode: 502}, ExitUpstream},
		{"upstream transport", &catalog.FetchError{Op: "fetching restaurants", Err: errors.New("connection refused")}, ExitUpstream},
		{"invalid file", fmt.Errorf("%w: restaurant 2 has no id", catalog.ErrInvalid), ExitInvalidArgs},
		{"missing file", fmt.Errorf("catalog: open %q: %w", "nope.yaml", fs.ErrNotExist), ExitInvalidArgs},
		{"unknown", errors.New("no restaurant matches \"taco hut\""), ExitInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, classifyCLIError(tt.err).ExitCode)
		})
	}
}

func TestClassifyCLIError_UpstreamSuggestions(t *testing.T) {
	notFound := classifyCLIError(&catalog.FetchError{Op: "fetching restaurants", StatusCode: 404})
	assert.Equal(t, "UPSTREAM_ERROR", notFound.Code)
	assert.Contains(t, notFound.Suggestions[0], "--catalog-url")

	invalid := classifyCLIError(&catalog.FetchError{Op: "validating catalog", Err: fmt.Errorf("%w: no name", catalog.ErrInvalid)})
	assert.Equal(t, ExitUpstream, invalid.ExitCode)
	assert.Contains(t, invalid.Suggestions[0], "without an id or name")
}

func parseFlags(t *testing.T, args ...string) error {
	t.Helper()
	set := pflag.NewFlagSet("rittmatch", pflag.ContinueOnError)
	set.SetOutput(io.Discard)
	set.StringP("restaurant", "r", "", "Restaurant id, alias or spoken name")
	set.Float64("threshold", 0, "Base match threshold between 0 and 1")
	err := set.Parse(args)
	require.Error(t, err)
	return err
}

func TestClassifyCLIError_FlagErrors(t *testing.T) {
	unknown := classifyCLIError(parseFlags(t, "--restuarant", "bk"))
	assert.Equal(t, ExitInvalidArgs, unknown.ExitCode)
	assert.Equal(t, []string{"Try `--restaurant`."}, unknown.Suggestions)

	badValue := classifyCLIError(parseFlags(t, "--threshold", "high"))
	assert.Equal(t, ExitInvalidArgs, badValue.ExitCode)
	assert.Equal(t, []string{"--threshold: Base match threshold between 0 and 1"}, badValue.Suggestions)

	missing := classifyCLIError(parseFlags(t, "--threshold"))
	assert.Equal(t, ExitInvalidArgs, missing.ExitCode)
	assert.Contains(t, missing.Suggestions[0], "--threshold")

	shorthand := classifyCLIError(parseFlags(t, "-z"))
	assert.Equal(t, ExitInvalidArgs, shorthand.ExitCode)
	assert.Contains(t, shorthand.Suggestions[0], "shorthands")
}

func TestNoMatchError_SuggestsClosestAndListing(t *testing.T) {
	err := noMatchError(&catalog.NoMatchError{Kind: catalog.KindRestaurant, Query: "burgr palace", Closest: "Burger Barn", Score: 0.4})

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, []string{`Did you mean "Burger Barn"?`, "rittmatch restaurants"}, err.Suggestions)

	err = noMatchError(&catalog.NoMatchError{Kind: catalog.KindCategory, Query: "pies"})
	assert.Equal(t, []string{"rittmatch categories"}, err.Suggestions)
}

func TestRequireArgs(t *testing.T) {
	check := requireArgs(1)

	assert.NoError(t, check(matchCmd, []string{"latte"}))

	err := check(matchCmd, nil)
	var cliErr *cliError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, ExitInvalidArgs, cliErr.ExitCode)
	assert.Contains(t, cliErr.Message, "rittmatch match")
	require.NotEmpty(t, cliErr.Suggestions)
	assert.Contains(t, cliErr.Suggestions[0], "rittmatch match")
}

func TestRunUnknownCommand(t *testing.T) {
	err := runUnknownCommand(rootCmd, []string{"menus"})
	var cliErr *cliError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, ExitInvalidArgs, cliErr.ExitCode)
	assert.Equal(t, []string{"Did you mean `menu`?"}, cliErr.Suggestions)

	err = runUnknownCommand(rootCmd, []string{"xyzzy"})
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, `unknown command "xyzzy"`, cliErr.Message)
	assert.Len(t, cliErr.Suggestions, 2)
}
