package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/Ikanga93/ritt-ai-assistant/internal/config"
	"github.com/Ikanga93/ritt-ai-assistant/internal/display"
	"github.com/Ikanga93/ritt-ai-assistant/internal/logging"
)

var (
	flagCatalog    string
	flagCatalogURL string
	flagRestaurant string
	flagThreshold  float64
	flagConfig     string
	flagLogLevel   string
	flagJSON       bool
)

var rootCmd = &cobra.Command{
	Use:   "rittmatch",
	Short: "Match spoken restaurant orders against a menu",
	Long: "CLI tool that verifies voice-transcribed order lines against a restaurant menu.\n" +
		"Lines are normalized, split into item and modifiers, and fuzzy-matched to menu items;\n" +
		"requests like \"extra napkins\" are kept as special instructions.\n\n" +
		"Agent-friendly mode: minor syntax issues are auto-corrected when intent is clear " +
		"(for example: -catalog menu.yaml, restaurant=microdose, --treshold 0.6).",
	Example: `  rittmatch verify -f catalog.yaml -r "micro dose" "two lattes no foam" "extra napkins"
  rittmatch match "capuccino" -f catalog.yaml --explain
  rittmatch normalize "um can I get a LG mac &amp; cheese"
  rittmatch resolve "burgr king" -f catalog.yaml
  rittmatch menu -f catalog.yaml -r microdose --category drinks --sort price`,
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	// Set here: runUnknownCommand reads rootCmd.
	rootCmd.Args = cobra.ArbitraryArgs
	rootCmd.RunE = runUnknownCommand

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagCatalog, "catalog", "f", "", "Catalog file (YAML or JSON)")
	pf.StringVar(&flagCatalogURL, "catalog-url", "", "Catalog service base URL")
	pf.StringVarP(&flagRestaurant, "restaurant", "r", "", "Restaurant id, alias or spoken name")
	pf.Float64VarP(&flagThreshold, "threshold", "t", 0, "Base match threshold between 0 and 1")
	pf.StringVar(&flagConfig, "config", "", "Config file (YAML)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")
}

// Execute runs the root command.
func Execute() {
	os.Exit(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	resetCLIState()

	normalizedArgs, notes := normalizeCLIArgs(args)
	for _, note := range notes {
		fmt.Fprintf(stderr, "note: %s\n", note)
	}

	if len(normalizedArgs) == 0 {
		if err := printQuickStart(stdout, !isTTY(stdout)); err != nil {
			cliErr := classifyCLIError(err)
			fmt.Fprintln(stderr, formatCLIErrorText(cliErr))
			return cliErr.ExitCode
		}
		return ExitSuccess
	}

	if shouldAutoJSON(normalizedArgs, isTTY(stdout)) {
		normalizedArgs = append(normalizedArgs, "--json")
	}

	setCommandIO(rootCmd, stdout, stderr)
	rootCmd.SetArgs(normalizedArgs)

	if err := rootCmd.Execute(); err != nil {
		cliErr := classifyCLIError(err)
		if hasJSONPreference(normalizedArgs) {
			if jerr := printCLIErrorJSON(stderr, cliErr); jerr != nil {
				fmt.Fprintln(stderr, formatCLIErrorText(classifyCLIError(jerr)))
				return ExitInternal
			}
		} else {
			fmt.Fprintln(stderr, formatCLIErrorText(cliErr))
		}
		return cliErr.ExitCode
	}
	return ExitSuccess
}

func setCommandIO(cmd *cobra.Command, stdout, stderr io.Writer) {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	for _, child := range cmd.Commands() {
		setCommandIO(child, stdout, stderr)
	}
}

func resetCLIState() {
	// cobra keeps flag values and Changed marks between Execute calls on the
	// same tree, including the lazily added --help.
	resetFlags(rootCmd)
}

func resetFlags(cmd *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// session is everything a catalog-backed command needs.
type session struct {
	cfg        config.Config
	log        *zap.Logger
	file       *catalog.File
	restaurant *catalog.Restaurant
	// quiet suppresses the restaurant context line on stdout.
	quiet bool
}

// loadConfig layers --config, RITT_* variables and explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, invalidArgsError(err.Error(),
			"rittmatch --config rittmatch.yaml verify \"latte\"",
			"RITT_THRESHOLD=0.6 rittmatch match \"latte\"",
		)
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.CatalogPath = flagCatalog
	}
	if flags.Changed("catalog-url") {
		cfg.CatalogURL = flagCatalogURL
	}
	if flags.Changed("restaurant") {
		cfg.Restaurant = flagRestaurant
	}
	if flags.Changed("threshold") {
		cfg.Threshold = flagThreshold
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, invalidArgsError(err.Error(),
			"rittmatch match \"latte\" --threshold 0.6",
			"rittmatch verify \"latte\" --log-level info",
		)
	}
	return cfg, nil
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, invalidArgsError(err.Error(), "rittmatch verify \"latte\" --log-level debug")
	}
	return &session{cfg: cfg, log: logger}, nil
}

// openCatalog loads the catalog from a file or the catalog service.
func (s *session) openCatalog(cmd *cobra.Command) error {
	var (
		file *catalog.File
		err  error
	)
	switch {
	case s.cfg.CatalogPath != "":
		file, err = catalog.LoadFile(s.cfg.CatalogPath)
		if err != nil {
			return err
		}
		s.log.Info("catalog loaded", zap.String("path", s.cfg.CatalogPath), zap.Int("restaurants", len(file.Restaurants)))
	case s.cfg.CatalogURL != "":
		file, err = catalog.NewClient(s.cfg.CatalogURL).FetchFile(cmd.Context())
		if err != nil {
			return err
		}
		s.log.Info("catalog fetched", zap.String("url", s.cfg.CatalogURL), zap.Int("restaurants", len(file.Restaurants)))
	default:
		return invalidArgsError(
			"please provide --catalog PATH or --catalog-url URL",
			"rittmatch menu --catalog catalog.yaml",
			"RITT_CATALOG_URL=http://localhost:8080 rittmatch restaurants",
		)
	}

	if len(file.Restaurants) == 0 {
		return notFoundError("no restaurants found in catalog", "Add a restaurant to the catalog file.")
	}
	s.file = file
	return nil
}

// selectRestaurant opens the catalog and resolves the configured restaurant.
// A catalog with a single restaurant needs no --restaurant.
func (s *session) selectRestaurant(cmd *cobra.Command) error {
	if err := s.openCatalog(cmd); err != nil {
		return err
	}

	restaurants := s.file.Restaurants
	query := strings.TrimSpace(s.cfg.Restaurant)
	if query == "" {
		if len(restaurants) == 1 {
			s.use(cmd, &restaurants[0], catalog.Resolution{Name: restaurants[0].Name, ID: restaurants[0].ID, Method: catalog.MethodID, Score: 1})
			return nil
		}
		return invalidArgsError(
			fmt.Sprintf("catalog has %d restaurants; please provide --restaurant", len(restaurants)),
			"rittmatch restaurants --catalog "+s.catalogHint(),
			"rittmatch menu --restaurant "+restaurants[0].ID,
		)
	}

	r, res, err := catalog.NewResolver(s.cfg.Threshold).LookupRestaurant(query, restaurants)
	if err != nil {
		return err
	}
	s.use(cmd, r, res)
	return nil
}

func (s *session) use(cmd *cobra.Command, r *catalog.Restaurant, res catalog.Resolution) {
	s.restaurant = r
	s.log.Info("restaurant selected",
		zap.String("id", r.ID),
		zap.String("method", string(res.Method)),
		zap.Float64("score", res.Score),
	)
	for _, e := range catalog.Malformed(r.Items()) {
		s.log.Warn("skipping malformed menu entry", zap.String("restaurant", r.ID), zap.String("id", e.ID), zap.String("name", e.Name))
	}
	if !flagJSON && !s.quiet {
		display.PrintRestaurantContext(cmd.OutOrStdout(), *r, res.Method)
	}
}

func (s *session) catalogHint() string {
	if s.cfg.CatalogPath != "" {
		return s.cfg.CatalogPath
	}
	return "catalog.yaml"
}
