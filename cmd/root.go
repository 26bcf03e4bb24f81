package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/admin"
	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/filter"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	catalogClient *catalog.Client
	operations    *admin.Operations
	filters       *filter.Manager

	// Command flags
	dryRun       bool
	outputFormat string

	version   = "dev"
	buildTime = "unknown"
)

// reportedError marks an error that was already shown to the user
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Manage a movie catalog from the command line",
	Long: `marquee is a CLI tool for administering a movie catalog service.
It lists, adds and deletes movies, clears the whole catalog, lists
registered users and imports movies from an existing Radarr library.`,
	PersistentPreRunE: initializeApp,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// SetVersion sets the build information reported by the version command
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "perform a dry run without making changes")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", admin.OutputTable, "output format (table, json, yaml)")

	// Add subcommands
	rootCmd.AddCommand(moviesCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initConfig loads the configuration and sets up logging
func initConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	// Override dry-run from command line if specified
	if cmd.Flags().Changed("dry-run") {
		cfg.Safety.DryRun = dryRun
	}

	switch outputFormat {
	case admin.OutputTable, admin.OutputJSON, admin.OutputYAML:
	default:
		return fmt.Errorf("invalid output format: %s (must be table, json or yaml)", outputFormat)
	}

	return nil
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := initConfig(cmd, args); err != nil {
		return err
	}

	casing, err := catalog.ParseCasing(strings.ToLower(cfg.API.Casing))
	if err != nil {
		return err
	}

	catalogClient, err = catalog.NewClient(cfg.API.URL, logger,
		catalog.WithTimeout(cfg.API.Timeout),
		catalog.WithCasing(casing),
		catalog.WithToken(cfg.API.Token),
		catalog.WithUserAgent("marquee/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	operations = admin.NewOperations(catalogClient, logger)
	operations.SetMaxConcurrency(cfg.BulkDelete.MaxConcurrency)

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; colors only make sense on a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}
