package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/proxymakers/config"
	"github.com/s0up4200/proxymakers/filter"
	"github.com/s0up4200/proxymakers/operations"
	"github.com/s0up4200/proxymakers/proxymakers"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  = zerolog.Nop()
	client  *proxymakers.Client
	ops     *operations.Operations

	// Command flags
	dryRun       bool
	outputFormat string
	noConfirm    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "proxymakers",
	Short: "Manage ProxyMakers proxy orders from the command line",
	Long: `proxymakers talks to the ProxyMakers API to check account credit,
price and place proxy orders, renew them, and manage existing orders.

The API token is read from api.token in config.yaml, from the
PROXYMAKERS_API_TOKEN environment variable, or from a .env file in the
working directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "perform a dry run without placing or changing orders")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json or yaml")
}

// loadConfig loads configuration and sets up logging without touching the API
func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	if cmd.Flags().Changed("dry-run") {
		cfg.Safety.DryRun = dryRun
	}
	if outputFormat != "" {
		switch outputFormat {
		case "table", "json", "yaml":
			cfg.Output.Format = outputFormat
		default:
			return fmt.Errorf("invalid output format: %s (must be table, json or yaml)", outputFormat)
		}
	}
	return nil
}

// initializeApp loads configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd, args); err != nil {
		return err
	}

	var err error
	client, err = proxymakers.NewClient(cfg.API.Token, logger,
		proxymakers.WithBaseURL(cfg.API.BaseURL),
		proxymakers.WithTimeout(cfg.API.Timeout),
		proxymakers.WithUserAgent("proxymakers-cli/"+version),
		proxymakers.WithDebug(cfg.API.Debug),
	)
	if err != nil {
		return fmt.Errorf("failed to create ProxyMakers client: %w", err)
	}

	ops = operations.NewOperations(client, logger, cfg.Safety.MaxConcurrency)

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Bool("dry_run", cfg.Safety.DryRun).
		Msg("ProxyMakers client ready")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
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

	var w io.Writer = out
	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    !useColor(cfg.Color, out),
		}
	}

	return zerolog.New(w).With().Timestamp().Logger()
}

// useColor resolves the auto/always/never colour setting for f
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// errorHint suggests a fix for errors users can resolve themselves
func errorHint(err error) string {
	var cerr *filter.CompilationError
	switch {
	case errors.Is(err, proxymakers.ErrInvalidToken):
		return "Hint: set api.token in config.yaml or export " + config.EnvPrefix + "_API_TOKEN."
	case errors.As(err, &cerr):
		return "Hint: filters are expr expressions, e.g. service == \"proxy_ipv6\" && quantity >= 10."
	}
	return ""
}
