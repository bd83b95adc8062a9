package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/soundshift/pkg/config"
	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/logger"
	"github.com/GriffinCanCode/soundshift/pkg/metrics"
	"github.com/GriffinCanCode/soundshift/pkg/syllable"
)

var (
	flagConfigPath  string
	flagResources   string
	flagSystem      string
	flagLogLevel    string
	flagVerbose     bool
	flagMetricsAddr string

	cfg config.Config
	sys features.System
	rec metrics.Recorder = metrics.NoOp{}
)

var rootCmd = &cobra.Command{
	Use:   "soundshift",
	Short: "Apply phonological sound-change rules to IPA sequences",
	Long: `soundshift parses sound-change rules and runs them forward
(simulate a change) or backward (enumerate proto-forms) over
whitespace-separated IPA sequences.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEngine,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagResources, "resources", "", "resource table directory (default: embedded)")
	rootCmd.PersistentFlags().StringVar(&flagSystem, "system", "", "feature system name (default: ipa)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn, or error")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "shorthand for --log-level debug")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) for the life of the command")
}

// loadEngine resolves configuration (the --config file if one is
// given, otherwise environment variables; flags override either),
// builds the feature system every subcommand shares, and initializes
// logging.
func loadEngine(cmd *cobra.Command, args []string) error {
	var err error
	if flagConfigPath != "" {
		cfg, err = config.Load(flagConfigPath)
	} else {
		cfg, err = config.LoadEnv()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagResources != "" {
		cfg.ResourceDir = flagResources
	}
	if flagSystem != "" {
		cfg.System = flagSystem
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}

	if err := logger.Init(logger.Config{
		Level:  parseLogLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
		Output: os.Stderr,
	}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	sys, err = features.Build(cfg.ResourceDir)
	if err != nil {
		return fmt.Errorf("building feature system %q: %w", cfg.System, err)
	}
	features.Register(cfg.System, sys)

	if flagMetricsAddr != "" {
		prom := metrics.NewPrometheus()
		rec = prom
		go serveMetrics(flagMetricsAddr, prom)
	}

	return nil
}

// serveMetrics exposes prom's registry over HTTP until the process exits.
// Errors are logged, not returned, since the command's real work has
// already started by the time this runs.
func serveMetrics(addr string, prom *metrics.Prometheus) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(prom.Registry(), promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}

func parseLogLevel(s string) logger.LogLevel {
	switch s {
	case "debug":
		return logger.LevelDebug
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func sylConfig() syllable.Config {
	return cfg.ToSyllableConfig()
}
