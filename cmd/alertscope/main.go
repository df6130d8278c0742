package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"alertscope/internal/archive"
	"alertscope/internal/cache"
	"alertscope/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	archiveURL string
	timeout    time.Duration
	noCache    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "alertscope",
	Short: "alertscope - terminal browser for the alert archive",
	Long: `alertscope browses the LSST alert archive's display API: single alerts
with their cutouts, object lightcurves and centroids, solar-system objects,
observing-night summaries, and ad-hoc column queries.

Run without arguments to start the interactive browser. Subcommands print
the same records to stdout for scripting.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if archiveURL != "" {
			cfg.Archive.BaseURL = archiveURL
		}
		if timeout > 0 {
			cfg.Archive.Timeout = timeout.String()
		}
		if noCache {
			cfg.Cache.Enabled = false
		}

		logger, err = buildLogger(cmd.CalledAs() == "alertscope")
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive browser.
		return runBrowser(args)
	},
	Args: cobra.MaximumNArgs(1),
}

// buildLogger builds the process logger. The interactive browser owns the
// terminal, so its logs go to the configured file or nowhere, never stderr.
func buildLogger(interactive bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	} else if parsed, err := zapcore.ParseLevel(cfg.Logging.Level); err == nil {
		level = parsed
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Logging.Format == "text" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	switch {
	case cfg.Logging.File != "":
		zcfg.OutputPaths = []string{cfg.Logging.File}
		zcfg.ErrorOutputPaths = []string{cfg.Logging.File}
	case interactive:
		return zap.NewNop(), nil
	default:
		zcfg.OutputPaths = []string{"stderr"}
		zcfg.ErrorOutputPaths = []string{"stderr"}
	}
	return zcfg.Build()
}

// newClient builds the archive client, with the response cache in the
// transport path when enabled. The returned cleanup closes the cache.
func newClient() (*archive.Client, func(), error) {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout()}
	cleanup := func() {}

	if cfg.Cache.Enabled {
		store, err := cache.Open(cfg.Cache.Path, cfg.CacheTTL(), logger.Named("cache"))
		if err != nil {
			// A broken cache should not keep the archive out of reach.
			logger.Warn("response cache unavailable", zap.Error(err))
		} else {
			httpClient.Transport = &cache.Transport{Store: store, Log: logger.Named("cache")}
			cleanup = func() { _ = store.Close() }
		}
	}

	client := archive.New(cfg.Archive.BaseURL,
		archive.WithHTTPClient(httpClient),
		archive.WithLogger(logger.Named("archive")),
	)
	return client, cleanup, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./alertscope.yaml, then ~/.config/alertscope/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&archiveURL, "archive-url", "", "Archive base URL (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Disable the response cache")

	rootCmd.AddCommand(alertCmd)
	rootCmd.AddCommand(objectCmd)
	rootCmd.AddCommand(ssobjectCmd)
	rootCmd.AddCommand(nightsCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(rouletteCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
