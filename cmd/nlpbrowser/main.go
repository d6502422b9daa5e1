package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/studiowebux/nlpbrowser/internal/analytics"
	"github.com/studiowebux/nlpbrowser/internal/cli"
	"github.com/studiowebux/nlpbrowser/internal/client"
	"github.com/studiowebux/nlpbrowser/internal/config"
	"github.com/studiowebux/nlpbrowser/internal/keybinds"
	"github.com/studiowebux/nlpbrowser/internal/logging"
	"github.com/studiowebux/nlpbrowser/internal/tui"
)

var (
	version = "0.1.0"
)

// settings is shared by every command once the root pre-run has loaded it
var (
	v   = viper.New()
	cfg *config.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nlpbrowser",
	Short: "NLP Browser - text analysis client",
	Long: `NLP Browser talks to a text-analysis service: similar texts, classification,
sentiment and a combined analysis.

Run without arguments to start the interactive TUI, or use a subcommand for
one-shot analyses that print to stdout.

Examples:
  nlpbrowser                                  # Start interactive TUI
  nlpbrowser analyze "Adorei o atendimento"   # Full analysis
  echo "Chegou quebrado" | nlpbrowser classify
  nlpbrowser similar -k 3 -o json "texto"     # Three similar texts as JSON
  nlpbrowser mock --port 8000                 # Local mock backend
  nlpbrowser --help                           # Show help`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Flags shared by every command
var (
	flagConfigFile string
	flagBaseURL    string
	flagLogLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Config file (default ~/.nlpbrowser/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagBaseURL, "base-url", "u", "", "Analysis service base URL")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug/info/warn/error)")

	// flags override the file and the environment
	v.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(similarCmd, classifyCmd, sentimentCmd, analyzeCmd)
	rootCmd.AddCommand(healthCmd, statsCmd, mockCmd, keybindsCmd)
}

// loadSettings creates ~/.nlpbrowser and resolves the configuration
func loadSettings() error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	loaded, err := config.Load(v, flagConfigFile)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// newClient builds the service client. When analytics are enabled every call
// is recorded; the returned manager is nil otherwise.
func newClient(logger *slog.Logger) (*client.Client, *analytics.Manager, error) {
	opts := []client.Option{
		client.WithTLS(cfg.TLS),
		client.WithLogger(logger),
		client.WithUserAgent("nlpbrowser/" + version),
	}

	var mgr *analytics.Manager
	if cfg.AnalyticsEnabled {
		m, err := analytics.NewManager(config.DatabasePath)
		if err != nil {
			logger.Warn("analytics disabled", "error", err)
		} else {
			mgr = m
			opts = append(opts, client.WithObserver(mgr.Observer(cfg.BaseURL, func(err error) {
				logger.Warn("failed to record call", "error", err)
			})))
		}
	}

	c, err := client.New(cfg.BaseURL, opts...)
	if err != nil {
		if mgr != nil {
			mgr.Close()
		}
		return nil, nil, err
	}
	return c, mgr, nil
}

// runTUI starts the interactive TUI with logs going to the log file
func runTUI() error {
	closer, err := logging.InitFileLogger(config.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger := slog.Default()

	registry, result, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}
	if result.HasWarnings() {
		logger.Warn("keybinds", "warnings", result.String())
	}

	c, mgr, err := newClient(logger)
	if err != nil {
		return err
	}

	// the TUI closes the analytics manager on exit
	return tui.Run(tui.Options{
		Backend:   c,
		Config:    cfg,
		Keybinds:  registry,
		Analytics: mgr,
		Logger:    logger,
		Version:   version,
	})
}

// cliLogger writes to stderr, coloured when stderr is a terminal
func cliLogger() *slog.Logger {
	return logging.InitLogger(cfg.LogLevel, cli.IsTerminal(os.Stderr))
}

// useColor reports whether stdout output should be styled
func useColor() bool {
	return !color.NoColor && cli.IsTerminal(os.Stdout)
}
