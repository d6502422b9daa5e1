package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/studiowebux/nlpbrowser/internal/analytics"
	"github.com/studiowebux/nlpbrowser/internal/cli"
	"github.com/studiowebux/nlpbrowser/internal/config"
	"github.com/studiowebux/nlpbrowser/internal/keybinds"
	"github.com/studiowebux/nlpbrowser/internal/mock"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the analysis service is up and its models are loaded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, mgr, err := newClient(cliLogger())
		if err != nil {
			return err
		}
		if mgr != nil {
			defer mgr.Close()
		}
		return cli.RunHealth(cmd.Context(), c, os.Stdout)
	},
}

// Flags for stats
var (
	statsRecent int
	statsClear  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded call statistics for the configured service",
	Long: `Show per-analysis call statistics recorded while analytics_enabled is set.

Examples:
  nlpbrowser stats              # Totals per route
  nlpbrowser stats --recent 20  # Last 20 calls
  nlpbrowser stats --clear      # Delete every record`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := analytics.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer mgr.Close()

		if statsClear {
			if err := mgr.Clear(); err != nil {
				return err
			}
			fmt.Println("Estatísticas apagadas.")
			return nil
		}

		if statsRecent > 0 {
			entries, err := mgr.LoadRecent(cfg.BaseURL, statsRecent)
			if err != nil {
				return err
			}
			cli.PrintRecent(os.Stdout, entries)
			return nil
		}

		stats, err := mgr.GetStatsPerKind(cfg.BaseURL)
		if err != nil {
			return err
		}
		cli.PrintStats(os.Stdout, stats)
		return nil
	},
}

// Flags for mock
var (
	mockConfigFile  string
	mockPort        int
	mockHost        string
	mockDelay       int
	mockUnavailable bool
	mockInit        string
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve a local mock of the analysis service",
	Long: `Serve the four analysis routes plus /health and / from a small built-in
dataset. A YAML or JSON file can replace the dataset and add canned routes.

Examples:
  nlpbrowser mock                          # http://localhost:8000
  nlpbrowser mock --unavailable            # Analyses answer 500
  nlpbrowser mock --init mock.yaml         # Write an example file
  nlpbrowser mock --config mock.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if mockInit != "" {
			if err := mock.SaveConfig(mock.DefaultConfig(), mockInit); err != nil {
				return err
			}
			fmt.Printf("Configuração de exemplo salva em %s\n", mockInit)
			return nil
		}

		mockCfg := mock.DefaultConfig()
		workdir, err := os.Getwd()
		if err != nil {
			return err
		}
		if mockConfigFile != "" {
			if mockCfg, err = mock.LoadConfig(mockConfigFile); err != nil {
				return err
			}
			workdir = filepath.Dir(mockConfigFile)
		}

		flags := cmd.Flags()
		if flags.Changed("port") {
			mockCfg.Port = mockPort
		}
		if flags.Changed("host") {
			mockCfg.Host = mockHost
		}
		if flags.Changed("delay") {
			mockCfg.Delay = mockDelay
		}
		if mockUnavailable {
			mockCfg.Unavailable = true
		}

		server := mock.NewServer(mockCfg, workdir, cliLogger())
		if err := server.Start(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Mock em %s (Ctrl+C para parar)\n", server.GetAddress())

		var served []mock.RequestLog
		for {
			select {
			case <-server.NotifyChannel():
				for _, l := range server.DrainLogs() {
					cli.PrintMockRequest(os.Stdout, l)
					served = append(served, l)
				}
			case <-cmd.Context().Done():
				err := server.Stop()
				served = append(served, server.DrainLogs()...)
				fmt.Println()
				cli.PrintMockSummary(os.Stdout, served)
				return err
			}
		}
	},
}

var keybindsInit bool

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "List the TUI key bindings or write an editable keybinds.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if keybindsInit {
			if err := keybinds.CreateExampleConfig(config.KeybindsFile); err != nil {
				return err
			}
			fmt.Printf("Atalhos salvos em %s\n", config.KeybindsFile)
			return nil
		}

		registry, result, err := keybinds.LoadOrDefault(config.KeybindsFile)
		if err != nil {
			return err
		}
		if result.HasWarnings() {
			fmt.Fprintln(os.Stderr, result.String())
		}
		for _, ctx := range []keybinds.Context{keybinds.ContextInput, keybinds.ContextResults, keybinds.ContextHelp} {
			fmt.Printf("[%s]\n", ctx)
			for _, b := range registry.ListBindings(ctx) {
				if b.Context != ctx {
					continue
				}
				fmt.Printf("  %-14s %s\n", b.Key, keybinds.GetActionInfo(b.Action).Description)
			}
		}
		fmt.Printf("[%s]\n", keybinds.ContextGlobal)
		for _, b := range registry.ListBindings(keybinds.ContextGlobal) {
			fmt.Printf("  %-14s %s\n", b.Key, keybinds.GetActionInfo(b.Action).Description)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsRecent, "recent", 0, "Show the last N calls instead of totals")
	statsCmd.Flags().BoolVar(&statsClear, "clear", false, "Delete every recorded call")

	mockCmd.Flags().StringVarP(&mockConfigFile, "config-file", "f", "", "Mock config (YAML or JSON)")
	mockCmd.Flags().IntVarP(&mockPort, "port", "p", mock.DefaultPort, "Port to listen on")
	mockCmd.Flags().StringVar(&mockHost, "host", mock.DefaultHost, "Host to bind")
	mockCmd.Flags().IntVar(&mockDelay, "delay", 0, "Delay every analysis by N milliseconds")
	mockCmd.Flags().BoolVar(&mockUnavailable, "unavailable", false, "Answer analyses with 500 as if models were not loaded")
	mockCmd.Flags().StringVar(&mockInit, "init", "", "Write an example mock config to this path and exit")

	keybindsCmd.Flags().BoolVar(&keybindsInit, "init", false, "Write the default bindings to keybinds.json")
}
