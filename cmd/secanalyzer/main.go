// secanalyzer: quarterly and interim SEC filing analyzer.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/seenimoa/secanalyzer/internal/config"
	"github.com/seenimoa/secanalyzer/internal/edgar"
	"github.com/seenimoa/secanalyzer/internal/logging"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger
var (
	cfg    *config.Config
	logger zerolog.Logger
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "secanalyzer",
	Short: "secanalyzer: SEC 10-Q / 6-K financial statement analyzer",
	Long: `secanalyzer fetches a company's latest periodic filing from SEC EDGAR,
locates the income statement, balance sheet and cash flow tables, annotates
period-over-period changes and emits a JSON record for the dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		logger = logging.Setup(cfg.Logging)
		cmd.SetContext(logging.WithContext(cmd.Context(), logger))

		if err := edgar.CheckIdentity(cfg.SEC); err != nil {
			logger.Warn().Err(err).Str("user_agent", cfg.SEC.UserAgent()).
				Msg("set SEC_EMAIL; EDGAR throttles requests without a contact address")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(filingsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("secanalyzer %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and credential status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  secanalyzer: System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    EDGAR:         %s (%.0f req/s)\n", cfg.SEC.BaseURL, cfg.SEC.RateLimit)
		fmt.Printf("    User-Agent:    %s\n", cfg.SEC.UserAgent())
		fmt.Printf("    Default Form:  %s\n", cfg.Analysis.DefaultForm)
		fmt.Printf("    Store:         %s\n", cfg.Store.Backend)
		cache := "disabled"
		if cfg.Cache.RedisAddr != "" {
			cache = cfg.Cache.RedisAddr
		}
		fmt.Printf("    Filing Cache:  %s\n", cache)
		fmt.Printf("    API Server:    %s\n", cfg.API.Addr())
		fmt.Println()

		fmt.Println("  Credentials:")
		for _, k := range config.CheckSecrets(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
