package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seenimoa/secanalyzer/pkg/models"
)

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker...]",
	Short: "Analyze the latest filing of one or more companies",
	Long: `Fetch the latest filing of the given form type for each ticker, extract
the three financial statements and print the result as JSON.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form, _ := cmd.Flags().GetString("form")
		save, _ := cmd.Flags().GetBool("save")
		out, _ := cmd.Flags().GetString("out")
		if cmd.Flags().Changed("concurrency") {
			cfg.Analysis.Concurrency, _ = cmd.Flags().GetInt("concurrency")
		}

		ctx := cmd.Context()
		a := newApp(ctx, save)
		defer a.Close(ctx)

		var (
			payload any
			failed  int
		)
		if len(args) == 1 {
			result, err := a.svc.Analyze(ctx, args[0], form)
			if err != nil {
				return err
			}
			payload = result
		} else {
			outcomes := a.svc.AnalyzeMany(ctx, args, form)
			results := make([]*models.AnalysisResult, 0, len(outcomes))
			for _, o := range outcomes {
				if o.Err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "❌ %s: %v\n", o.Ticker, o.Err)
					continue
				}
				results = append(results, o.Result)
			}
			payload = results
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		if out != "" {
			if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(os.Stderr, "✅ wrote %s\n", out)
		} else {
			fmt.Println(string(data))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d analyses failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("form", "", "filing form type, e.g. 10-Q or 6-K (default from config)")
	analyzeCmd.Flags().Bool("save", false, "persist results to the configured store")
	analyzeCmd.Flags().Int("concurrency", 4, "tickers analyzed in parallel")
	analyzeCmd.Flags().String("out", "", "write JSON to this file instead of stdout")
}
