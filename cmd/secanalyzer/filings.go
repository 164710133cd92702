package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seenimoa/secanalyzer/pkg/utils"
)

// --- Filings Command ---

var filingsCmd = &cobra.Command{
	Use:   "filings [ticker]",
	Short: "List a company's recent filings from the EDGAR feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form, _ := cmd.Flags().GetString("form")
		limit, _ := cmd.Flags().GetInt("limit")
		if form = utils.NormalizeForm(form); form == "" {
			form = utils.NormalizeForm(cfg.Analysis.DefaultForm)
		}

		ctx := cmd.Context()
		a := newApp(ctx, false)
		defer a.Close(ctx)

		ticker := utils.NormalizeTicker(args[0])
		filings, err := a.client.RecentFilings(ctx, ticker, form, limit)
		if err != nil {
			return err
		}
		if len(filings) == 0 {
			fmt.Printf("No %s filings found for %s\n", form, ticker)
			return nil
		}

		fmt.Printf("📄 %s %s filings (%s)\n\n", ticker, form, filings[0].CompanyName)
		fmt.Printf("  %-6s  %-10s  %-20s  %s\n", "FORM", "FILED", "ACCESSION", "URL")
		for _, f := range filings {
			fmt.Printf("  %-6s  %-10s  %-20s  %s\n",
				f.FormType, f.FilingDate.Format("2006-01-02"), f.AccessionNo, f.URL)
		}
		return nil
	},
}

func init() {
	filingsCmd.Flags().String("form", "", "filing form type (default from config)")
	filingsCmd.Flags().Int("limit", 10, "maximum number of filings")
}
