package main

import (
	"github.com/spf13/cobra"

	"github.com/seenimoa/secanalyzer/api"
)

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.API.Port, _ = cmd.Flags().GetInt("port")
		}

		ctx := cmd.Context()
		a := newApp(ctx, true)
		defer a.Close(ctx)

		srv := api.NewServer(cfg, api.Deps{
			Analyzer: a.svc,
			Filings:  a.client,
			Logger:   logger,
			Version:  version,
		})
		return srv.ListenAndServe(cfg.API.Addr())
	},
}

func init() {
	serveCmd.Flags().Int("port", 8000, "listen port (overrides config)")
}
