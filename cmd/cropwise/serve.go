package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/cropwise/cropwise/internal/api"
)

func newServeCmd(configPath *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a local API server over the configured catalog",
		Long: `Starts an HTTP server on localhost that serves recommendations, reports and
comparison tables from the configured catalog. For production use cropwised,
which adds graceful shutdown and Postgres-backed catalog editing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			cat, err := openCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			ranker, err := newRanker(cfg)
			if err != nil {
				return err
			}

			h := api.NewHandler(cat, ranker, api.NewSessionCache(cfg.Server.SessionCacheSize))
			mux := http.NewServeMux()
			h.RegisterRoutes(mux)

			p := firstNonEmpty(port, cfg.Server.Port, "7700")
			fmt.Fprintf(os.Stderr, "Cropwise API server\n")
			fmt.Fprintf(os.Stderr, "  Catalog:    %s (%d crops)\n", cfg.Catalog.Source, cat.Len())
			fmt.Fprintf(os.Stderr, "  Listening:  http://localhost:%s\n", p)

			return http.ListenAndServe(":"+p, api.CORS(cfg.Server.AllowedOrigin)(mux))
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to serve on (default: config server.port)")
	return cmd
}
