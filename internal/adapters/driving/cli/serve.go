package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/hoaxlens/internal/adapters/driving/httpapi"
)

var (
	serveAddr    string
	servePreload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Routes:
  GET  /healthz
  GET  /v1/models
  GET  /v1/indicators
  POST /v1/classify/{text|image|audio}
  POST /v1/analyze`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&servePreload, "preload", false, "load every model before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	if servePreload {
		if err := svc.Registry.Preload(cmd.Context()); err != nil {
			cmd.PrintErrf("Warning: %v\n", err)
		}
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Analysis: svc.Analysis,
		Registry: svc.Registry,
	})
	if err != nil {
		return err
	}

	cmd.Printf("HTTP API listening on %s\n", serveAddr)
	return server.Run(cmd.Context(), serveAddr)
}
