package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/birdrush/birdrush/internal/api"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the birdrush REST API server",
	Long: `Start an HTTP server exposing scores and play metrics.

Endpoints:
  POST /api/scores   - Submit a score
  GET  /api/scores   - Top scores for a mode (?mode=classic&limit=10)
  GET  /api/metrics  - Aggregated play metrics across modes
  POST /api/metrics  - Record a finished game

Examples:
  birdrush api
  birdrush api --addr :9090
  birdrush api --db ./scores.db`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	server, err := api.NewServer(api.ServerConfig{
		Address: flagAPIAddr,
		DBPath:  flagDBPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting birdrush API server on %s\n", flagAPIAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
