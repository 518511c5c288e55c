package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/metcalfc/bcc/internal/server"
	"github.com/spf13/cobra"
)

// DefaultAddr is the listen address when neither --addr nor PORT is set.
const DefaultAddr = ":3001"

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library over HTTP",
	Long: `Serve the library as JSON for web clients.

Routes (also mounted under /api/books):
  GET /books                        list books
  GET /books/{slug}                 full book data
  GET /books/{slug}/at/{position}   what a reader at position may see
  GET /healthz                      liveness`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := log.New(os.Stderr, "", log.LstdFlags)
		return server.New(openLibrary(), logger).Serve(ctx, listenAddr())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: :$PORT or "+DefaultAddr+")")
}

func listenAddr() string {
	if serveAddr != "" {
		return serveAddr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return DefaultAddr
}
