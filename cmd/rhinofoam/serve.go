package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lborunda/rhinoFOAM/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the generation API server",
	Long: `Starts the HTTP generation service used by design-tool
integrations: POST /api/generate for synchronous runs, /websocket for
streamed preview lines, /metrics for instrumentation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		log := logger()

		srv := server.New(server.Config{Addr: addr, Logger: log})

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-shutdown:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			return srv.Stop()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:7125", "listen address")
}
