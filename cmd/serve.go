package cmd

import (
	"os/signal"
	"syscall"

	"github.com/caley/caley/internal/app"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApplication(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := application.Close(); err != nil {
				log.Errorf("failed to close storage: %v", err)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return application.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
