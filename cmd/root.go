package cmd

import (
	"context"
	"os"

	"github.com/caley/caley/internal/app"
	"github.com/caley/caley/internal/config"
	"github.com/caley/caley/internal/logging"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        config.Application
)

var rootCmd = &cobra.Command{
	Use:   "caley",
	Short: "A workout calendar",
	Long: `Caley keeps a log of your workouts and shows them on a month calendar.
Run "caley serve" for the HTTP API or use the subcommands directly from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Log.Level
		if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
			level = envLevel
		}
		logging.Setup(logging.SetupParams{
			LogFileName:   cfg.Log.File,
			LogToStdout:   cfg.Log.Stdout,
			LogLevel:      level,
			LogFormatJSON: cfg.Log.JSON,
			Console:       cmd.ErrOrStderr(),
		})
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML configuration file")
}

// withApplication opens the configured store for the duration of fn.
func withApplication(cmd *cobra.Command, fn func(ctx context.Context, deps *app.Dependencies) error) error {
	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Errorf("failed to close storage: %v", err)
		}
	}()
	return fn(cmd.Context(), application.Dependencies())
}
