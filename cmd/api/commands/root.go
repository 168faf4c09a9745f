package commands

import (
	"log/slog"
	"os"

	"beastypage/internal/platform/config"
	"beastypage/internal/platform/logging"

	"github.com/spf13/cobra"
)

var (
	configPath string

	cfg    config.Config
	logger *slog.Logger
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "beastypage-api",
		Short:         "Share slugs and live session voting API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv(config.ConfigPathEnvVar, configPath); err != nil {
					return err
				}
			}
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			logger = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
			slog.SetDefault(logger)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (overrides CONFIG_PATH)")

	root.AddCommand(serveCmd(), migrateCmd())
	return root
}
