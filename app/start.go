package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/daemon"
	"github.com/pzillo/landing/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode (templates from disk, cookies without Secure)")

	rootCmd.AddCommand(startCmd)
}

var (
	cfg     config.Config
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the landing web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = loadConfig(); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			return logger.Init(cfg.Log) //nolint:wrapcheck
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := daemon.New(&cfg)
			if err != nil {
				log.Error().Err(err).Msg("failed to start")
				return err //nolint:wrapcheck
			}

			log.Info().Int("port", cfg.Webserver.Port).Bool("dev", cfg.DevMode).Msg("starting web service")

			return d.Start() //nolint:wrapcheck
		},
	}
)
