// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/pzillo/landing/internal/config"
)

var (
	configPath string // directory holding main.toml
	envFile    string

	rootCmd = &cobra.Command{
		Use:   "landing",
		Short: "landing serves a landing page with an admin dashboard",
		Long: `landing serves a personal landing page with service cards and a
before/after feed, and an admin dashboard to edit services, posts and the
page appearance.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory of main.toml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the dotenv file and the configuration.
func loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, err //nolint:wrapcheck
	}

	return config.ReadConfig(configPath) //nolint:wrapcheck
}
