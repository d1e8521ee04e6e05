package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/config"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/logger"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/service/sentry"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// mode overrides the configured sensor mode (combined/individual).
	mode string
	// logLevel sets the minimum log level.
	logLevel string

	// rootCmd represents the base command running the sentry daemon.
	rootCmd = &cobra.Command{
		Use:   "mat-sentry",
		Short: "Arm the anti-theft floor mat and react to triggers.",
		Long: `Runs the anti-theft floor mat daemon on a Raspberry Pi.

The daemon polls the piezo sensor inputs at a fixed tick, debounces them,
and on every accepted trigger lights the alarm indicator, sounds the buzzer,
captures a still image and emails it to the configured recipient. Mail
credentials are read from the environment variables named in the settings
file. On shutdown every output is driven inactive and the GPIO is released.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &sentry.Options{
				ConfigPath: configPath,
				Mode:       mode,
			}

			return sentry.Run(ctx, options)
		},
	}

	// initConfigCmd writes a default settings file to the config path.
	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Write a default settings file.",
		Long: `Writes the default configuration to the path given by --config.

The defaults match the reference hardware: the combined two-wire mat on
BCM 17, the buzzer on 18, indicators on 19 and 26, a 200ms debounce and an
8 second email cooldown against smtp.gmail.com:465.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return config.Save(configPath, config.Default())
		},
	}
)

// Execute runs the mat-sentry CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "", "sensor mode override (combined or individual)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "minimum log level (debug, info, warn, error)")
}
