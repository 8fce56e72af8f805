package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/home-guard/internal/config"
	"github.com/oshokin/home-guard/internal/logger"
	"github.com/oshokin/home-guard/internal/service/panel"
	"github.com/oshokin/home-guard/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// storage overrides the state backend from the configuration.
	storage string
	// stateFile overrides the state snapshot path from the configuration.
	stateFile string
	// logLevel sets the minimum log level for this invocation.
	logLevel string

	// rootCmd represents the base command for operating the security panel.
	rootCmd = &cobra.Command{
		Use:   "home-guard",
		Short: "Operate the home security panel.",
		Long: `Command line panel for the home security alarm.

Sensor events, camera scans and arming changes are evaluated by the decision
engine and the resulting alarm status is persisted to the configured state
backend (JSON file, SQLite database, or memory for throwaway runs).

Arm with a home or away profile, feed sensor activations, scan camera frames
for cats, and inspect the current status.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if lvl, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(lvl)
			}
		},
	}
)

// Execute runs the home-guard CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup persistent flags shared by every subcommand.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVar(&storage, "storage", "", "state backend override (memory, file, sqlite)")
	rootCmd.PersistentFlags().
		StringVarP(&stateFile, "state-file", "s", "", "path to the state snapshot (file backend)")
	rootCmd.PersistentFlags().
		StringVarP(&logLevel, "log-level", "l", "info", "minimum log level (debug, info, warn, error)")
}

// panelOptions collects the persistent flag overrides for panel operations.
func panelOptions() *panel.Options {
	return &panel.Options{
		ConfigPath: configPath,
		Storage:    storage,
		StateFile:  stateFile,
	}
}
