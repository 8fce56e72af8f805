package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/home-guard/internal/service/panel"
)

// disarmCmd switches the panel off.
var disarmCmd = &cobra.Command{
	Use:   "disarm",
	Short: "Disarm the panel and clear any alarm.",
	Long:  "Disarms the panel. Any pending or ringing alarm is cleared unconditionally.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return panel.Disarm(cmd.Context(), panelOptions())
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(disarmCmd)
}
