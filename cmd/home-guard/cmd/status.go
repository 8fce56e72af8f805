package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/home-guard/internal/service/panel"
)

// statusCmd prints the current panel state.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current alarm, arming and sensor state.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return panel.Status(cmd.Context(), panelOptions(), cmd.OutOrStdout())
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(statusCmd)
}
