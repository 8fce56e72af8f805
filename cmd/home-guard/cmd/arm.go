package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/oshokin/home-guard/internal/domain/security"
	"github.com/oshokin/home-guard/internal/service/panel"
)

// armCmd switches the panel into an armed profile.
var armCmd = &cobra.Command{
	Use:   "arm {home|away}",
	Short: "Arm the panel with a home or away profile.",
	Long: `Arms the panel. Every sensor's active flag is reset when switching into a
different profile, so arming starts from a clean premises snapshot. Arming by
itself never raises or clears the alarm status.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, ok := domain.ParseArmingStatus(args[0])
		if !ok || !status.Armed() {
			return fmt.Errorf("unknown arming profile %q, expected home or away", args[0])
		}

		return panel.Arm(cmd.Context(), panelOptions(), status)
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(armCmd)
}
