package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/home-guard/internal/service/panel"
)

// scanCmd runs a camera frame through the decision engine.
var scanCmd = &cobra.Command{
	Use:   "scan <frame>",
	Short: "Analyze a camera frame for cat presence.",
	Long: `Decodes a PNG or JPEG frame and runs it through the image classifier.

A cat detected while the panel is armed-home rings the alarm. A clear frame
with every sensor idle resets the panel to no-alarm.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return panel.Scan(cmd.Context(), panelOptions(), args[0])
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(scanCmd)
}
