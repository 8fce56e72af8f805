package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/oshokin/home-guard/internal/domain/security"
	"github.com/oshokin/home-guard/internal/service/panel"
)

// sensorType is the --type flag shared by the sensor subcommands.
var sensorType string

// sensorCmd groups the sensor management subcommands.
var sensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Manage sensors and feed activation events.",
}

// sensorAddCmd registers a new sensor.
var sensorAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Register a sensor with the panel.",
	Long: `Registers a sensor of the given type. Sensors are identified by their
(name, type) pair; omitting the name assigns a random UUID.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := parseSensorTypeFlag()
		if err != nil {
			return err
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		}

		return panel.AddSensor(cmd.Context(), panelOptions(), name, parsed)
	},
}

// sensorRemoveCmd removes a sensor.
var sensorRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a sensor from the panel.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := parseSensorTypeFlag()
		if err != nil {
			return err
		}

		return panel.RemoveSensor(cmd.Context(), panelOptions(), args[0], parsed)
	},
}

// sensorOnCmd feeds an activation event into the decision engine.
var sensorOnCmd = &cobra.Command{
	Use:   "on <name>",
	Short: "Mark a sensor as triggered.",
	Long: `Feeds a sensor activation into the decision engine. While armed, this
escalates the alarm status: quiet panels go pending, pending panels ring.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := parseSensorTypeFlag()
		if err != nil {
			return err
		}

		return panel.SetSensorActive(cmd.Context(), panelOptions(), args[0], parsed, true)
	},
}

// sensorOffCmd feeds a deactivation event into the decision engine.
var sensorOffCmd = &cobra.Command{
	Use:   "off <name>",
	Short: "Mark a sensor as idle.",
	Long: `Feeds a sensor deactivation into the decision engine. A pending alarm is
withdrawn if the sensor was the one holding it; a ringing alarm stays.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := parseSensorTypeFlag()
		if err != nil {
			return err
		}

		return panel.SetSensorActive(cmd.Context(), panelOptions(), args[0], parsed, false)
	},
}

// sensorListCmd prints the sensor set via the status operation.
var sensorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered sensors and the panel status.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return panel.Status(cmd.Context(), panelOptions(), cmd.OutOrStdout())
	},
}

// parseSensorTypeFlag validates the --type flag.
func parseSensorTypeFlag() (domain.SensorType, error) {
	parsed, ok := domain.ParseSensorType(sensorType)
	if !ok {
		return "", fmt.Errorf("unknown sensor type %q, expected door, window or motion", sensorType)
	}

	return parsed, nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	sensorCmd.PersistentFlags().
		StringVarP(&sensorType, "type", "t", "door", "sensor type (door, window, motion)")

	sensorCmd.AddCommand(sensorAddCmd, sensorRemoveCmd, sensorOnCmd, sensorOffCmd, sensorListCmd)
	rootCmd.AddCommand(sensorCmd)
}
