package panel

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/home-guard/internal/config"
	domain "github.com/oshokin/home-guard/internal/domain/security"
)

// writeSettings saves a file-backed configuration into a temp dir and returns the options.
func writeSettings(t *testing.T, cfg *config.Config) *Options {
	t.Helper()

	dir := t.TempDir()
	if cfg.StateFile == "" {
		cfg.StateFile = filepath.Join(dir, "state.json")
	}

	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, config.Save(path, cfg))

	return &Options{ConfigPath: path}
}

// TestPanel_SensorLifecycle walks add, activate, status and remove through the
// file backend.
func TestPanel_SensorLifecycle(t *testing.T) {
	t.Parallel()

	opts := writeSettings(t, &config.Config{Storage: config.StorageFile})
	ctx := context.Background()

	require.NoError(t, AddSensor(ctx, opts, "front door", domain.SensorDoor))
	require.NoError(t, Arm(ctx, opts, domain.ArmingAway))
	require.NoError(t, SetSensorActive(ctx, opts, "front door", domain.SensorDoor, true))

	var out bytes.Buffer
	require.NoError(t, Status(ctx, opts, &out))
	require.Contains(t, out.String(), string(domain.AlarmPending))
	require.Contains(t, out.String(), "front door")
	require.Contains(t, out.String(), "ACTIVE")

	// Unknown sensors are rejected.
	require.ErrorIs(t,
		SetSensorActive(ctx, opts, "back door", domain.SensorDoor, true),
		ErrSensorNotFound)

	require.NoError(t, RemoveSensor(ctx, opts, "front door", domain.SensorDoor))

	out.Reset()
	require.NoError(t, Status(ctx, opts, &out))
	require.Contains(t, out.String(), "Sensors (0)")
}

// TestPanel_DisarmClearsEscalation verifies the disarm operation resets the
// alarm across separate sessions (state survives reopening the backend).
func TestPanel_DisarmClearsEscalation(t *testing.T) {
	t.Parallel()

	opts := writeSettings(t, &config.Config{
		Storage: config.StorageFile,
		Sensors: []config.SensorSeed{
			{Name: "hallway", Type: "motion"},
		},
	})
	ctx := context.Background()

	require.NoError(t, Arm(ctx, opts, domain.ArmingHome))
	require.NoError(t, SetSensorActive(ctx, opts, "hallway", domain.SensorMotion, true))
	require.NoError(t, SetSensorActive(ctx, opts, "hallway", domain.SensorMotion, true))

	var out bytes.Buffer
	require.NoError(t, Status(ctx, opts, &out))
	require.Contains(t, out.String(), "Alarm:  "+string(domain.AlarmActive))

	require.NoError(t, Disarm(ctx, opts))

	out.Reset()
	require.NoError(t, Status(ctx, opts, &out))
	require.Contains(t, out.String(), "Alarm:  "+string(domain.AlarmNone))
	require.Contains(t, out.String(), domain.ArmingDisarmed.Description())
}

// TestPanel_SeededSensorsAreKeptAcrossSessions verifies seeding is idempotent.
func TestPanel_SeededSensorsAreKeptAcrossSessions(t *testing.T) {
	t.Parallel()

	opts := writeSettings(t, &config.Config{
		Storage: config.StorageFile,
		Sensors: []config.SensorSeed{
			{Name: "front door", Type: "door"},
			{Name: "kitchen", Type: "window"},
		},
	})
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, Status(ctx, opts, &out))
	require.Contains(t, out.String(), "Sensors (2)")

	// A second session must not duplicate the seeds.
	out.Reset()
	require.NoError(t, Status(ctx, opts, &out))
	require.Contains(t, out.String(), "Sensors (2)")
}

// TestPanel_ScanProcessesFrame verifies scan decodes a real frame and runs the engine.
func TestPanel_ScanProcessesFrame(t *testing.T) {
	t.Parallel()

	opts := writeSettings(t, &config.Config{
		Storage: config.StorageFile,
		// Fixed seed keeps the stand-in classifier deterministic per run.
		CameraSeed: 7,
	})
	ctx := context.Background()

	framePath := filepath.Join(t.TempDir(), "frame.png")
	file, err := os.Create(framePath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	require.NoError(t, file.Close())

	require.NoError(t, Scan(ctx, opts, framePath))

	// Missing or undecodable frames fail before any session is opened.
	require.Error(t, Scan(ctx, opts, filepath.Join(t.TempDir(), "missing.png")))
}
