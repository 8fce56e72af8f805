package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/home-guard/internal/domain/security"
)

// TestMemoryRepository_InitialState verifies a fresh repository starts quiet and disarmed.
func TestMemoryRepository_InitialState(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepository()
	ctx := context.Background()

	alarm, err := repo.AlarmStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.AlarmNone, alarm)

	arming, err := repo.ArmingStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.ArmingDisarmed, arming)

	sensors, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.Empty(t, sensors)
}

// TestMemoryRepository_StatusRoundtrip verifies status writes are read back.
func TestMemoryRepository_StatusRoundtrip(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.SetAlarmStatus(ctx, domain.AlarmPending))
	require.NoError(t, repo.SetArmingStatus(ctx, domain.ArmingAway))

	alarm, err := repo.AlarmStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.AlarmPending, alarm)

	arming, err := repo.ArmingStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.ArmingAway, arming)
}

// TestMemoryRepository_SensorSet verifies set semantics and identity-based lookups.
func TestMemoryRepository_SensorSet(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepository()
	ctx := context.Background()

	door := domain.NewSensor("front door", domain.SensorDoor)
	require.NoError(t, repo.AddSensor(ctx, door))

	// Same identity, different instance.
	duplicate := domain.NewSensor("front door", domain.SensorDoor)
	require.ErrorIs(t, repo.AddSensor(ctx, duplicate), ErrSensorExists)

	// Same name, different type is a different sensor.
	require.NoError(t, repo.AddSensor(ctx, domain.NewSensor("front door", domain.SensorMotion)))

	sensors, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 2)

	ghost := domain.NewSensor("attic", domain.SensorWindow)
	require.ErrorIs(t, repo.UpdateSensor(ctx, ghost), ErrUnknownSensor)
	require.ErrorIs(t, repo.RemoveSensor(ctx, ghost), ErrUnknownSensor)

	activated := door.Clone()
	activated.Active = true
	require.NoError(t, repo.UpdateSensor(ctx, activated))

	sensors, err = repo.Sensors(ctx)
	require.NoError(t, err)
	require.True(t, sensors[0].Active)

	require.NoError(t, repo.RemoveSensor(ctx, door))

	sensors, err = repo.Sensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 1)
}

// TestMemoryRepository_ClonesSensors verifies callers cannot mutate stored state.
func TestMemoryRepository_ClonesSensors(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepository()
	ctx := context.Background()

	sensor := domain.NewSensor("porch", domain.SensorMotion)
	require.NoError(t, repo.AddSensor(ctx, sensor))

	// Mutating the caller's copy must not affect the stored sensor.
	sensor.Active = true

	sensors, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.False(t, sensors[0].Active)

	// Mutating the returned copy must not affect the stored sensor either.
	sensors[0].Active = true

	again, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.False(t, again[0].Active)
}
