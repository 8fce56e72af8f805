package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/home-guard/internal/domain/security"
)

// openSQLite creates a repository in a temporary database and closes it with the test.
func openSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "panel.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, repo.Close())
	})

	return repo
}

// TestSQLiteRepository_InitialState verifies the schema seeds the initial panel state.
func TestSQLiteRepository_InitialState(t *testing.T) {
	t.Parallel()

	repo := openSQLite(t)
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

// TestSQLiteRepository_StatusRoundtrip verifies status writes are read back.
func TestSQLiteRepository_StatusRoundtrip(t *testing.T) {
	t.Parallel()

	repo := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, repo.SetAlarmStatus(ctx, domain.AlarmActive))
	require.NoError(t, repo.SetArmingStatus(ctx, domain.ArmingHome))

	alarm, err := repo.AlarmStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.AlarmActive, alarm)

	arming, err := repo.ArmingStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.ArmingHome, arming)
}

// TestSQLiteRepository_SensorSet verifies set semantics over the sensors table.
func TestSQLiteRepository_SensorSet(t *testing.T) {
	t.Parallel()

	repo := openSQLite(t)
	ctx := context.Background()

	door := domain.NewSensor("front door", domain.SensorDoor)
	window := domain.NewSensor("kitchen", domain.SensorWindow)

	require.NoError(t, repo.AddSensor(ctx, door))
	require.NoError(t, repo.AddSensor(ctx, window))
	require.ErrorIs(t, repo.AddSensor(ctx, domain.NewSensor("front door", domain.SensorDoor)), ErrSensorExists)

	sensors, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 2)
	require.Equal(t, door.Key(), sensors[0].Key())
	require.Equal(t, window.Key(), sensors[1].Key())

	activated := door.Clone()
	activated.Active = true
	require.NoError(t, repo.UpdateSensor(ctx, activated))

	sensors, err = repo.Sensors(ctx)
	require.NoError(t, err)
	require.True(t, sensors[0].Active)
	require.False(t, sensors[1].Active)

	ghost := domain.NewSensor("attic", domain.SensorMotion)
	require.ErrorIs(t, repo.UpdateSensor(ctx, ghost), ErrUnknownSensor)
	require.ErrorIs(t, repo.RemoveSensor(ctx, ghost), ErrUnknownSensor)

	require.NoError(t, repo.RemoveSensor(ctx, window))

	sensors, err = repo.Sensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 1)
}
