package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestArmingStatusValid verifies the closed set of arming statuses.
func TestArmingStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range []ArmingStatus{ArmingDisarmed, ArmingHome, ArmingAway} {
		require.True(t, s.Valid())
		require.NotEqual(t, "Unknown", s.Description())
	}

	require.False(t, ArmingStatus("ARMED_VACATION").Valid())
	require.False(t, ArmingStatus("").Valid())
}

// TestArmingStatusArmed verifies only home/away profiles count as armed.
func TestArmingStatusArmed(t *testing.T) {
	t.Parallel()

	require.False(t, ArmingDisarmed.Armed())
	require.True(t, ArmingHome.Armed())
	require.True(t, ArmingAway.Armed())
}

// TestParseArmingStatus verifies parsing of full names and short profiles.
func TestParseArmingStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]ArmingStatus{
		"disarmed":   ArmingDisarmed,
		"home":       ArmingHome,
		"away":       ArmingAway,
		"ARMED_HOME": ArmingHome,
		"armed_away": ArmingAway,
	}
	for input, want := range cases {
		got, ok := ParseArmingStatus(input)
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok := ParseArmingStatus("panic")
	require.False(t, ok)
}

// TestAlarmStatusValid verifies the closed set of alarm statuses.
func TestAlarmStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range []AlarmStatus{AlarmNone, AlarmPending, AlarmActive} {
		require.True(t, s.Valid())
		require.NotEqual(t, "Unknown", s.Description())
	}

	require.False(t, AlarmStatus("MELTDOWN").Valid())
}
