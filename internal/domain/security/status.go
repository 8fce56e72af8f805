package security

import "strings"

// ArmingStatus represents whether the panel is disarmed or armed with a
// home/away profile.
type ArmingStatus string

// Known arming statuses.
const (
	// ArmingDisarmed means the panel ignores sensor activity.
	ArmingDisarmed ArmingStatus = "DISARMED"
	// ArmingHome means the panel is armed while residents are at home.
	ArmingHome ArmingStatus = "ARMED_HOME"
	// ArmingAway means the panel is armed with the premises empty.
	ArmingAway ArmingStatus = "ARMED_AWAY"
)

// Valid reports whether the value belongs to the closed set of arming statuses.
func (s ArmingStatus) Valid() bool {
	switch s {
	case ArmingDisarmed, ArmingHome, ArmingAway:
		return true
	}

	return false
}

// Armed reports whether the panel is armed in any profile.
func (s ArmingStatus) Armed() bool {
	return s == ArmingHome || s == ArmingAway
}

// Description returns a human-readable label for panel output.
func (s ArmingStatus) Description() string {
	switch s {
	case ArmingDisarmed:
		return "Disarmed"
	case ArmingHome:
		return "Armed (home)"
	case ArmingAway:
		return "Armed (away)"
	}

	return "Unknown"
}

// ParseArmingStatus converts user input to an ArmingStatus.
func ParseArmingStatus(s string) (ArmingStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DISARMED":
		return ArmingDisarmed, true
	case "ARMED_HOME", "HOME":
		return ArmingHome, true
	case "ARMED_AWAY", "AWAY":
		return ArmingAway, true
	}

	return "", false
}

// AlarmStatus is the output state the decision engine computes.
type AlarmStatus string

// Known alarm statuses.
const (
	// AlarmNone means nothing suspicious has been observed.
	AlarmNone AlarmStatus = "NO_ALARM"
	// AlarmPending means a sensor fired while armed; one more event escalates.
	AlarmPending AlarmStatus = "PENDING_ALARM"
	// AlarmActive means the alarm is ringing.
	AlarmActive AlarmStatus = "ALARM"
)

// Valid reports whether the value belongs to the closed set of alarm statuses.
func (s AlarmStatus) Valid() bool {
	switch s {
	case AlarmNone, AlarmPending, AlarmActive:
		return true
	}

	return false
}

// Description returns a human-readable label for panel output.
func (s AlarmStatus) Description() string {
	switch s {
	case AlarmNone:
		return "All quiet"
	case AlarmPending:
		return "Pending alarm"
	case AlarmActive:
		return "ALARM"
	}

	return "Unknown"
}
