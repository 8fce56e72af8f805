package state

import (
	"context"
	"errors"

	domain "github.com/oshokin/home-guard/internal/domain/security"
)

// Repository defines persistence operations for the panel state.
// It is the single source of truth for the alarm status, the arming status,
// and the sensor set (set semantics: no duplicate sensor by identity).
type Repository interface {
	AlarmStatus(ctx context.Context) (domain.AlarmStatus, error)
	SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error
	ArmingStatus(ctx context.Context) (domain.ArmingStatus, error)
	SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error
	Sensors(ctx context.Context) ([]*domain.Sensor, error)
	AddSensor(ctx context.Context, sensor *domain.Sensor) error
	RemoveSensor(ctx context.Context, sensor *domain.Sensor) error
	UpdateSensor(ctx context.Context, sensor *domain.Sensor) error
}

var (
	// ErrNotFound is returned when a persisted snapshot does not exist yet.
	ErrNotFound = errors.New("state not found")
	// ErrUnknownSensor is returned when an operation references a sensor
	// that is not in the set.
	ErrUnknownSensor = errors.New("unknown sensor")
	// ErrSensorExists is returned when adding a sensor whose identity is
	// already in the set.
	ErrSensorExists = errors.New("sensor already registered")
	// errSensorRequired is returned when a nil sensor is passed in.
	errSensorRequired = errors.New("sensor is not set")
)
