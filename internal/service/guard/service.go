package guard

import (
	"context"
	"errors"
	"fmt"
	"image"

	domain "github.com/oshokin/home-guard/internal/domain/security"
	"github.com/oshokin/home-guard/internal/logger"
	repo "github.com/oshokin/home-guard/internal/repository/state"
	"github.com/oshokin/home-guard/internal/service/camera"
)

// Service is the alarm decision engine. It composes the state repository and
// the image classifier and owns the transition rules between alarm statuses.
//
// Calls are expected to be serialized by the caller; the engine itself takes
// no locks and keeps no memory between calls.
type Service struct {
	// repo is the single source of truth for panel state.
	repo repo.Repository
	// classifier answers whether a frame contains a cat.
	classifier camera.Service
	// confidenceThreshold is forwarded to the classifier on every scan.
	confidenceThreshold float32
}

var (
	// ErrSensorRequired is returned when a nil sensor is passed in.
	ErrSensorRequired = errors.New("sensor is not set")
	// ErrUnknownSensor is returned when the sensor is not registered with the panel.
	ErrUnknownSensor = errors.New("sensor is not registered")
	// ErrNoFrame is returned when a nil camera frame is passed in.
	ErrNoFrame = errors.New("camera frame is not set")
	// ErrInvalidSensorType is returned when a sensor carries a type outside the known set.
	ErrInvalidSensorType = errors.New("invalid sensor type")
	// ErrInvalidArmingStatus is returned when an arming status outside the known set is requested.
	ErrInvalidArmingStatus = errors.New("invalid arming status")
	// ErrCorruptState is returned when the repository yields a status outside
	// the known set. This is a programming error, not a recoverable condition.
	ErrCorruptState = errors.New("state store returned an unknown status")
)

// NewService creates the decision engine on top of the provided repository
// and classifier.
func NewService(repository repo.Repository, classifier camera.Service, confidenceThreshold float32) *Service {
	return &Service{
		repo:                repository,
		classifier:          classifier,
		confidenceThreshold: confidenceThreshold,
	}
}

// ChangeSensorActivation applies a sensor activation or deactivation event.
//
// Activation while armed escalates NO_ALARM to PENDING_ALARM and
// PENDING_ALARM to ALARM; re-activating an already-active sensor escalates
// too. Deactivation clears PENDING_ALARM back to NO_ALARM only if the sensor
// was previously active; deactivating an already-inactive sensor never
// touches the alarm status. The sensor's flag is written last, regardless of
// which branch was taken, so the rules above always see the previous value.
func (s *Service) ChangeSensorActivation(ctx context.Context, sensor *domain.Sensor, active bool) error {
	if sensor == nil {
		return ErrSensorRequired
	}

	stored, err := s.lookupSensor(ctx, sensor)
	if err != nil {
		return err
	}

	alarm, err := s.alarmStatus(ctx)
	if err != nil {
		return err
	}

	arming, err := s.armingStatus(ctx)
	if err != nil {
		return err
	}

	if active {
		if err = s.escalate(ctx, alarm, arming); err != nil {
			return err
		}
	} else if stored.Active && alarm == domain.AlarmPending {
		// A genuine active-to-inactive edge withdraws the pending alarm.
		// It never downgrades a ringing alarm.
		if err = s.setAlarmStatus(ctx, domain.AlarmNone); err != nil {
			return err
		}
	}

	updated := stored.Clone()
	updated.Active = active

	if err = s.repo.UpdateSensor(ctx, updated); err != nil {
		return fmt.Errorf("update sensor: %w", err)
	}

	logger.DebugKV(ctx, "Sensor activation changed", "sensor", updated.Key(), "active", active)

	return nil
}

// escalate advances the alarm status for a sensor activation while armed.
func (s *Service) escalate(ctx context.Context, alarm domain.AlarmStatus, arming domain.ArmingStatus) error {
	if arming == domain.ArmingDisarmed {
		// Disarmed sensors cannot escalate the alarm.
		return nil
	}

	switch alarm {
	case domain.AlarmNone:
		return s.setAlarmStatus(ctx, domain.AlarmPending)
	case domain.AlarmPending:
		return s.setAlarmStatus(ctx, domain.AlarmActive)
	case domain.AlarmActive:
		// Already ringing.
	}

	return nil
}

// ProcessImage runs a camera frame through the classifier and applies the
// visual rules: a cat while armed-home rings the alarm; an all-clear frame
// with no active sensors resets the panel to NO_ALARM.
func (s *Service) ProcessImage(ctx context.Context, frame image.Image) error {
	if frame == nil {
		return ErrNoFrame
	}

	catDetected, err := s.classifier.ContainsCat(ctx, frame, s.confidenceThreshold)
	if err != nil {
		return fmt.Errorf("classify frame: %w", err)
	}

	arming, err := s.armingStatus(ctx)
	if err != nil {
		return err
	}

	if catDetected {
		logger.InfoKV(ctx, "Cat detected on camera", "arming_status", arming)

		// Only armed-home installations evaluate cats as intruders.
		if arming == domain.ArmingHome {
			return s.setAlarmStatus(ctx, domain.AlarmActive)
		}

		return nil
	}

	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return fmt.Errorf("list sensors: %w", err)
	}

	for _, sensor := range sensors {
		if sensor.Active {
			// An active sensor still justifies the current status.
			return nil
		}
	}

	return s.setAlarmStatus(ctx, domain.AlarmNone)
}

// SetArmingStatus changes the arming profile. Disarming clears any alarm or
// pending state unconditionally; arming into a different profile resets every
// sensor's active flag first. The new arming status is written last.
func (s *Service) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidArmingStatus, status)
	}

	if status == domain.ArmingDisarmed {
		if err := s.setAlarmStatus(ctx, domain.AlarmNone); err != nil {
			return err
		}
	} else {
		current, err := s.armingStatus(ctx)
		if err != nil {
			return err
		}

		// Arming takes a snapshot assuming the premises are clear.
		if current != status {
			if err = s.resetSensors(ctx); err != nil {
				return err
			}
		}
	}

	if err := s.repo.SetArmingStatus(ctx, status); err != nil {
		return fmt.Errorf("set arming status: %w", err)
	}

	logger.InfoKV(ctx, "Arming status changed", "arming_status", status)

	return nil
}

// Sensors returns the current sensor set straight from the repository.
func (s *Service) Sensors(ctx context.Context) ([]*domain.Sensor, error) {
	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sensors: %w", err)
	}

	return sensors, nil
}

// AddSensor registers a sensor with the panel.
func (s *Service) AddSensor(ctx context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return ErrSensorRequired
	}

	if !sensor.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSensorType, sensor.Type)
	}

	if err := s.repo.AddSensor(ctx, sensor); err != nil {
		return fmt.Errorf("add sensor: %w", err)
	}

	return nil
}

// RemoveSensor removes a sensor from the panel.
func (s *Service) RemoveSensor(ctx context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return ErrSensorRequired
	}

	if err := s.repo.RemoveSensor(ctx, sensor); err != nil {
		return fmt.Errorf("remove sensor: %w", err)
	}

	return nil
}

// AlarmStatus returns the current alarm status.
func (s *Service) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	return s.alarmStatus(ctx)
}

// ArmingStatus returns the current arming status.
func (s *Service) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	return s.armingStatus(ctx)
}

// lookupSensor resolves the caller's sensor against the repository by
// identity, so the rules see the stored activation flag rather than the
// caller's copy.
func (s *Service) lookupSensor(ctx context.Context, sensor *domain.Sensor) (*domain.Sensor, error) {
	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sensors: %w", err)
	}

	for _, stored := range sensors {
		if stored.Key() == sensor.Key() {
			return stored, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownSensor, sensor.Key())
}

// resetSensors turns every sensor's active flag off.
func (s *Service) resetSensors(ctx context.Context) error {
	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return fmt.Errorf("list sensors: %w", err)
	}

	for _, sensor := range sensors {
		cleared := sensor.Clone()
		cleared.Active = false

		if err = s.repo.UpdateSensor(ctx, cleared); err != nil {
			return fmt.Errorf("reset sensor %s: %w", sensor.Key(), err)
		}
	}

	return nil
}

// alarmStatus reads and validates the current alarm status.
func (s *Service) alarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	alarm, err := s.repo.AlarmStatus(ctx)
	if err != nil {
		return "", fmt.Errorf("get alarm status: %w", err)
	}

	if !alarm.Valid() {
		return "", fmt.Errorf("%w: alarm status %q", ErrCorruptState, alarm)
	}

	return alarm, nil
}

// armingStatus reads and validates the current arming status.
func (s *Service) armingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	arming, err := s.repo.ArmingStatus(ctx)
	if err != nil {
		return "", fmt.Errorf("get arming status: %w", err)
	}

	if !arming.Valid() {
		return "", fmt.Errorf("%w: arming status %q", ErrCorruptState, arming)
	}

	return arming, nil
}

// setAlarmStatus writes the alarm status and logs the transition.
func (s *Service) setAlarmStatus(ctx context.Context, status domain.AlarmStatus) error {
	if err := s.repo.SetAlarmStatus(ctx, status); err != nil {
		return fmt.Errorf("set alarm status: %w", err)
	}

	logger.InfoKV(ctx, "Alarm status changed", "alarm_status", status)

	return nil
}
