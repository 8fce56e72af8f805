package state

import (
	"context"
	"sort"
	"sync"

	domain "github.com/oshokin/home-guard/internal/domain/security"
)

// MemoryRepository keeps the panel state in process memory.
// Sensors are cloned on the way in and out so callers cannot mutate the
// stored set behind the repository's back.
type MemoryRepository struct {
	// mu protects all fields below.
	mu sync.RWMutex
	// alarm is the current alarm status.
	alarm domain.AlarmStatus
	// arming is the current arming status.
	arming domain.ArmingStatus
	// sensors is the sensor set keyed by identity.
	sensors map[string]*domain.Sensor
}

// NewMemoryRepository creates an empty repository in the initial panel state.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		alarm:   domain.AlarmNone,
		arming:  domain.ArmingDisarmed,
		sensors: make(map[string]*domain.Sensor),
	}
}

// AlarmStatus returns the current alarm status.
func (r *MemoryRepository) AlarmStatus(_ context.Context) (domain.AlarmStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.alarm, nil
}

// SetAlarmStatus stores the alarm status.
func (r *MemoryRepository) SetAlarmStatus(_ context.Context, status domain.AlarmStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alarm = status

	return nil
}

// ArmingStatus returns the current arming status.
func (r *MemoryRepository) ArmingStatus(_ context.Context) (domain.ArmingStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.arming, nil
}

// SetArmingStatus stores the arming status.
func (r *MemoryRepository) SetArmingStatus(_ context.Context, status domain.ArmingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.arming = status

	return nil
}

// Sensors returns the sensor set ordered by identity.
func (r *MemoryRepository) Sensors(_ context.Context) ([]*domain.Sensor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Sensor, 0, len(r.sensors))
	for _, sensor := range r.sensors {
		result = append(result, sensor.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key() < result[j].Key()
	})

	return result, nil
}

// AddSensor inserts a sensor into the set.
func (r *MemoryRepository) AddSensor(_ context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return errSensorRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sensors[sensor.Key()]; ok {
		return ErrSensorExists
	}

	r.sensors[sensor.Key()] = sensor.Clone()

	return nil
}

// RemoveSensor deletes a sensor from the set.
func (r *MemoryRepository) RemoveSensor(_ context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return errSensorRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sensors[sensor.Key()]; !ok {
		return ErrUnknownSensor
	}

	delete(r.sensors, sensor.Key())

	return nil
}

// UpdateSensor replaces the stored sensor with the same identity.
func (r *MemoryRepository) UpdateSensor(_ context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return errSensorRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sensors[sensor.Key()]; !ok {
		return ErrUnknownSensor
	}

	r.sensors[sensor.Key()] = sensor.Clone()

	return nil
}
