package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/home-guard/internal/config"
	domain "github.com/oshokin/home-guard/internal/domain/security"
)

// snapshot is the on-disk JSON representation of the panel state.
type snapshot struct {
	// AlarmStatus is the persisted alarm status.
	AlarmStatus domain.AlarmStatus `json:"alarm_status"`
	// ArmingStatus is the persisted arming status.
	ArmingStatus domain.ArmingStatus `json:"arming_status"`
	// Sensors is the persisted sensor set.
	Sensors []*domain.Sensor `json:"sensors"`
}

// FileRepository persists the panel state to a JSON file on disk.
// Every mutation writes the full snapshot through to the file.
type FileRepository struct {
	// path is the filesystem location of the JSON state file.
	path string
	// mu protects current and access to the state file.
	mu sync.Mutex
	// current is the in-memory copy of the persisted snapshot.
	current *snapshot
}

// NewFileRepository opens a repository backed by JSON at the provided path.
// A missing file yields the initial panel state; it is created on the first
// mutation.
func NewFileRepository(path string) (*FileRepository, error) {
	repository := &FileRepository{
		path: filepath.Clean(path),
	}

	snap, err := loadSnapshot(repository.path)
	switch {
	case err == nil:
		repository.current = snap
	case errors.Is(err, ErrNotFound):
		repository.current = &snapshot{
			AlarmStatus:  domain.AlarmNone,
			ArmingStatus: domain.ArmingDisarmed,
		}
	default:
		return nil, err
	}

	return repository, nil
}

// AlarmStatus returns the current alarm status.
func (r *FileRepository) AlarmStatus(_ context.Context) (domain.AlarmStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current.AlarmStatus, nil
}

// SetAlarmStatus stores and persists the alarm status.
func (r *FileRepository) SetAlarmStatus(_ context.Context, status domain.AlarmStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current.AlarmStatus = status

	return r.persist()
}

// ArmingStatus returns the current arming status.
func (r *FileRepository) ArmingStatus(_ context.Context) (domain.ArmingStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current.ArmingStatus, nil
}

// SetArmingStatus stores and persists the arming status.
func (r *FileRepository) SetArmingStatus(_ context.Context, status domain.ArmingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current.ArmingStatus = status

	return r.persist()
}

// Sensors returns the sensor set.
func (r *FileRepository) Sensors(_ context.Context) ([]*domain.Sensor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Sensor, 0, len(r.current.Sensors))
	for _, sensor := range r.current.Sensors {
		result = append(result, sensor.Clone())
	}

	return result, nil
}

// AddSensor inserts a sensor into the set and persists the snapshot.
func (r *FileRepository) AddSensor(_ context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return errSensorRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(sensor.Key()) >= 0 {
		return ErrSensorExists
	}

	r.current.Sensors = append(r.current.Sensors, sensor.Clone())

	return r.persist()
}

// RemoveSensor deletes a sensor from the set and persists the snapshot.
func (r *FileRepository) RemoveSensor(_ context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return errSensorRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(sensor.Key())
	if i < 0 {
		return ErrUnknownSensor
	}

	r.current.Sensors = append(r.current.Sensors[:i], r.current.Sensors[i+1:]...)

	return r.persist()
}

// UpdateSensor replaces the stored sensor with the same identity and persists
// the snapshot.
func (r *FileRepository) UpdateSensor(_ context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return errSensorRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(sensor.Key())
	if i < 0 {
		return ErrUnknownSensor
	}

	r.current.Sensors[i] = sensor.Clone()

	return r.persist()
}

// find returns the index of the sensor with the given identity, or -1.
// Callers must hold mu.
func (r *FileRepository) find(key string) int {
	for i, sensor := range r.current.Sensors {
		if sensor.Key() == key {
			return i
		}
	}

	return -1
}

// persist writes the current snapshot to disk. Callers must hold mu.
func (r *FileRepository) persist() error {
	data, err := json.MarshalIndent(r.current, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// loadSnapshot reads a snapshot from disk.
func loadSnapshot(path string) (*snapshot, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read state file: %w", err)
	}

	var snap snapshot
	if err = json.Unmarshal(contents, &snap); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}

	return &snap, nil
}
