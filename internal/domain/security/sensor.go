package security

import (
	"strings"

	"github.com/google/uuid"
)

// SensorType classifies the physical device behind a sensor.
type SensorType string

// Known sensor types.
const (
	SensorDoor   SensorType = "DOOR"
	SensorWindow SensorType = "WINDOW"
	SensorMotion SensorType = "MOTION"
)

// Valid reports whether the value belongs to the closed set of sensor types.
func (t SensorType) Valid() bool {
	switch t {
	case SensorDoor, SensorWindow, SensorMotion:
		return true
	}

	return false
}

// ParseSensorType converts user input to a SensorType.
func ParseSensorType(s string) (SensorType, bool) {
	t := SensorType(strings.ToUpper(strings.TrimSpace(s)))
	if t.Valid() {
		return t, true
	}

	return "", false
}

// Sensor is a binary input device of a fixed type.
// Identity for set membership is the (Name, Type) pair; ID is an opaque
// audit identifier assigned at creation and never interpreted.
type Sensor struct {
	// ID uniquely identifies the sensor instance for audit output.
	ID string `json:"id"`
	// Name is the operator-assigned label.
	Name string `json:"name"`
	// Type is fixed after creation.
	Type SensorType `json:"type"`
	// Active reports whether the sensor is currently triggered.
	Active bool `json:"active"`
}

// NewSensor creates an inactive sensor of the given type.
// An empty name is replaced with a random UUID.
func NewSensor(name string, sensorType SensorType) *Sensor {
	if name == "" {
		name = uuid.NewString()
	}

	return &Sensor{
		ID:   uuid.NewString(),
		Name: name,
		Type: sensorType,
	}
}

// Key returns the identity of the sensor used for set membership.
func (s *Sensor) Key() string {
	return s.Name + "/" + string(s.Type)
}

// Clone returns a copy of the sensor to avoid leaking internal references.
func (s *Sensor) Clone() *Sensor {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}
