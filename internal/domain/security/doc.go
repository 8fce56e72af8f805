// Package security contains core domain types for the security panel.
//
// It defines the Sensor entity together with the closed SensorType,
// ArmingStatus, and AlarmStatus enumerations. Sensors are identified by their
// (name, type) pair; Clone helpers avoid leaking internal references.
package security
