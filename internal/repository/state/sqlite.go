package state

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	// SQLite driver registration.
	_ "github.com/mattn/go-sqlite3"

	domain "github.com/oshokin/home-guard/internal/domain/security"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteRepository persists the panel state in an embedded SQLite database.
// The panel_state table holds a single row; sensors are keyed by (name, type).
type SQLiteRepository struct {
	// conn is the underlying database connection pool.
	conn *sql.DB
}

// NewSQLiteRepository opens (and if necessary initializes) the database at the
// provided path.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps readers from blocking the write-through updates.
	if _, err = conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err = conn.Exec(schemaSQL); err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("execute schema: %w", err)
	}

	return &SQLiteRepository{conn: conn}, nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.conn.Close()
}

// AlarmStatus returns the current alarm status.
func (r *SQLiteRepository) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	var status string
	if err := r.conn.QueryRowContext(ctx,
		"SELECT alarm_status FROM panel_state WHERE id = 1").Scan(&status); err != nil {
		return "", fmt.Errorf("query alarm status: %w", err)
	}

	return domain.AlarmStatus(status), nil
}

// SetAlarmStatus stores the alarm status.
func (r *SQLiteRepository) SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error {
	if _, err := r.conn.ExecContext(ctx,
		"UPDATE panel_state SET alarm_status = ? WHERE id = 1", string(status)); err != nil {
		return fmt.Errorf("update alarm status: %w", err)
	}

	return nil
}

// ArmingStatus returns the current arming status.
func (r *SQLiteRepository) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	var status string
	if err := r.conn.QueryRowContext(ctx,
		"SELECT arming_status FROM panel_state WHERE id = 1").Scan(&status); err != nil {
		return "", fmt.Errorf("query arming status: %w", err)
	}

	return domain.ArmingStatus(status), nil
}

// SetArmingStatus stores the arming status.
func (r *SQLiteRepository) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	if _, err := r.conn.ExecContext(ctx,
		"UPDATE panel_state SET arming_status = ? WHERE id = 1", string(status)); err != nil {
		return fmt.Errorf("update arming status: %w", err)
	}

	return nil
}

// Sensors returns the sensor set ordered by identity.
func (r *SQLiteRepository) Sensors(ctx context.Context) ([]*domain.Sensor, error) {
	rows, err := r.conn.QueryContext(ctx,
		"SELECT id, name, type, active FROM sensors ORDER BY name, type")
	if err != nil {
		return nil, fmt.Errorf("query sensors: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*domain.Sensor

	for rows.Next() {
		var (
			sensor     domain.Sensor
			sensorType string
		)

		if err = rows.Scan(&sensor.ID, &sensor.Name, &sensorType, &sensor.Active); err != nil {
			return nil, fmt.Errorf("scan sensor: %w", err)
		}

		sensor.Type = domain.SensorType(sensorType)
		result = append(result, &sensor)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sensors: %w", err)
	}

	return result, nil
}

// AddSensor inserts a sensor into the set.
func (r *SQLiteRepository) AddSensor(ctx context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return errSensorRequired
	}

	result, err := r.conn.ExecContext(ctx,
		"INSERT OR IGNORE INTO sensors (name, type, id, active) VALUES (?, ?, ?, ?)",
		sensor.Name, string(sensor.Type), sensor.ID, sensor.Active)
	if err != nil {
		return fmt.Errorf("insert sensor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert sensor: %w", err)
	}

	if affected == 0 {
		return ErrSensorExists
	}

	return nil
}

// RemoveSensor deletes a sensor from the set.
func (r *SQLiteRepository) RemoveSensor(ctx context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return errSensorRequired
	}

	result, err := r.conn.ExecContext(ctx,
		"DELETE FROM sensors WHERE name = ? AND type = ?",
		sensor.Name, string(sensor.Type))
	if err != nil {
		return fmt.Errorf("delete sensor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sensor: %w", err)
	}

	if affected == 0 {
		return ErrUnknownSensor
	}

	return nil
}

// UpdateSensor replaces the stored sensor with the same identity.
func (r *SQLiteRepository) UpdateSensor(ctx context.Context, sensor *domain.Sensor) error {
	if sensor == nil {
		return errSensorRequired
	}

	result, err := r.conn.ExecContext(ctx,
		"UPDATE sensors SET id = ?, active = ? WHERE name = ? AND type = ?",
		sensor.ID, sensor.Active, sensor.Name, string(sensor.Type))
	if err != nil {
		return fmt.Errorf("update sensor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sensor: %w", err)
	}

	if affected == 0 {
		return ErrUnknownSensor
	}

	return nil
}
