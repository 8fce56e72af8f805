package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/home-guard/internal/domain/security"
)

// SensorSeed describes a sensor to register when the panel first starts.
type SensorSeed struct {
	// Name is the operator-assigned sensor label.
	Name string `yaml:"name"`
	// Type is the sensor type (door, window or motion).
	Type string `yaml:"type"`
}

// Config holds the settings shared by all panel subcommands.
type Config struct {
	// Storage selects the state backend: memory, file or sqlite.
	Storage string `yaml:"storage"`
	// StateFile is the path to the JSON snapshot used by the file backend.
	StateFile string `yaml:"state_file"`
	// DatabaseFile is the path to the SQLite database used by the sqlite backend.
	DatabaseFile string `yaml:"database_file"`
	// ConfidenceThreshold is passed to the image classifier on every scan.
	ConfidenceThreshold float32 `yaml:"confidence_threshold"`
	// CameraSeed pins the stand-in classifier's verdict sequence.
	// Zero means seed from the clock.
	CameraSeed int64 `yaml:"camera_seed"`
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// Sensors are registered on first use; already-known sensors are kept as is.
	Sensors []SensorSeed `yaml:"sensors"`
}

// Supported storage backends.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

const (
	// DefaultConfigFilename is the default filename for panel settings.
	DefaultConfigFilename = "home-guard-settings.yaml"

	// DefaultStateFilename is the default filename for the JSON state snapshot.
	DefaultStateFilename = "home-guard-state.json"

	// DefaultDatabaseFilename is the default filename for the SQLite database.
	DefaultDatabaseFilename = "home-guard.db"

	// DefaultConfidenceThreshold is the classifier threshold used when none is configured.
	DefaultConfidenceThreshold float32 = 0.5

	// DefaultFilePermissions is the default file permission for settings and state files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownStorage is returned when the storage backend is not recognized.
	errUnknownStorage = errors.New("storage must be one of: memory, file, sqlite")
	// errThresholdOutOfRange is returned when the confidence threshold is not within (0, 1].
	errThresholdOutOfRange = errors.New("confidence threshold must be within (0, 1]")
)

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	return &Config{
		Storage:             StorageFile,
		StateFile:           DefaultStateFilename,
		DatabaseFile:        DefaultDatabaseFilename,
		ConfidenceThreshold: DefaultConfidenceThreshold,
	}
}

// Load reads configuration from the provided path and validates essential
// fields. A missing file is not an error: the panel runs on defaults until
// the operator saves a configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Storage == "" {
		cfg.Storage = StorageFile
	}

	switch cfg.Storage {
	case StorageMemory, StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("%w, got %q", errUnknownStorage, cfg.Storage)
	}

	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFilename
	}

	if cfg.DatabaseFile == "" {
		cfg.DatabaseFile = DefaultDatabaseFilename
	}

	if cfg.ConfidenceThreshold == 0 {
		cfg.ConfidenceThreshold = DefaultConfidenceThreshold
	}

	if cfg.ConfidenceThreshold <= 0 || cfg.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w, got %v", errThresholdOutOfRange, cfg.ConfidenceThreshold)
	}

	for _, seed := range cfg.Sensors {
		if _, ok := domain.ParseSensorType(seed.Type); !ok {
			return fmt.Errorf("sensor %q: unknown type %q", seed.Name, seed.Type)
		}
	}

	return nil
}
