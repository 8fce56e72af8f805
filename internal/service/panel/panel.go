package panel

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	// Frame formats accepted by the scan operation.
	_ "image/jpeg"
	_ "image/png"

	"github.com/oshokin/home-guard/internal/config"
	domain "github.com/oshokin/home-guard/internal/domain/security"
	"github.com/oshokin/home-guard/internal/logger"
	repository "github.com/oshokin/home-guard/internal/repository/state"
	"github.com/oshokin/home-guard/internal/service/camera"
	"github.com/oshokin/home-guard/internal/service/guard"
)

// Options controls how a panel session is assembled.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Storage provides an optional backend override (memory, file, sqlite).
	Storage string
	// StateFile provides an optional state snapshot path override.
	StateFile string
}

// ErrSensorNotFound is returned when an operation names a sensor the panel
// does not know.
var ErrSensorNotFound = errors.New("no such sensor")

// session holds everything one panel operation needs.
type session struct {
	// cfg is the loaded configuration.
	cfg *config.Config
	// repo is the opened state backend.
	repo repository.Repository
	// service is the decision engine.
	service *guard.Service
}

// open loads settings, opens the configured backend and builds the engine.
func open(ctx context.Context, opts *Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	// Command line options override the configuration file.
	if opts.Storage != "" {
		cfg.Storage = opts.Storage
	}

	if opts.StateFile != "" {
		cfg.StateFile = opts.StateFile
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	repo, err := openRepository(cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		repo:    repo,
		service: guard.NewService(repo, newClassifier(cfg), cfg.ConfidenceThreshold),
	}

	if err = s.seedSensors(ctx); err != nil {
		s.close(ctx)

		return nil, err
	}

	return s, nil
}

// close releases the backend if it holds resources.
func (s *session) close(ctx context.Context) {
	if closer, ok := s.repo.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Errorf(ctx, "Failed to close state backend: %v", err)
		}
	}
}

// seedSensors registers configured sensors, keeping already-known ones as is.
func (s *session) seedSensors(ctx context.Context) error {
	for _, seed := range s.cfg.Sensors {
		sensorType, ok := domain.ParseSensorType(seed.Type)
		if !ok {
			return fmt.Errorf("sensor %q: unknown type %q", seed.Name, seed.Type)
		}

		err := s.repo.AddSensor(ctx, domain.NewSensor(seed.Name, sensorType))
		if err != nil && !errors.Is(err, repository.ErrSensorExists) {
			return fmt.Errorf("seed sensor %q: %w", seed.Name, err)
		}
	}

	return nil
}

// findSensor resolves a sensor by name and type.
func (s *session) findSensor(ctx context.Context, name string, sensorType domain.SensorType) (*domain.Sensor, error) {
	sensors, err := s.service.Sensors(ctx)
	if err != nil {
		return nil, err
	}

	for _, sensor := range sensors {
		if sensor.Name == name && sensor.Type == sensorType {
			return sensor, nil
		}
	}

	return nil, fmt.Errorf("%w: %s (%s)", ErrSensorNotFound, name, sensorType)
}

// openRepository creates the backend selected by the configuration.
func openRepository(cfg *config.Config) (repository.Repository, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return repository.NewMemoryRepository(), nil
	case config.StorageFile:
		repo, err := repository.NewFileRepository(cfg.StateFile)
		if err != nil {
			return nil, fmt.Errorf("open state file: %w", err)
		}

		return repo, nil
	case config.StorageSQLite:
		repo, err := repository.NewSQLiteRepository(cfg.DatabaseFile)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}

		return repo, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}

// newClassifier builds the stand-in classifier, seeded from the configuration
// or the clock.
func newClassifier(cfg *config.Config) camera.Service {
	seed := cfg.CameraSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return camera.NewFakeService(seed)
}

// Arm switches the panel to the requested arming profile.
func Arm(ctx context.Context, opts *Options, status domain.ArmingStatus) error {
	ctx = logger.WithName(ctx, "panel")

	s, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	return s.service.SetArmingStatus(ctx, status)
}

// Disarm switches the panel off, clearing any alarm.
func Disarm(ctx context.Context, opts *Options) error {
	return Arm(ctx, opts, domain.ArmingDisarmed)
}

// AddSensor registers a new sensor with the panel.
func AddSensor(ctx context.Context, opts *Options, name string, sensorType domain.SensorType) error {
	ctx = logger.WithName(ctx, "panel")

	s, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	sensor := domain.NewSensor(name, sensorType)
	if err = s.service.AddSensor(ctx, sensor); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Sensor registered", "sensor", sensor.Key(), "id", sensor.ID)

	return nil
}

// RemoveSensor removes a sensor from the panel.
func RemoveSensor(ctx context.Context, opts *Options, name string, sensorType domain.SensorType) error {
	ctx = logger.WithName(ctx, "panel")

	s, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	sensor, err := s.findSensor(ctx, name, sensorType)
	if err != nil {
		return err
	}

	return s.service.RemoveSensor(ctx, sensor)
}

// SetSensorActive feeds a sensor activation or deactivation event into the
// decision engine.
func SetSensorActive(ctx context.Context, opts *Options, name string, sensorType domain.SensorType, active bool) error {
	ctx = logger.WithName(ctx, "panel")

	s, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	sensor, err := s.findSensor(ctx, name, sensorType)
	if err != nil {
		return err
	}

	return s.service.ChangeSensorActivation(ctx, sensor, active)
}

// Scan decodes a camera frame from disk and runs it through the engine.
func Scan(ctx context.Context, opts *Options, framePath string) error {
	ctx = logger.WithName(ctx, "panel")

	frame, err := decodeFrame(framePath)
	if err != nil {
		return err
	}

	s, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	if err = s.service.ProcessImage(ctx, frame); err != nil {
		return err
	}

	status, err := s.service.AlarmStatus(ctx)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Frame processed", "frame", framePath, "alarm_status", status)

	return nil
}

// Status writes the current panel state to the provided writer.
func Status(ctx context.Context, opts *Options, w io.Writer) error {
	ctx = logger.WithName(ctx, "panel")

	s, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	alarm, err := s.service.AlarmStatus(ctx)
	if err != nil {
		return err
	}

	arming, err := s.service.ArmingStatus(ctx)
	if err != nil {
		return err
	}

	sensors, err := s.service.Sensors(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Alarm:  %s (%s)\n", alarm, alarm.Description())
	fmt.Fprintf(w, "Arming: %s (%s)\n", arming, arming.Description())
	fmt.Fprintf(w, "Sensors (%d):\n", len(sensors))

	for _, sensor := range sensors {
		flag := "idle"
		if sensor.Active {
			flag = "ACTIVE"
		}

		fmt.Fprintf(w, "  %-8s %-20s %s\n", sensor.Type, sensor.Name, flag)
	}

	return nil
}

// decodeFrame loads a PNG or JPEG frame from disk.
func decodeFrame(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	frame, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	return frame, nil
}
