package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	MinFloors = 2
	MinCars   = 1
)

// Config is fixed for the lifetime of a simulation.
type Config struct {
	NumFloors         int           `yaml:"floors"`
	NumCars           int           `yaml:"lifts"`
	TravelDuration    time.Duration `yaml:"travel_duration"`
	DoorOpenDuration  time.Duration `yaml:"door_open_duration"`
	DoorCloseDuration time.Duration `yaml:"door_close_duration"`

	SensorPollRate time.Duration `yaml:"sensor_poll_rate"`
	MsgRepetitions int           `yaml:"msg_repetitions"`
	MsgInterval    time.Duration `yaml:"msg_interval"`
	CallPort       int           `yaml:"call_port"`
	EventAddr      string        `yaml:"event_addr"`
	PanelAddr      string        `yaml:"panel_addr"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

func Default() Config {
	return Config{
		NumFloors:         4,
		NumCars:           2,
		TravelDuration:    1 * time.Second,
		DoorOpenDuration:  2500 * time.Millisecond,
		DoorCloseDuration: 2500 * time.Millisecond,
		SensorPollRate:    25 * time.Millisecond,
		MsgRepetitions:    3,
		MsgInterval:       10 * time.Millisecond,
		LogLevel:          "info",
	}
}

// Validate is called before any simulation state is built.
func (c Config) Validate() error {
	if c.NumFloors < MinFloors {
		return fmt.Errorf("%w: floors must be at least %d, got %d", ErrInvalidConfig, MinFloors, c.NumFloors)
	}
	if c.NumCars < MinCars {
		return fmt.Errorf("%w: lifts must be at least %d, got %d", ErrInvalidConfig, MinCars, c.NumCars)
	}
	if c.TravelDuration < 0 || c.DoorOpenDuration < 0 || c.DoorCloseDuration < 0 {
		return fmt.Errorf("%w: phase durations must not be negative", ErrInvalidConfig)
	}
	if c.MsgRepetitions < 1 {
		return fmt.Errorf("%w: msg_repetitions must be at least 1, got %d", ErrInvalidConfig, c.MsgRepetitions)
	}
	return nil
}

// Load layers defaults, an optional YAML file and optional env file.
// Variables already present in the process environment win over the env file.
func Load(yamlPath, envPath string) (Config, error) {
	cfg := Default()
	if yamlPath != "" {
		if err := cfg.loadYAML(yamlPath); err != nil {
			return cfg, err
		}
	}
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return cfg, fmt.Errorf("loading env file %s: %w", envPath, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	ints := map[string]*int{
		"LIFTSIM_FLOORS":          &c.NumFloors,
		"LIFTSIM_LIFTS":           &c.NumCars,
		"LIFTSIM_MSG_REPETITIONS": &c.MsgRepetitions,
		"LIFTSIM_CALL_PORT":       &c.CallPort,
	}
	for key, field := range ints {
		value, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, value)
		}
		*field = n
	}

	durations := map[string]*time.Duration{
		"LIFTSIM_TRAVEL_DURATION":     &c.TravelDuration,
		"LIFTSIM_DOOR_OPEN_DURATION":  &c.DoorOpenDuration,
		"LIFTSIM_DOOR_CLOSE_DURATION": &c.DoorCloseDuration,
		"LIFTSIM_SENSOR_POLL_RATE":    &c.SensorPollRate,
		"LIFTSIM_MSG_INTERVAL":        &c.MsgInterval,
	}
	for key, field := range durations {
		value, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, value)
		}
		*field = d
	}

	strs := map[string]*string{
		"LIFTSIM_EVENT_ADDR": &c.EventAddr,
		"LIFTSIM_PANEL_ADDR": &c.PanelAddr,
		"LIFTSIM_LOG_LEVEL":  &c.LogLevel,
		"LIFTSIM_LOG_FILE":   &c.LogFile,
	}
	for key, field := range strs {
		if value, ok := os.LookupEnv(key); ok {
			*field = value
		}
	}
	return nil
}

// TopFloor is the highest valid floor index.
func (c Config) TopFloor() int {
	return c.NumFloors - 1
}
