package qbloch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRotationDuration = 750 * time.Millisecond
	DefaultFrameInterval    = 16 * time.Millisecond
	DefaultShots            = 1000
)

type Config struct {
	RotationDuration time.Duration `yaml:"rotation_duration"`
	PathResolution   int           `yaml:"path_resolution"`
	FrameInterval    time.Duration `yaml:"frame_interval"`
	Shots            int           `yaml:"shots"`
	ShowEstimates    bool          `yaml:"show_estimates"`
}

func NewConfig() *Config {
	return &Config{
		RotationDuration: DefaultRotationDuration,
		PathResolution:   DefaultPathResolution,
		FrameInterval:    DefaultFrameInterval,
		Shots:            DefaultShots,
	}
}

/*
LoadConfig reads a YAML file over the defaults. Keys missing from the file
keep their default value; durations use Go syntax, e.g. "750ms".
*/
func LoadConfig(path string) (*Config, error) {
	config := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects values the animator cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.RotationDuration <= 0:
		return fmt.Errorf("%w: rotation_duration must be positive, got %v", ErrInvalidConfig, c.RotationDuration)
	case c.PathResolution < 1:
		return fmt.Errorf("%w: path_resolution must be at least 1, got %d", ErrInvalidConfig, c.PathResolution)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%w: frame_interval must be positive, got %v", ErrInvalidConfig, c.FrameInterval)
	case c.Shots < 0:
		return fmt.Errorf("%w: shots must not be negative, got %d", ErrInvalidConfig, c.Shots)
	}
	return nil
}
