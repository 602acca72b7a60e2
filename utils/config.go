package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth        = 60
	DefaultHeight       = 30
	DefaultMinDimension = 10
	DefaultTickInterval = 150 * time.Millisecond
)

// ErrInvalidConfig is returned by Validate when a setting is out of range
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the board and its runners
type Config struct {
	Width               int           `json:"width" yaml:"width"`
	Height              int           `json:"height" yaml:"height"`
	MinDimension        int           `json:"min_dimension" yaml:"min_dimension"`
	TickInterval        time.Duration `json:"tick_interval" yaml:"tick_interval"`
	AutoTick            bool          `json:"auto_tick" yaml:"auto_tick"`
	RandomDensity       float64       `json:"random_density" yaml:"random_density"`
	Seed                int64         `json:"seed" yaml:"seed"`
	Pattern             string        `json:"pattern" yaml:"pattern"`
	AutoRestart         bool          `json:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	InjectionCount      int           `json:"injection_count" yaml:"injection_count"`
	MaxGenerations      int           `json:"max_generations" yaml:"max_generations"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		MinDimension:        DefaultMinDimension,
		TickInterval:        DefaultTickInterval,
		RandomDensity:       0.15,
		Seed:                1,
		AutoRestart:         true,
		StagnationThreshold: 5,
		InjectionCount:      3,
		MaxGenerations:      1000,
	}
}

func isYAML(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig loads configuration from a YAML or JSON file, on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if isYAML(filename) {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// SaveConfig writes the configuration as YAML
func SaveConfig(filename string, config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "[SaveConfig] failed to marshal config")
	}
	if err = os.WriteFile(filename, data, 0644); err != nil {
		return errors.Wrapf(err, "[SaveConfig] failed to write file: %+v", filename)
	}
	return nil
}

// Validate checks the settings the board and runners depend on
func (c Config) Validate() error {
	switch {
	case c.MinDimension < 1:
		return errors.Wrapf(ErrInvalidConfig, "min_dimension must be positive, got %d", c.MinDimension)
	case c.Width < c.MinDimension:
		return errors.Wrapf(ErrInvalidConfig, "width %d is below the minimum of %d", c.Width, c.MinDimension)
	case c.Height < c.MinDimension:
		return errors.Wrapf(ErrInvalidConfig, "height %d is below the minimum of %d", c.Height, c.MinDimension)
	case c.TickInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "tick_interval must be positive, got %s", c.TickInterval)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random_density must be within [0,1], got %g", c.RandomDensity)
	case c.StagnationThreshold < 0 || c.InjectionCount < 0 || c.MaxGenerations < 0:
		return errors.Wrap(ErrInvalidConfig, "counts must not be negative")
	}
	return nil
}
