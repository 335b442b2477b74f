// Package config loads the YAML settings that drive a simulation run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// World sizes the simulated area and its navigation grid.
type World struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
}

// Cols returns the number of whole grid columns.
func (w World) Cols() int {
	return int(w.Width / w.CellSize)
}

// Rows returns the number of whole grid rows.
func (w World) Rows() int {
	return int(w.Height / w.CellSize)
}

// Config is one simulation run's settings.
type Config struct {
	Tick     time.Duration `yaml:"tick"`
	LogLevel string        `yaml:"log_level"`
	World    World         `yaml:"world"`
	Bodies   int           `yaml:"bodies"`
	Agents   int           `yaml:"agents"`
	MaxSpeed float64       `yaml:"max_speed"`
	Seed     uint64        `yaml:"seed"`
}

// Default returns a config that passes Validate.
func Default() *Config {
	return &Config{
		Tick:     16 * time.Millisecond,
		LogLevel: "info",
		World: World{
			Width:    640,
			Height:   480,
			CellSize: 32,
		},
		Bodies:   200,
		Agents:   20,
		MaxSpeed: 120,
		Seed:     1,
	}
}

// Load reads and validates the config at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r over the defaults and validates the result. Unknown
// keys are rejected. An empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid field, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case c.Tick <= 0:
		return fmt.Errorf("%w: tick must be positive, got %s", ErrInvalid, c.Tick)
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world must have positive size, got %gx%g", ErrInvalid, c.World.Width, c.World.Height)
	case c.World.CellSize <= 0:
		return fmt.Errorf("%w: world.cell_size must be positive, got %g", ErrInvalid, c.World.CellSize)
	case c.World.Cols() < 1 || c.World.Rows() < 1:
		return fmt.Errorf("%w: world.cell_size %g does not fit in the world", ErrInvalid, c.World.CellSize)
	case c.Bodies < 0:
		return fmt.Errorf("%w: bodies must not be negative, got %d", ErrInvalid, c.Bodies)
	case c.Agents < 0:
		return fmt.Errorf("%w: agents must not be negative, got %d", ErrInvalid, c.Agents)
	case c.MaxSpeed < 0:
		return fmt.Errorf("%w: max_speed must not be negative, got %g", ErrInvalid, c.MaxSpeed)
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
		}
	}
	return nil
}
