// Package config loads and validates the viewer configuration from a
// YAML file. Every field has a usable default; a missing file is not an
// error, only an unreadable or invalid one is.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/graphlens/pkg/simulation"
	"github.com/dd0wney/graphlens/pkg/viewport"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate
)

func init() {
	validate = validator.New()
}

// Config is the root configuration for the viewer.
type Config struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Simulation SimulationConfig `yaml:"simulation"`
	Source     SourceConfig     `yaml:"source"`
	Server     ServerConfig     `yaml:"server"`
}

// ViewportConfig sets the initial drawing surface size in pixels.
type ViewportConfig struct {
	Width  int `yaml:"width" validate:"min=100,max=16384"`
	Height int `yaml:"height" validate:"min=100,max=16384"`
}

// SimulationConfig tunes the force layout.
type SimulationConfig struct {
	LinkDistance   float64 `yaml:"linkDistance" validate:"gt=0"`
	LinkStrength   float64 `yaml:"linkStrength" validate:"gt=0,lte=1"`
	ChargeStrength float64 `yaml:"chargeStrength" validate:"lt=0"`
	CenterStrength float64 `yaml:"centerStrength" validate:"gt=0,lte=1"`
	VelocityDecay  float64 `yaml:"velocityDecay" validate:"gt=0,lt=1"`
	AlphaMin       float64 `yaml:"alphaMin" validate:"gt=0,lt=1"`
}

// SourceConfig selects where snapshots come from.
type SourceConfig struct {
	Kind         string `yaml:"kind" validate:"oneof=file postgres feed demo"`
	Path         string `yaml:"path"`
	PostgresURL  string `yaml:"postgresUrl"`
	FeedURL      string `yaml:"feedUrl"`
	CenterNodeID string `yaml:"centerNodeId"`
}

// ServerConfig configures the optional HTTP API.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr" validate:"required_if=Enabled true"`
}

// Default returns the built-in configuration.
func Default() Config {
	sim := simulation.DefaultConfig()
	return Config{
		Viewport: ViewportConfig{
			Width:  800,
			Height: int(viewport.DefaultHeight),
		},
		Simulation: SimulationConfig{
			LinkDistance:   sim.LinkDistance,
			LinkStrength:   sim.LinkStrength,
			ChargeStrength: sim.ChargeStrength,
			CenterStrength: sim.CenterStrength,
			VelocityDecay:  sim.VelocityDecay,
			AlphaMin:       sim.AlphaMin,
		},
		Source: SourceConfig{
			Kind: "demo",
		},
		Server: ServerConfig{
			Enabled: false,
			Addr:    "localhost:7474",
		},
	}
}

// Load reads the YAML file at path on top of the defaults and validates
// the result. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Source.Kind == "file" && c.Source.Path == "" {
		return errors.New("Source.Path: required for file sources")
	}
	if c.Source.Kind == "postgres" && c.Source.PostgresURL == "" {
		return errors.New("Source.PostgresURL: required for postgres sources")
	}
	if c.Source.Kind == "feed" && c.Source.FeedURL == "" {
		return errors.New("Source.FeedURL: required for feed sources")
	}
	return nil
}

// EngineConfig converts the simulation section into engine tuning.
func (c *Config) EngineConfig() simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.LinkDistance = c.Simulation.LinkDistance
	cfg.LinkStrength = c.Simulation.LinkStrength
	cfg.ChargeStrength = c.Simulation.ChargeStrength
	cfg.CenterStrength = c.Simulation.CenterStrength
	cfg.VelocityDecay = c.Simulation.VelocityDecay
	cfg.AlphaMin = c.Simulation.AlphaMin
	cfg.AlphaDecay = simulation.AlphaDecayFor(c.Simulation.AlphaMin)
	return cfg
}

func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required", "required_if":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must be at most %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "lt":
			return fmt.Errorf("%s: must be less than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: failed %s validation", field, tag)
		}
	}
	return err
}
