package config

import (
	"fmt"
	"os"

	"github.com/san-kum/gravsim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 1000.0
	DefaultHeight        = 1000.0
	DefaultWallThickness = 5.0
	DefaultG             = 1.0
	DefaultMinDistSq     = 25.0
	DefaultRestitution   = 1.0
	DefaultFPS           = 60
	DefaultSpeed         = 1.0
	DefaultDuration      = 10.0
	DefaultBodies        = 15
	DefaultMassMin       = 5.0
	DefaultMassMax       = 20.0
	DefaultSpeedMax      = 10.0
	DefaultFieldSpacing  = 50.0
	DefaultFieldLength   = 20.0
)

type Config struct {
	World     WorldConfig    `yaml:"world"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Timing    TimingConfig   `yaml:"timing"`
	Particles ParticleConfig `yaml:"particles"`
	Field     FieldConfig    `yaml:"field"`
	View      ViewConfig     `yaml:"view"`
}

type WorldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
}

type PhysicsConfig struct {
	G           float64 `yaml:"g"`
	MinDistSq   float64 `yaml:"min_dist_sq"`
	Restitution float64 `yaml:"restitution"`
}

// TimingConfig sets the fixed timestep. Each frame advances Speed/FPS
// simulated seconds regardless of how long the frame actually took.
type TimingConfig struct {
	FPS      int     `yaml:"fps"`
	Speed    float64 `yaml:"speed"`
	Duration float64 `yaml:"duration"`
}

type ParticleConfig struct {
	Count    int     `yaml:"count"`
	Layout   string  `yaml:"layout"`
	MassMin  float64 `yaml:"mass_min"`
	MassMax  float64 `yaml:"mass_max"`
	SpeedMax float64 `yaml:"speed_max"`
	Seed     int64   `yaml:"seed"`
}

type FieldConfig struct {
	Enabled bool    `yaml:"enabled"`
	Spacing float64 `yaml:"spacing"`
	Length  float64 `yaml:"length"`
}

type ViewConfig struct {
	Theme string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Width:         DefaultWidth,
			Height:        DefaultHeight,
			WallThickness: DefaultWallThickness,
		},
		Physics: PhysicsConfig{
			G:           DefaultG,
			MinDistSq:   DefaultMinDistSq,
			Restitution: DefaultRestitution,
		},
		Timing: TimingConfig{
			FPS:      DefaultFPS,
			Speed:    DefaultSpeed,
			Duration: DefaultDuration,
		},
		Particles: ParticleConfig{
			Count:    DefaultBodies,
			Layout:   "random",
			MassMin:  DefaultMassMin,
			MassMax:  DefaultMassMax,
			SpeedMax: DefaultSpeedMax,
		},
		Field: FieldConfig{
			Enabled: true,
			Spacing: DefaultFieldSpacing,
			Length:  DefaultFieldLength,
		},
		View: ViewConfig{Theme: "cyberpunk"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Dt is the fixed simulated time per frame.
func (c *Config) Dt() float64 {
	if c.Timing.FPS <= 0 {
		return 0
	}
	return c.Timing.Speed / float64(c.Timing.FPS)
}

// Steps is the number of frames covering Timing.Duration simulated seconds.
func (c *Config) Steps() int {
	dt := c.Dt()
	if dt <= 0 {
		return 0
	}
	return int(c.Timing.Duration/dt + 0.5)
}

func (c *Config) Validate() error {
	switch {
	case c.Timing.FPS <= 0:
		return dynamo.BoundsError("timing.fps", float64(c.Timing.FPS), "> 0")
	case c.Timing.Speed <= 0:
		return dynamo.BoundsError("timing.speed", c.Timing.Speed, "> 0")
	case c.Timing.Duration < 0:
		return dynamo.BoundsError("timing.duration", c.Timing.Duration, ">= 0")
	case c.Particles.Count < 0:
		return dynamo.BoundsError("particles.count", float64(c.Particles.Count), ">= 0")
	case c.Particles.MassMin <= 0:
		return dynamo.BoundsError("particles.mass_min", c.Particles.MassMin, "> 0")
	case c.Particles.MassMax < c.Particles.MassMin:
		return dynamo.BoundsError("particles.mass_max", c.Particles.MassMax, ">= mass_min")
	case c.Particles.SpeedMax < 0:
		return dynamo.BoundsError("particles.speed_max", c.Particles.SpeedMax, ">= 0")
	}
	return c.physicsParams().Validate()
}

// Params validates the config and returns the physics parameters for a run.
func (c *Config) Params() (dynamo.Params, error) {
	if err := c.Validate(); err != nil {
		return dynamo.Params{}, err
	}
	return c.physicsParams(), nil
}

func (c *Config) physicsParams() dynamo.Params {
	p := dynamo.Params{
		Width:         c.World.Width,
		Height:        c.World.Height,
		WallThickness: c.World.WallThickness,
		G:             c.Physics.G,
		Dt:            c.Dt(),
		MinDistSq:     c.Physics.MinDistSq,
		Restitution:   c.Physics.Restitution,
	}
	if c.Field.Enabled {
		p.FieldSpacing = c.Field.Spacing
		p.FieldLength = c.Field.Length
	}
	return p
}
