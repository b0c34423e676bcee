package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/dynamo"
)

var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"dense": func(c *Config) {
		c.Particles.Count = 60
		c.Particles.MassMin = 3
		c.Particles.MassMax = 8
		c.Field.Spacing = 40
	},
	"inelastic": func(c *Config) {
		c.Physics.Restitution = 0.6
		c.Particles.Count = 30
	},
	"ring": func(c *Config) {
		c.Particles.Layout = "ring"
		c.Particles.Count = 12
		c.Physics.G = 20
		c.Particles.MassMin = 8
		c.Particles.MassMax = 8
	},
	"binary": func(c *Config) {
		c.Particles.Layout = "binary"
		c.Particles.Count = 8
		c.Physics.G = 50
		c.Timing.Duration = 30
	},
}

// GetPreset returns a fresh default config with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
