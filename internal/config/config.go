package config

import (
	"os"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"github.com/avelent/mingle/internal/agent"
	"github.com/avelent/mingle/internal/sim"
)

const (
	DefaultAgents      = 20
	DefaultTicks       = 100
	DefaultGreetRadius = 2.0
	DefaultMoveMin     = -5.0
	DefaultMoveMax     = 5.0
	DefaultExtent      = 10.0
)

type Config struct {
	Agents      int          `yaml:"agents"`
	Seed        int64        `yaml:"seed"`
	Ticks       int          `yaml:"ticks"`
	GreetRadius float64      `yaml:"greet_radius"`
	Move        RangeConfig  `yaml:"move"`
	Bounds      BoundsConfig `yaml:"bounds"`
	Index       string       `yaml:"index"`
}

type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type BoundsConfig struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

func DefaultConfig() *Config {
	return &Config{
		Agents:      DefaultAgents,
		Seed:        1,
		Ticks:       DefaultTicks,
		GreetRadius: DefaultGreetRadius,
		Move:        RangeConfig{Min: DefaultMoveMin, Max: DefaultMoveMax},
		Bounds: BoundsConfig{
			XMin: -DefaultExtent, XMax: DefaultExtent,
			YMin: -DefaultExtent, YMax: DefaultExtent,
		},
		Index: "quadtree",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Sim converts the file representation into the model's config.
func (c *Config) Sim() sim.Config {
	return sim.Config{
		Agents:      c.Agents,
		Seed:        c.Seed,
		Ticks:       c.Ticks,
		GreetRadius: c.GreetRadius,
		Move:        agent.Interval{Min: c.Move.Min, Max: c.Move.Max},
		Bounds: orb.Bound{
			Min: orb.Point{c.Bounds.XMin, c.Bounds.YMin},
			Max: orb.Point{c.Bounds.XMax, c.Bounds.YMax},
		},
		Index: c.Index,
	}
}
