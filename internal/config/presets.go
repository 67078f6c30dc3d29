package config

var Presets = map[string]*Config{
	// Crowded box: greets land within a handful of ticks.
	"dense": {
		Agents: 50, Seed: 1, Ticks: 50, GreetRadius: 2.0,
		Move:   RangeConfig{Min: -2, Max: 2},
		Bounds: BoundsConfig{XMin: -10, XMax: 10, YMin: -10, YMax: 10},
		Index:  "quadtree",
	},
	// Wide spread with long walks; greets are rare events.
	"sparse": {
		Agents: 10, Seed: 1, Ticks: 500, GreetRadius: 1.0,
		Move:   RangeConfig{Min: -5, Max: 5},
		Bounds: BoundsConfig{XMin: -100, XMax: 100, YMin: -100, YMax: 100},
		Index:  "quadtree",
	},
	// Nothing moves; only agents placed within range ever greet.
	"frozen": {
		Agents: 20, Seed: 1, Ticks: 10, GreetRadius: 2.0,
		Move:   RangeConfig{Min: 0, Max: 0},
		Bounds: BoundsConfig{XMin: -10, XMax: 10, YMin: -10, YMax: 10},
		Index:  "linear",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
