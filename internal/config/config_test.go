package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Agents <= 0 {
		t.Error("default agent count should be positive")
	}
	if cfg.GreetRadius <= 0 {
		t.Error("default greet radius should be positive")
	}
	if cfg.Move.Min >= cfg.Move.Max {
		t.Error("default move range should be non-degenerate")
	}
	if cfg.Index != "quadtree" {
		t.Errorf("expected quadtree default, got %s", cfg.Index)
	}
}

func TestSimConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Agents = 7
	cfg.GreetRadius = 3.5
	cfg.Bounds = BoundsConfig{XMin: -1, XMax: 2, YMin: -3, YMax: 4}

	sc := cfg.Sim()
	if sc.Agents != 7 || sc.GreetRadius != 3.5 {
		t.Errorf("conversion dropped fields: %+v", sc)
	}
	if sc.Bounds.Min[0] != -1 || sc.Bounds.Max[0] != 2 || sc.Bounds.Min[1] != -3 || sc.Bounds.Max[1] != 4 {
		t.Errorf("bounds not converted: %v", sc.Bounds)
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("converted default config should validate: %v", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Agents = 33
	cfg.Index = "linear"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Agents != 33 || loaded.Index != "linear" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("agents: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Agents != 5 {
		t.Errorf("expected 5 agents, got %d", cfg.Agents)
	}
	// Unspecified fields keep defaults.
	if cfg.GreetRadius != DefaultGreetRadius {
		t.Errorf("expected default radius, got %f", cfg.GreetRadius)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("frozen")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Move.Min != 0 || cfg.Move.Max != 0 {
		t.Errorf("frozen preset should not move: %+v", cfg.Move)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected presets")
	}
}

func TestPresetsValidate(t *testing.T) {
	for name, cfg := range Presets {
		if err := cfg.Sim().Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}
