package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Driver != "constant" {
		t.Errorf("expected driver constant, got %s", cfg.Driver)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if len(cfg.Grade) != 2 {
		t.Errorf("expected 2 default grade segments, got %d", len(cfg.Grade))
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Driver = "ramp"
	cfg.Duration = 42
	cfg.Vehicle = map[string]float64{"mass": 1500}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Driver != "ramp" {
		t.Errorf("expected driver ramp, got %s", loaded.Driver)
	}
	if loaded.Duration != 42 {
		t.Errorf("expected duration 42, got %f", loaded.Duration)
	}
	if loaded.Vehicle["mass"] != 1500 {
		t.Errorf("expected mass override 1500, got %f", loaded.Vehicle["mass"])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("slope")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Driver != "ramp" {
		t.Errorf("expected ramp driver, got %s", cfg.Driver)
	}
	if cfg.Ramp.Peak != 0.5 {
		t.Errorf("expected peak 0.5, got %f", cfg.Ramp.Peak)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("slope")
	cfg.Duration = 99
	cfg.Grade[0].Rise = 42

	fresh := GetPreset("slope")
	if fresh.Duration != 20.0 {
		t.Errorf("preset duration mutated: got %f", fresh.Duration)
	}
	if fresh.Grade[0].Rise != 3 {
		t.Errorf("preset grade mutated: got %f", fresh.Grade[0].Rise)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 {
		t.Errorf("expected 3 presets, got %d", len(presets))
	}
}
