package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "basic-pareto" {
		t.Errorf("expected name basic-pareto, got %s", cfg.Name)
	}
	if cfg.Reference != "pareto" {
		t.Errorf("expected reference pareto, got %s", cfg.Reference)
	}
	if len(cfg.DataCounts) != 3 {
		t.Fatalf("expected 3 data counts, got %d", len(cfg.DataCounts))
	}
	want := []int{40, 60, 220}
	for i, c := range want {
		if cfg.DataCounts[i] != c {
			t.Errorf("data count %d: expected %d, got %d", i, c, cfg.DataCounts[i])
		}
	}
	if cfg.KLD.Max != 0.25 {
		t.Errorf("expected kld max 0.25, got %f", cfg.KLD.Max)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")

	cfg := DefaultConfig()
	cfg.Name = "custom"
	cfg.XMax = 20
	cfg.Anim.FPS = 8

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != "custom" {
		t.Errorf("expected name custom, got %s", loaded.Name)
	}
	if loaded.XMax != 20 {
		t.Errorf("expected x_max 20, got %f", loaded.XMax)
	}
	if loaded.Anim.FPS != 8 {
		t.Errorf("expected fps 8, got %d", loaded.Anim.FPS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty name", func(c *Config) { c.Name = "" }},
		{"inverted x range", func(c *Config) { c.XMax = c.XMin }},
		{"inverted y range", func(c *Config) { c.YMax = c.YMin }},
		{"no data counts", func(c *Config) { c.DataCounts = nil }},
		{"empty kld range", func(c *Config) { c.KLD.CountMax = c.KLD.CountMin }},
		{"zero anim step", func(c *Config) { c.Anim.Step = 0 }},
		{"zero fps", func(c *Config) { c.Anim.FPS = 0 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("basic-normal")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Reference != "normal" {
		t.Errorf("expected reference normal, got %s", cfg.Reference)
	}
	if cfg.XMin != -4 {
		t.Errorf("expected x_min -4, got %f", cfg.XMin)
	}

	// Mutating the returned preset must not change the table.
	cfg.DataCounts[0] = 999
	if Presets["basic-normal"].DataCounts[0] == 999 {
		t.Error("preset table was mutated through the returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	found := false
	for _, n := range names {
		if n == "basic-pareto" {
			found = true
		}
	}
	if !found {
		t.Error("expected basic-pareto in preset list")
	}
}
