package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Fit.ExpSeed != 1.2 || cfg.Fit.FlatSeed != 0.4 {
		t.Errorf("unexpected default seeds: %g, %g", cfg.Fit.ExpSeed, cfg.Fit.FlatSeed)
	}
	if cfg.Fit.SmoothSigma != 8.0 {
		t.Errorf("unexpected default smooth sigma: %g", cfg.Fit.SmoothSigma)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("unexpected default log format: %q", cfg.Logging.Format)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `"

[fit]
exp_seed = 1.5
flat_seed = 0.35

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if resolved != path {
		t.Errorf("resolved path mismatch: got %q, want %q", resolved, path)
	}
	if cfg.Fit.ExpSeed != 1.5 || cfg.Fit.FlatSeed != 0.35 {
		t.Errorf("seeds not loaded: %g, %g", cfg.Fit.ExpSeed, cfg.Fit.FlatSeed)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging not normalized: %q, %q", cfg.Logging.Format, cfg.Logging.Level)
	}
	if cfg.Fit.SmoothSigma != 8.0 {
		t.Errorf("omitted smooth sigma should default to 8, got %g", cfg.Fit.SmoothSigma)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "negative exp seed",
			mutate: func(c *Config) { c.Fit.ExpSeed = -2 },
			want:   "fit.exp_seed",
		},
		{
			name:   "flat seed above one",
			mutate: func(c *Config) { c.Fit.FlatSeed = 1.5 },
			want:   "fit.flat_seed",
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Logging.Format = "yaml" },
			want:   "logging.format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.normalize(); err != nil {
				t.Fatalf("normalize failed: %v", err)
			}
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Fit.ExpSeed != 1.2 {
		t.Errorf("sample exp seed mismatch: %g", cfg.Fit.ExpSeed)
	}

	if err := CreateSample(path); err == nil {
		t.Fatal("expected error when sample already exists")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := ExpandPath("~/data")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if got != filepath.Join(home, "data") {
		t.Errorf("ExpandPath mismatch: got %q", got)
	}
}
