package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tzneal/gridref/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.Datum != "wgs84" || cfg.Precision != 1 || cfg.Bessel || cfg.Format != "json" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %s", err)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("datum: osgb36\nprecision: 100\n"))
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if cfg.Datum != "osgb36" || cfg.Precision != 100 {
		t.Errorf("expected osgb36 at 100m, got %+v", cfg)
	}
	if cfg.Format != "json" || cfg.Bessel {
		t.Errorf("expected defaults for missing fields, got %+v", cfg)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, data := range []string{"precision: 5\n", "format: xml\n", "datum: [\n", "precision: many\n"} {
		if _, err := config.Parse([]byte(data)); err == nil {
			t.Errorf("%q: expected an error", data)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridconv.yaml")
	if err := os.WriteFile(path, []byte("bessel: true\nformat: yaml\n"), 0o600); err != nil {
		t.Fatalf("error writing config: %s", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if !cfg.Bessel || cfg.Format != "yaml" || cfg.Datum != "wgs84" {
		t.Errorf("unexpected config %+v", cfg)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
