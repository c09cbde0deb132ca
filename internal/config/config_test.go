package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wethinkt/go-swatchsheet/internal/layout"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.LayerName != "Pantone Swatches" {
		t.Errorf("default layer name = %q", cfg.LayerName)
	}
	if cfg.Layout != layout.DefaultConfig() {
		t.Errorf("default layout = %+v", cfg.Layout)
	}
	if cfg.Label.Font != "Helvetica" || cfg.Label.Size != 12 {
		t.Errorf("default label = %+v", cfg.Label)
	}
	if len(cfg.Libraries) != 2 || cfg.Libraries[0] != "basic" {
		t.Errorf("default libraries = %v", cfg.Libraries)
	}
}

func TestDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SWATCHSHEET_HOME", dir)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}

	path, _ := Path()
	if path != filepath.Join(dir, "config.json") {
		t.Errorf("Path() = %q", path)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("SWATCHSHEET_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LayerName != DefaultLayerName {
		t.Errorf("LayerName = %q", cfg.LayerName)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("SWATCHSHEET_HOME", t.TempDir())

	cfg := Default()
	cfg.Layout.SwatchSize = 72
	cfg.Libraries = []string{"house"}
	cfg.Language = "de"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Layout.SwatchSize != 72 || loaded.Language != "de" {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.Libraries) != 1 || loaded.Libraries[0] != "house" {
		t.Errorf("loaded libraries = %v", loaded.Libraries)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SWATCHSHEET_HOME", dir)

	partial := `{"layout": {"swatch_size": 40}, "layer_name": ""}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(partial), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Layout.SwatchSize != 40 {
		t.Errorf("SwatchSize = %v, want 40", cfg.Layout.SwatchSize)
	}
	if cfg.Layout.Padding != 30 {
		t.Errorf("Padding = %v, want default 30", cfg.Layout.Padding)
	}
	if cfg.LayerName != DefaultLayerName {
		t.Errorf("empty layer name should fall back to default, got %q", cfg.LayerName)
	}
}

func TestLoadRejectsInvalidLayout(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SWATCHSHEET_HOME", dir)

	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"layout": {"swatch_size": 0}}`), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); !errors.Is(err, layout.ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestDebounceDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 500 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"bogus", 500 * time.Millisecond},
		{"-1s", 500 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := (WatchConfig{Debounce: tt.in}).DebounceDuration(); got != tt.want {
			t.Errorf("DebounceDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
