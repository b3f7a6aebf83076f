package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/forcelay/forcelay/pkg/cache"
	"github.com/forcelay/forcelay/pkg/pipeline"
)

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() with missing file: %v", err)
	}
	if cfg.Layout.Algorithm != "" {
		t.Errorf("missing config should be zero-valued, got algorithm %q", cfg.Layout.Algorithm)
	}
}

func TestLoadConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
[layout]
algorithm = "forceatlas2"
dim = 3
seed = 7
iterations = 25
scale = 2.5

[cache]
disabled = true
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Layout.Algorithm != "forceatlas2" {
		t.Errorf("algorithm = %q, want forceatlas2", cfg.Layout.Algorithm)
	}
	if cfg.Layout.Dim != 3 {
		t.Errorf("dim = %d, want 3", cfg.Layout.Dim)
	}
	if cfg.Layout.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Layout.Seed)
	}
	if cfg.Layout.Iterations != 25 {
		t.Errorf("iterations = %d, want 25", cfg.Layout.Iterations)
	}
	if cfg.Layout.Scale != 2.5 {
		t.Errorf("scale = %v, want 2.5", cfg.Layout.Scale)
	}
	if !cfg.Cache.Disabled {
		t.Error("cache.disabled should be true")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig() should fail on invalid TOML")
	}
}

func TestConfigApply(t *testing.T) {
	opts := pipeline.Options{
		Algorithm: pipeline.DefaultAlgorithm,
		Dim:       pipeline.DefaultDim,
		Seed:      pipeline.DefaultSeed,
		Scale:     pipeline.DefaultScale,
	}

	cfg := Config{Layout: LayoutConfig{Algorithm: "kamada_kawai", Seed: 99}}
	cfg.apply(&opts)

	if opts.Algorithm != "kamada_kawai" {
		t.Errorf("algorithm = %q, want kamada_kawai", opts.Algorithm)
	}
	if opts.Seed != 99 {
		t.Errorf("seed = %d, want 99", opts.Seed)
	}

	// Unset config fields keep their existing values.
	if opts.Dim != pipeline.DefaultDim {
		t.Errorf("dim = %d, want %d", opts.Dim, pipeline.DefaultDim)
	}
	if opts.Scale != pipeline.DefaultScale {
		t.Errorf("scale = %v, want %v", opts.Scale, pipeline.DefaultScale)
	}
}

func TestSetCLIDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	if opts.Algorithm != pipeline.DefaultAlgorithm {
		t.Errorf("algorithm = %q, want %q", opts.Algorithm, pipeline.DefaultAlgorithm)
	}
	if opts.Dim != pipeline.DefaultDim {
		t.Errorf("dim = %d, want %d", opts.Dim, pipeline.DefaultDim)
	}
	if opts.Seed != pipeline.DefaultSeed {
		t.Errorf("seed = %d, want %d", opts.Seed, pipeline.DefaultSeed)
	}
	if opts.Scale != pipeline.DefaultScale {
		t.Errorf("scale = %v, want %v", opts.Scale, pipeline.DefaultScale)
	}
}

func TestNewCacheHonorsConfigDisabled(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[cache]\ndisabled = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := newCache(false)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Fatalf("newCache with cache.disabled = %T, want *cache.NullCache", c)
	}
}

func TestNewCacheEnabledByDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := newCache(false)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	if _, ok := c.(*cache.NullCache); ok {
		t.Fatal("newCache without config should use the file cache")
	}
}
