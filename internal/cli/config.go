package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/forcelay/forcelay/pkg/pipeline"
)

// =============================================================================
// Config File
// =============================================================================

// Config holds user-level defaults loaded from config.toml.
// All fields are optional; unset fields fall back to pipeline defaults.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig configures default layout parameters.
type LayoutConfig struct {
	Algorithm  string  `toml:"algorithm"`
	Dim        int     `toml:"dim"`
	Seed       uint64  `toml:"seed"`
	Iterations int     `toml:"iterations"`
	Scale      float64 `toml:"scale"`
}

// CacheConfig configures cache behavior.
type CacheConfig struct {
	Disabled bool `toml:"disabled"`
}

// configPath returns the path of the user config file (~/.config/forcelay/config.toml).
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads the user config file. A missing file is not an error
// and yields a zero-valued Config.
func loadConfig() (Config, error) {
	var cfg Config
	path, err := configPath()
	if err != nil {
		return cfg, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// apply copies non-zero config values onto opts.
func (cfg Config) apply(opts *pipeline.Options) {
	if cfg.Layout.Algorithm != "" {
		opts.Algorithm = cfg.Layout.Algorithm
	}
	if cfg.Layout.Dim != 0 {
		opts.Dim = cfg.Layout.Dim
	}
	if cfg.Layout.Seed != 0 {
		opts.Seed = cfg.Layout.Seed
	}
	if cfg.Layout.Iterations != 0 {
		opts.Iterations = cfg.Layout.Iterations
	}
	if cfg.Layout.Scale != 0 {
		opts.Scale = cfg.Layout.Scale
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults applies pipeline defaults and config-file overrides so the
// resulting values show up as flag defaults in --help.
func setCLIDefaults(opts *pipeline.Options) {
	opts.Algorithm = pipeline.DefaultAlgorithm
	opts.Dim = pipeline.DefaultDim
	opts.Seed = pipeline.DefaultSeed
	opts.Scale = pipeline.DefaultScale

	cfg, err := loadConfig()
	if err != nil {
		printWarning("Ignoring invalid config file: %v", err)
		return
	}
	cfg.apply(opts)
}
