package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/fresh/internal/config/loader"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "FRESH_"

// Config holds every editor setting.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Search SearchConfig `toml:"search"`
	Log    LogConfig    `toml:"log"`
}

// EditorConfig holds document display and storage settings.
type EditorConfig struct {
	TabWidth    int   `toml:"tab_width"`
	LineWrap    bool  `toml:"line_wrap"`
	LineNumbers bool  `toml:"line_numbers"`
	ChunkSize   int64 `toml:"chunk_size"` // bytes per lazily loaded chunk
}

// SearchConfig holds background search settings.
type SearchConfig struct {
	MaxResults int `toml:"max_results"`
}

// LogConfig holds logging settings. An empty File discards log output.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:    4,
			LineWrap:    true,
			LineNumbers: true,
			ChunkSize:   64 * 1024,
		},
		Search: SearchConfig{
			MaxResults: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the user configuration file path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fresh", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fresh", "config.toml")
}

// Load builds the configuration from defaults, the TOML file at path and
// the environment. An empty path or a missing file only skips that layer.
func Load(path string) (*Config, error) {
	return LoadFrom(loader.NewTOMLLoader(path), loader.NewEnvLoader(EnvPrefix))
}

// LoadFrom layers the given sources over the defaults, in order, and
// validates the result.
func LoadFrom(sources ...loader.Loader) (*Config, error) {
	var merged map[string]any
	for _, src := range sources {
		if f, ok := src.(*loader.TOMLLoader); ok && f.Path() == "" {
			continue
		}
		m, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := cfg.decode(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays the values in m onto c. Keys c does not know are
// ignored.
func (c *Config) decode(m map[string]any) error {
	if len(m) == 0 {
		return nil
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode merged config: %w", err)
	}
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Validate checks every setting and reports all failures.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}

	check(c.Editor.TabWidth >= 1 && c.Editor.TabWidth <= 16,
		"editor.tab_width", "must be between 1 and 16", c.Editor.TabWidth)
	check(c.Editor.ChunkSize >= 16,
		"editor.chunk_size", "must be at least 16 bytes", c.Editor.ChunkSize)
	check(c.Search.MaxResults >= 1 && c.Search.MaxResults <= 10000,
		"search.max_results", "must be between 1 and 10000", c.Search.MaxResults)

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		check(false, "log.level", "must be debug, info, warn or error", c.Log.Level)
	}

	return errors.Join(errs...)
}
