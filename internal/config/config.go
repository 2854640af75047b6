// Package config holds the optimizer's configuration: classification policy,
// host and export settings, texture budget, and logging.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"avatar-quest-optimizer/internal/host"
	"avatar-quest-optimizer/internal/rules"
)

// Config is the full settings tree. Priority: defaults < YAML file < flags.
type Config struct {
	Keywords KeywordsConfig `yaml:"keywords"`
	Ratios   RatiosConfig   `yaml:"ratios"`
	Decimate DecimateConfig `yaml:"decimate"`
	Export   ExportConfig   `yaml:"export"`
	Blender  BlenderConfig  `yaml:"blender"`
	Textures TextureConfig  `yaml:"textures"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// KeywordsConfig holds the two case-insensitive substring lists.
type KeywordsConfig struct {
	Preserve   []string `yaml:"preserve"`
	Aggressive []string `yaml:"aggressive"`
}

// RatiosConfig holds the retained triangle fractions, each in (0,1].
type RatiosConfig struct {
	Standard   float64 `yaml:"standard"`
	Aggressive float64 `yaml:"aggressive"`
}

// DecimateConfig holds the boundary-preservation policy.
type DecimateConfig struct {
	Triangulate bool     `yaml:"triangulate"`
	UseSymmetry bool     `yaml:"use_symmetry"`
	Delimit     []string `yaml:"delimit"`
}

// ExportConfig holds export settings.
type ExportConfig struct {
	Suffix string `yaml:"suffix"`
}

// BlenderConfig locates and bounds the host process.
type BlenderConfig struct {
	Binary     string `yaml:"binary"`
	TimeoutSec int    `yaml:"timeout_seconds"` // per session; 0 disables
}

// Timeout returns the per-session bound as a duration.
func (b BlenderConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSec) * time.Second
}

// TextureConfig holds the texture budget pass settings.
type TextureConfig struct {
	Enabled bool `yaml:"enabled"`
	MaxSize int  `yaml:"max_size"`
	Workers int  `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the stock Quest policy.
func Default() Config {
	rs := rules.Default()
	dec := host.DefaultDecimateOptions()
	return Config{
		Keywords: KeywordsConfig{
			Preserve:   rs.Preserve,
			Aggressive: rs.Aggressive,
		},
		Ratios: RatiosConfig{
			Standard:   rs.StandardRatio,
			Aggressive: rs.AggressiveRatio,
		},
		Decimate: DecimateConfig{
			Triangulate: dec.Triangulate,
			UseSymmetry: dec.UseSymmetry,
			Delimit:     dec.Delimit,
		},
		Export: ExportConfig{
			Suffix: "_QUEST_SMART",
		},
		Blender: BlenderConfig{
			Binary:     "blender",
			TimeoutSec: 600,
		},
		Textures: TextureConfig{
			Enabled: true,
			MaxSize: 1024,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Blender      string
	Suffix       string
	MaxTexture   int
	SkipTextures bool
	Verbose      bool
}

// Resolve applies CLI flag overrides. Flags win over file values when set.
func (c *Config) Resolve(flags Flags) {
	if flags.Blender != "" {
		c.Blender.Binary = flags.Blender
	}
	if flags.Suffix != "" {
		c.Export.Suffix = flags.Suffix
	}
	if flags.MaxTexture > 0 {
		c.Textures.MaxSize = flags.MaxTexture
	}
	if flags.SkipTextures {
		c.Textures.Enabled = false
	}
	if flags.Verbose {
		c.Logging.Level = "debug"
	}
}

// Rules builds the classifier ruleset from the config.
func (c *Config) Rules() rules.Ruleset {
	return rules.Ruleset{
		Preserve:        c.Keywords.Preserve,
		Aggressive:      c.Keywords.Aggressive,
		StandardRatio:   c.Ratios.Standard,
		AggressiveRatio: c.Ratios.Aggressive,
	}
}

// DecimateOptions builds the host decimation policy from the config.
func (c *Config) DecimateOptions() host.DecimateOptions {
	return host.DecimateOptions{
		Triangulate: c.Decimate.Triangulate,
		UseSymmetry: c.Decimate.UseSymmetry,
		Delimit:     c.Decimate.Delimit,
	}
}
