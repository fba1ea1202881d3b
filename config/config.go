// Package config loads runtime settings with viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GameConfig holds per-run rules.
type GameConfig struct {
	Lives    int           `mapstructure:"lives"`
	PlayTime time.Duration `mapstructure:"play_time"`
	Level    string        `mapstructure:"level"`
}

// ViewportConfig is the logical screen size in pixels. Pools materialize and
// cull relative to it.
type ViewportConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	Scale  int `mapstructure:"scale"`
}

type PhysicsConfig struct {
	Gravity float64 `mapstructure:"gravity"`
	StepHz  int     `mapstructure:"step_hz"`
}

// StepSeconds is the fixed physics step.
func (p PhysicsConfig) StepSeconds() float64 {
	if p.StepHz <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(p.StepHz)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

type PrefabsConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Viewport ViewportConfig `mapstructure:"viewport"`
	Physics  PhysicsConfig  `mapstructure:"physics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Prefabs  PrefabsConfig  `mapstructure:"prefabs"`
	Debug    bool           `mapstructure:"debug"`
}

// Validate returns nil or one error describing every violation.
func (c Config) Validate() error {
	var errs []string

	if c.Game.Lives < 1 {
		errs = append(errs, fmt.Sprintf("game.lives must be >= 1, got %d", c.Game.Lives))
	}
	if c.Game.PlayTime < time.Second {
		errs = append(errs, fmt.Sprintf("game.play_time must be at least 1s, got %s", c.Game.PlayTime))
	}
	if c.Game.Level == "" {
		errs = append(errs, "game.level must not be empty")
	}
	if c.Viewport.Width < 1 || c.Viewport.Height < 1 {
		errs = append(errs, fmt.Sprintf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Viewport.Scale < 1 {
		errs = append(errs, fmt.Sprintf("viewport.scale must be >= 1, got %d", c.Viewport.Scale))
	}
	if c.Physics.StepHz < 1 {
		errs = append(errs, fmt.Sprintf("physics.step_hz must be >= 1, got %d", c.Physics.StepHz))
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads the optional YAML file at path, applies PLATFORMER_ environment
// overrides and validates the result. An empty path uses defaults and the
// environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PLATFORMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.lives", 3)
	v.SetDefault("game.play_time", "180s")
	v.SetDefault("game.level", "world1-1.json")

	v.SetDefault("viewport.width", 400)
	v.SetDefault("viewport.height", 240)
	v.SetDefault("viewport.scale", 2)

	v.SetDefault("physics.gravity", 650)
	v.SetDefault("physics.step_hz", 60)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("prefabs.dir", "prefabs")
	v.SetDefault("prefabs.watch", false)

	v.SetDefault("debug", false)
}
