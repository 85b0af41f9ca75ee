// Package config loads armeasure settings with viper: built-in defaults,
// an optional config file, ARMEASURE_* environment variables and command
// line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all settings
type Config struct {
	LogLevel string       `mapstructure:"logLevel"`
	Scene    SceneConfig  `mapstructure:"scene"`
	Tracking TrackConfig  `mapstructure:"tracking"`
	Render   RenderConfig `mapstructure:"render"`
	Window   WindowConfig `mapstructure:"window"`
}

// SceneConfig describes how scene files are loaded
type SceneConfig struct {
	Units         string        `mapstructure:"units"`
	Watch         bool          `mapstructure:"watch"`
	WatchDebounce time.Duration `mapstructure:"watchDebounce"`
}

// TrackConfig tunes the simulated tracker
type TrackConfig struct {
	FeatureTolerance     float64 `mapstructure:"featureTolerance"`
	PlaneAngleTolerance  float64 `mapstructure:"planeAngleTolerance"` // degrees
	PlaneOffsetTolerance float64 `mapstructure:"planeOffsetTolerance"`
	MinPlaneArea         float64 `mapstructure:"minPlaneArea"`
}

// RenderConfig holds scene rendering settings
type RenderConfig struct {
	AnchorWarnThreshold int `mapstructure:"anchorWarnThreshold"`
}

// WindowConfig sizes the interactive viewers
type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// EnvPrefix is prepended to environment overrides, e.g. ARMEASURE_LOGLEVEL
const EnvPrefix = "ARMEASURE"

var unitScale = map[string]float64{
	"mm": 0.001,
	"cm": 0.01,
	"m":  1,
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("scene.units", "mm")
	v.SetDefault("scene.watch", true)
	v.SetDefault("scene.watchDebounce", "500ms")

	v.SetDefault("tracking.featureTolerance", 0.005)
	v.SetDefault("tracking.planeAngleTolerance", 10.0)
	v.SetDefault("tracking.planeOffsetTolerance", 0.01)
	v.SetDefault("tracking.minPlaneArea", 0.01)

	v.SetDefault("render.anchorWarnThreshold", 100)

	v.SetDefault("window.width", 1400)
	v.SetDefault("window.height", 900)
}

// Load builds the configuration. configFile may be empty. Flags named like
// the keys ("log-level" for logLevel, "units" for scene.units) override
// every other source.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"logLevel":    "log-level",
			"scene.units": "units",
			"scene.watch": "watch",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	if _, ok := unitScale[c.Scene.Units]; !ok {
		errs = append(errs, fmt.Errorf("scene.units: unknown unit %q (want mm, cm or m)", c.Scene.Units))
	}
	if c.Tracking.FeatureTolerance <= 0 {
		errs = append(errs, errors.New("tracking.featureTolerance must be positive"))
	}
	if c.Tracking.PlaneAngleTolerance <= 0 || c.Tracking.PlaneAngleTolerance >= 45 {
		errs = append(errs, errors.New("tracking.planeAngleTolerance must be between 0 and 45 degrees"))
	}
	if c.Tracking.PlaneOffsetTolerance <= 0 {
		errs = append(errs, errors.New("tracking.planeOffsetTolerance must be positive"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, errors.New("window size must be positive"))
	}
	return errors.Join(errs...)
}

// UnitScale is the factor taking scene file units to meters
func (c *Config) UnitScale() float64 {
	return unitScale[c.Scene.Units]
}

// PlaneAngleRadians returns the plane angle tolerance in radians
func (c *Config) PlaneAngleRadians() float64 {
	return c.Tracking.PlaneAngleTolerance * math.Pi / 180
}
