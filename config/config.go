// Package config loads game settings from TOML and LIQUIDSORT_ environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/liquid-sort/constants"
	"github.com/lixenwraith/liquid-sort/pour"
)

// EnvPrefix prefixes environment overrides, e.g. LIQUIDSORT_POUR_POUR_DURATION=2s
const EnvPrefix = "LIQUIDSORT"

// FileName is the config file searched for when no path is given
const FileName = "liquid-sort"

// ErrInvalidConfig wraps validation failures
var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration
type Config struct {
	Game  GameConfig
	Pour  PourConfig
	Audio AudioConfig
	Log   LogConfig

	// Keys rebinds keys to actions, e.g. {"x": "restart", "space": "pause"}
	Keys map[string]string

	// Source is the config file that was read, empty when only defaults and env applied
	Source string `mapstructure:"-"`
}

// GameConfig holds board and loop settings
type GameConfig struct {
	Capacity     int
	TickInterval time.Duration `mapstructure:"tick_interval"`
	Level        string        // Level file, empty for the built-in level
}

// PourConfig holds the pour animation calibration
// Curves are lists of [angle, value] pairs
type PourConfig struct {
	ApproachDuration time.Duration `mapstructure:"approach_duration"`
	PourDuration     time.Duration `mapstructure:"pour_duration"`
	SettleDuration   time.Duration `mapstructure:"settle_duration"`
	ReturnDuration   time.Duration `mapstructure:"return_duration"`
	RotationAngles   []float64     `mapstructure:"rotation_angles"`
	FillLevels       []float64     `mapstructure:"fill_levels"`
	FillCurve        [][]float64   `mapstructure:"fill_curve"`
	ScaleCurve       [][]float64   `mapstructure:"scale_curve"`
	SpeedCurve       [][]float64   `mapstructure:"speed_curve"`
	Epsilon          float64
}

// AudioConfig holds sound settings
type AudioConfig struct {
	Enabled bool
	Volume  float64 // Base-2 gain, 0 is unity
}

// LogConfig holds debug log settings
type LogConfig struct {
	File  string
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.capacity", constants.DefaultCapacity)
	v.SetDefault("game.tick_interval", constants.FrameUpdateInterval)
	v.SetDefault("game.level", "")

	v.SetDefault("pour.approach_duration", constants.PourApproachDuration)
	v.SetDefault("pour.pour_duration", constants.PourRotateDuration)
	v.SetDefault("pour.settle_duration", constants.PourSettleDuration)
	v.SetDefault("pour.return_duration", constants.PourReturnDuration)
	v.SetDefault("pour.rotation_angles", constants.DefaultRotationAngles)
	v.SetDefault("pour.fill_levels", constants.DefaultFillLevels)
	v.SetDefault("pour.fill_curve", pairsToRows(constants.DefaultFillCurve))
	v.SetDefault("pour.scale_curve", pairsToRows(constants.DefaultScaleCurve))
	v.SetDefault("pour.speed_curve", pairsToRows(constants.DefaultSpeedCurve))
	v.SetDefault("pour.epsilon", constants.PourFillEpsilon)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", constants.DefaultAudioVolume)

	v.SetDefault("log.file", filepath.Join(constants.LogDir, constants.LogFileName))
	v.SetDefault("log.level", "debug")
}

// Default returns the built-in configuration
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	// Defaults always decode
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration from path, or searches the working directory and the
// user config directory when path is empty. A missing searched file is not an error
// Environment variables override both
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, FileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Source = v.ConfigFileUsed()

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Save writes cfg as TOML to path, creating the directory if needed
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("game.capacity", cfg.Game.Capacity)
	v.Set("game.tick_interval", cfg.Game.TickInterval.String())
	v.Set("game.level", cfg.Game.Level)
	v.Set("pour.approach_duration", cfg.Pour.ApproachDuration.String())
	v.Set("pour.pour_duration", cfg.Pour.PourDuration.String())
	v.Set("pour.settle_duration", cfg.Pour.SettleDuration.String())
	v.Set("pour.return_duration", cfg.Pour.ReturnDuration.String())
	v.Set("pour.rotation_angles", cfg.Pour.RotationAngles)
	v.Set("pour.fill_levels", cfg.Pour.FillLevels)
	v.Set("pour.fill_curve", cfg.Pour.FillCurve)
	v.Set("pour.scale_curve", cfg.Pour.ScaleCurve)
	v.Set("pour.speed_curve", cfg.Pour.SpeedCurve)
	v.Set("pour.epsilon", cfg.Pour.Epsilon)
	v.Set("audio.enabled", cfg.Audio.Enabled)
	v.Set("audio.volume", cfg.Audio.Volume)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)
	if len(cfg.Keys) > 0 {
		v.Set("keys", cfg.Keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks every section, including the pour calibration
func (c Config) Validate() error {
	if c.Game.Capacity <= 0 {
		return fmt.Errorf("%w: game.capacity %d must be positive", ErrInvalidConfig, c.Game.Capacity)
	}
	if c.Game.TickInterval <= 0 {
		return fmt.Errorf("%w: game.tick_interval %v must be positive", ErrInvalidConfig, c.Game.TickInterval)
	}
	if c.Audio.Volume < constants.MinAudioVolume || c.Audio.Volume > constants.MaxAudioVolume {
		return fmt.Errorf("%w: audio.volume %v out of [%v,%v]", ErrInvalidConfig,
			c.Audio.Volume, constants.MinAudioVolume, constants.MaxAudioVolume)
	}
	if _, err := c.PourConfig(); err != nil {
		return err
	}
	return nil
}

// PourConfig converts the pour section into a validated pour.Config
func (c Config) PourConfig() (pour.Config, error) {
	p := c.Pour
	curves := make(map[string]pour.Curve, 3)
	for name, rows := range map[string][][]float64{
		"fill_curve":  p.FillCurve,
		"scale_curve": p.ScaleCurve,
		"speed_curve": p.SpeedCurve,
	} {
		pairs, err := rowsToPairs(rows)
		if err != nil {
			return pour.Config{}, fmt.Errorf("%w: pour.%s: %v", ErrInvalidConfig, name, err)
		}
		curves[name] = pour.NewCurve(pairs)
	}

	cfg := pour.Config{
		ApproachDuration: p.ApproachDuration,
		PourDuration:     p.PourDuration,
		SettleDuration:   p.SettleDuration,
		ReturnDuration:   p.ReturnDuration,
		RotationAngles:   append([]float64(nil), p.RotationAngles...),
		FillLevels:       append([]float64(nil), p.FillLevels...),
		FillCurve:        curves["fill_curve"],
		ScaleCurve:       curves["scale_curve"],
		SpeedCurve:       curves["speed_curve"],
		Epsilon:          p.Epsilon,
	}
	if err := cfg.Validate(); err != nil {
		return pour.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func pairsToRows(pairs [][2]float64) [][]float64 {
	rows := make([][]float64, len(pairs))
	for i, p := range pairs {
		rows[i] = []float64{p[0], p[1]}
	}
	return rows
}

func rowsToPairs(rows [][]float64) ([][2]float64, error) {
	pairs := make([][2]float64, len(rows))
	for i, r := range rows {
		if len(r) != 2 {
			return nil, fmt.Errorf("key %d has %d values, want [angle, value]", i, len(r))
		}
		pairs[i] = [2]float64{r[0], r[1]}
	}
	return pairs, nil
}
