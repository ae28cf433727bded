// Package config loads fixturegen configuration via Viper.
//
// Configuration sources, in precedence order: explicit file path,
// fixturegen.toml in the working directory, FIXTUREGEN_* environment
// variables, built-in defaults.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/fixturegen/errors"
)

// Config is the resolved fixturegen configuration.
type Config struct {
	// BaseDir is the directory under which per-language corpus roots
	// (webapp_go, webapp_py, ...) are created.
	BaseDir string `mapstructure:"base_dir"`

	// Languages selects which corpus targets to generate. Empty means all.
	Languages []string `mapstructure:"languages"`

	// Generation tuning.
	Generation GenerationConfig `mapstructure:"generation"`

	// Report controls run summary output.
	Report ReportConfig `mapstructure:"report"`
}

// GenerationConfig tunes the emission pass.
type GenerationConfig struct {
	// MinFanIn is the minimum number of files a collision group must span
	// for the corpus to count as exercising cross-file name resolution.
	MinFanIn int `mapstructure:"min_fan_in"`

	// Parallel runs one worker per language instead of sequential passes.
	Parallel bool `mapstructure:"parallel"`
}

// ReportConfig controls the run report artifact.
type ReportConfig struct {
	// Format is one of "text", "json", "yaml".
	Format string `mapstructure:"format"`
}

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the fixturegen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// Environment variable binding: FIXTUREGEN_GENERATION_MIN_FAN_IN etc.
	v.SetEnvPrefix("FIXTUREGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	v.SetConfigName("fixturegen")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	// Config file is optional; defaults and env cover the full surface.
	_ = v.ReadInConfig()

	viperInstance = v
	return v
}
