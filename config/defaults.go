package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Corpus layout defaults
	v.SetDefault("base_dir", ".")
	v.SetDefault("languages", []string{}) // empty = all registered emitters

	// Generation defaults
	v.SetDefault("generation.min_fan_in", 4) // collision groups must span 4+ files
	v.SetDefault("generation.parallel", false)

	// Report defaults
	v.SetDefault("report.format", "text")
}
