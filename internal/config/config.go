package config

import (
	"runtime"

	"github.com/spf13/viper"
)

// Config represents the scanner application configuration
type Config struct {
	// Scan settings
	Workers int      `mapstructure:"workers"` // number of parse workers, 0 = CPU count
	Exclude []string `mapstructure:"exclude"` // directory names or glob patterns to skip

	// Cache settings
	CacheDir     string `mapstructure:"cache_dir"`     // override for the per-user cache directory
	DisableCache bool   `mapstructure:"disable_cache"` // force full scans even in incremental mode

	// Analyzer settings
	RulesFile string `mapstructure:"rules_file"` // path to a YAML rule configuration

	// Watch settings
	DebounceMillis int `mapstructure:"debounce_millis"` // quiet period before a watch rescan
}

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("exclude", []string{".git", ".svn", "Library", "Temp", "node_modules"})
	v.SetDefault("cache_dir", "")
	v.SetDefault("disable_cache", false)
	v.SetDefault("rules_file", "")
	v.SetDefault("debounce_millis", 500)

	v.SetEnvPrefix("TIDYCRAFT")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// WorkerCount returns the effective worker pool size
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
