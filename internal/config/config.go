// Package config loads opctl's own small operating configuration — not the
// pipeline topology compiled by internal/builder/internal/compiler, but the
// "how do I run opctl" settings: where the component registry schema lives,
// and whether --require-healthy defaults on. No opctl command calls Load;
// the settings are read and returned, and nothing else acts on them.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is opctl's own configuration, loaded from (in ascending
// precedence) defaults, a config file, OPCTL_-prefixed environment
// variables, and finally CLI flags (applied by the caller after Load
// returns).
type Config struct {
	// RegistryPath names a directory of CUE schema files, one schema per
	// component type. No schemas are loaded from it.
	RegistryPath string `mapstructure:"registry_path"`

	// DefaultRequireHealthy is the configured default for
	// --require-healthy; ConfigFlags does not consult it.
	DefaultRequireHealthy bool `mapstructure:"default_require_healthy"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{RegistryPath: "", DefaultRequireHealthy: false}
}

// Load reads opctl's configuration from configFile (if non-empty) layered
// over defaults and OPCTL_-prefixed environment variables. A missing
// configFile is not an error — Load falls back to Default() plus any
// environment overrides.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("OPCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("registry_path", def.RegistryPath)
	v.SetDefault("default_require_healthy", def.DefaultRequireHealthy)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading opctl config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding opctl config: %w", err)
	}
	return cfg, nil
}
