// Package config loads runtime options from a TOML file under the XDG
// config home, with PTOP_ environment overrides. Flags parsed by the CLI
// layer take precedence over everything here.
package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

type Config struct {
	RefreshInterval   time.Duration `mapstructure:"refresh_interval"`
	DispatchTimeout   time.Duration `mapstructure:"dispatch_timeout"`
	DefaultSignal     string        `mapstructure:"default_signal"` // "term" or "kill"
	Protected         []string      `mapstructure:"protected"`
	CPUMatchTolerance float64       `mapstructure:"cpu_match_tolerance"`
}

// Path returns the config file location, whether or not it exists.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "ptop", "config.toml")
}

func Default() *Config {
	return &Config{
		RefreshInterval:   2 * time.Second,
		DispatchTimeout:   3 * time.Second,
		DefaultSignal:     "term",
		Protected:         []string{"init", "systemd", "launchd", "kernel_task", "sshd"},
		CPUMatchTolerance: 0.5,
	}
}

// Load reads the config file if present. A missing file is not an error;
// a malformed one returns defaults alongside the error so the caller can
// warn and keep going.
func Load() (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Dir(Path()))
	v.SetEnvPrefix("PTOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("refresh_interval", def.RefreshInterval.String())
	v.SetDefault("dispatch_timeout", def.DispatchTimeout.String())
	v.SetDefault("default_signal", def.DefaultSignal)
	v.SetDefault("protected", def.Protected)
	v.SetDefault("cpu_match_tolerance", def.CPUMatchTolerance)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return def, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, err
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = def.RefreshInterval
	}
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = def.DispatchTimeout
	}
	if cfg.CPUMatchTolerance <= 0 {
		cfg.CPUMatchTolerance = def.CPUMatchTolerance
	}
	return &cfg, nil
}
