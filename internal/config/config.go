// Package config loads frombase settings from an optional YAML file and
// FROMBASE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/horasal/frombase"
)

// EnvPrefix prefixes every environment override, e.g. FROMBASE_LOG_LEVEL.
const EnvPrefix = "FROMBASE"

type Config struct {
	Log          LogConfig         `mapstructure:"log"`
	Plugin       PluginConfig      `mapstructure:"plugin"`
	DefaultTable string            `mapstructure:"default_table"`
	Tables       map[string]string `mapstructure:"tables"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

type PluginConfig struct {
	Encoding string `mapstructure:"encoding"` // json or msgpack
	Workers  int    `mapstructure:"workers"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Plugin: PluginConfig{
			Encoding: "json",
			Workers:  4,
		},
	}
}

// Load reads the config file at path. With an empty path it looks for
// frombase.yaml in the working directory and in $HOME/.config/frombase, and
// a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("plugin.encoding", def.Plugin.Encoding)
	v.SetDefault("plugin.workers", def.Plugin.Workers)
	v.SetDefault("default_table", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("frombase")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "frombase"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Plugin.Encoding {
	case "json", "msgpack":
	default:
		return fmt.Errorf("plugin.encoding must be json or msgpack, got %q", c.Plugin.Encoding)
	}
	if c.Plugin.Workers < 1 {
		return fmt.Errorf("plugin.workers must be at least 1, got %d", c.Plugin.Workers)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// RegisterTables adds the configured tables to the frombase registry.
// Viper lower-cases map keys, so table names are case-insensitive in the file.
func (c *Config) RegisterTables() error {
	for name, chars := range c.Tables {
		if err := frombase.RegisterTable(name, chars); err != nil {
			return fmt.Errorf("registering table %q: %w", name, err)
		}
	}
	return nil
}
