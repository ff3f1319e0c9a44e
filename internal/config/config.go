// Package config loads application configuration from an optional config
// file and SPENDLITE_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Data  DataConfig
	View  ViewConfig
	Serve ServeConfig
}

// DataConfig locates persistent data on disk.
type DataConfig struct {
	Dir       string `mapstructure:"dir"`        // holds the kv store and the import/ directory
	RulesFile string `mapstructure:"rules_file"` // optional rules file used when nothing is persisted
}

// ViewConfig holds presentation settings.
type ViewConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// ServeConfig holds HTTP settings.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// SPENDLITE_, e.g. SPENDLITE_DATA_DIR.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("data.dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "spendlite"))
	v.SetDefault("data.rules_file", "")
	v.SetDefault("view.page_size", 10)
	v.SetDefault("serve.addr", ":8080")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SPENDLITE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "spendlite"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SPENDLITE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// StorePath returns the kv store location under the data dir.
func (c Config) StorePath() string {
	return filepath.Join(c.Data.Dir, "spendlite.db")
}
