// Package config loads the CLI driver's configuration. The core book
// engine itself is configuration-free; only the host layer needs this.
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config controls the CLI driver: which symbol to run, how it logs, and
// how deep a snapshot it prints.
type Config struct {
	Symbol        string
	LogLevel      string
	SnapshotDepth int
}

// Load reads config.yaml from the current directory (if present), falling
// back to hardcoded defaults, and allows environment variables to override
// any key.
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("symbol", "BTC-USD")
	viper.SetDefault("loglevel", "info")
	viper.SetDefault("snapshotdepth", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("no config.yaml found, using defaults and environment: %v", err)
	}

	return &Config{
		Symbol:        viper.GetString("symbol"),
		LogLevel:      viper.GetString("loglevel"),
		SnapshotDepth: viper.GetInt("snapshotdepth"),
	}
}
