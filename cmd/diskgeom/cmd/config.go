package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings shared by all commands
type Config struct {
	Unit        string `mapstructure:"unit"`
	LogLevel    string `mapstructure:"log-level"`
	SectorSize  int    `mapstructure:"sector-size"`
	Granularity int64  `mapstructure:"granularity"`
}

// loadConfig reads cfgFile, or diskgeom.yaml from the working directory or
// $HOME/.config/diskgeom when cfgFile is empty. DISKGEOM_* environment
// variables and flags bound to v override the file.
func loadConfig(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/" + AppName)
	}

	v.SetDefault("unit", "compact")
	v.SetDefault("log-level", "warning")
	v.SetDefault("sector-size", 0)
	v.SetDefault("granularity", 1)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}
