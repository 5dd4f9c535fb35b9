// Package config holds the settings of the keyboard command line tool as
// loaded by viper from a settings file, KEYBOARD_* environment variables and
// flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root settings structure. Strict rejects unknown and
// duplicate document keys; Lang selects the message language as a BCP 47 tag.
type Config struct {
	Strict bool         `mapstructure:"strict" yaml:"strict"`
	Lang   string       `mapstructure:"lang" yaml:"lang"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// LoggerConfig configures the process logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("strict", false)
	v.SetDefault("lang", "en")
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "keyboard")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)
}

// Validate checks the settings for values no component can work with.
func (c Config) Validate() error {
	switch strings.ToLower(c.Logger.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be \"console\" or \"json\", got %q", c.Logger.Format)
	}
	if c.Logger.MaxSize < 0 || c.Logger.MaxBackups < 0 || c.Logger.MaxAge < 0 {
		return fmt.Errorf("logger rotation limits must not be negative")
	}
	return nil
}
