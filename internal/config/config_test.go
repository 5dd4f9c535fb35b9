package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, v *viper.Viper) Config {
	t.Helper()
	var c Config
	require.NoError(t, v.Unmarshal(&c))
	return c
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	c := load(t, v)

	assert.False(t, c.Strict)
	assert.Equal(t, "en", c.Lang)
	assert.Equal(t, "warn", c.Logger.Level)
	assert.Equal(t, "console", c.Logger.Format)
	assert.Equal(t, "keyboard", c.Logger.ServiceName)
	assert.Equal(t, 10, c.Logger.MaxSize)
	assert.NoError(t, c.Validate())
}

func TestSettingsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strict: true\nlogger:\n  level: debug\n  format: json\n"), 0o600))
	t.Setenv("KEYBOARD_LOGGER_LEVEL", "error")

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix("KEYBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	require.NoError(t, v.ReadInConfig())

	c := load(t, v)
	assert.True(t, c.Strict)
	assert.Equal(t, "json", c.Logger.Format)
	assert.Equal(t, "error", c.Logger.Level, "environment overrides the file")
}

func TestValidate(t *testing.T) {
	c := Config{Logger: LoggerConfig{Format: "xml"}}
	assert.ErrorContains(t, c.Validate(), "logger.format")

	c = Config{Logger: LoggerConfig{Format: "JSON", MaxAge: -1}}
	assert.ErrorContains(t, c.Validate(), "negative")
}
