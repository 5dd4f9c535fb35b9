// Package cli implements the keyboard command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	keyboard "github.com/reoring/keyboard"
	"github.com/reoring/keyboard/i18n"
	"github.com/reoring/keyboard/internal/config"
	"github.com/reoring/keyboard/internal/observability"
)

const envPrefix = "KEYBOARD"

// app carries the state shared by the commands of one root command.
type app struct {
	v        *viper.Viper
	cfgFile  string
	settings config.Config
}

// NewRootCommand builds a fresh command tree with its own settings.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:           "keyboard",
		Short:         "Validate, inspect and plot keyboard descriptions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			observability.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "settings file (default is ./keyboard.yaml or ~/.config/keyboard/keyboard.yaml)")
	pf.Bool("strict", false, "reject unknown and duplicate document keys")
	pf.String("lang", "", "message language as a BCP 47 tag, e.g. ja-JP")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format on stderr (console or json)")
	pf.String("log-file", "", "also write JSON logs to this rotating file")
	for key, flag := range map[string]string{
		"strict":          "strict",
		"lang":            "lang",
		"logger.level":    "log-level",
		"logger.format":   "log-format",
		"logger.log_file": "log-file",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newValidateCommand(a),
		newInspectCommand(a),
		newPlotCommand(a),
		newSchemaCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		observability.GetLogger().Debug("command failed", zap.Error(err))
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := a.initializeConfig(); err != nil {
		return err
	}
	if err := a.v.Unmarshal(&a.settings); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	if err := a.settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if f := a.settings.Logger.LogFile; f != "" {
		p, err := homedir.Expand(f)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		a.settings.Logger.LogFile = p
	}

	observability.Initialize(a.settings.Logger, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
	i18n.SetLanguage(a.settings.Lang)
	observability.GetLogger().Debug("settings loaded",
		zap.String("file", a.v.ConfigFileUsed()),
		zap.Bool("strict", a.settings.Strict),
		zap.String("lang", a.settings.Lang),
	)
	return nil
}

// initializeConfig points viper at the settings file and the environment.
// A missing default settings file is not an error.
func (a *app) initializeConfig() error {
	config.SetDefaults(a.v)
	if a.cfgFile != "" {
		p, err := homedir.Expand(a.cfgFile)
		if err != nil {
			return fmt.Errorf("settings file: %w", err)
		}
		a.v.SetConfigFile(p)
	} else {
		a.v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "keyboard"))
		}
		a.v.SetConfigName("keyboard")
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read settings: %w", err)
		}
	}
	return nil
}

// load reads the keyboard description at path with the current settings.
func (a *app) load(path string) (*keyboard.Keyboard, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	return keyboard.FromFile(p, keyboard.LoadOpt{
		Strict: a.settings.Strict,
		Logger: observability.GetLogger(),
	})
}
