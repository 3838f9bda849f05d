package config

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/xprintidle/internal/errors"
	"github.com/spf13/viper"
)

const (
	appName          = "xprintidle"
	defaultEnvPrefix = "XPRINTIDLE"
	configFileName   = "xprintidle"
	configFileType   = "toml"
	historyFileName  = "history.db"

	// DefaultLogLevel keeps a normal run silent on stderr.
	DefaultLogLevel = string(LogLevelWarning)
)

type Config struct {
	Display  string        `mapstructure:"display"`
	LogLevel string        `mapstructure:"log_level"`
	History  HistoryConfig `mapstructure:"history"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from the environment and an optional TOML file.
// Command line arguments are not consulted.
func Load(opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: defaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	v.SetDefault("display", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", defaultHistoryPath())

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := o.configPath
	if configPath == "" {
		configPath = os.Getenv(o.envPrefix + "_CONFIG")
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType(configFileType)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, appName))
		}
		v.AddConfigPath("/etc")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the current configuration is valid
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.History.Enabled && c.History.Path == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "history enabled without a database path")
	}

	return nil
}

func defaultHistoryPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName, historyFileName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".local", "state", appName, historyFileName)
}
