package config

import "codeberg.org/mutker/xprintidle/internal/logger"

// Option defines a configuration option that can be passed to Load
type Option func(*options) error

// options holds internal configuration options
type options struct {
	configPath string
	envPrefix  string
}

// WithConfigFile specifies an explicit configuration file path
func WithConfigFile(path string) Option {
	return func(o *options) error {
		o.configPath = path
		return nil
	}
}

// WithEnvPrefix specifies a custom environment variable prefix
// Default is "XPRINTIDLE"
func WithEnvPrefix(prefix string) Option {
	return func(o *options) error {
		o.envPrefix = prefix
		return nil
	}
}

// LogLevel is a configured logging level name
type LogLevel string

const LogLevelWarning LogLevel = "warning"

// IsValid returns whether the logger accepts the level name
func (l LogLevel) IsValid() bool {
	_, err := logger.ParseLevel(string(l))
	return err == nil
}
