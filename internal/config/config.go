// Package config reads the function's environment configuration.
package config

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultLogLevel is used when LOG_LEVEL is unset.
const DefaultLogLevel = "INFO"

// Config is read once at cold start.
type Config struct {
	LogLevel     string
	FunctionName string
}

// Load reads configuration from the environment.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("log_level", DefaultLogLevel)

	return Config{
		LogLevel:     v.GetString("log_level"),
		FunctionName: v.GetString("aws_lambda_function_name"),
	}
}

// Level maps LogLevel to a logrus level. Python logging names such as
// WARNING and CRITICAL are accepted. Unknown values fall back to info.
func (c Config) Level() (logrus.Level, bool) {
	name := strings.ToLower(strings.TrimSpace(c.LogLevel))
	if name == "critical" {
		return logrus.FatalLevel, true
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel, false
	}
	return level, true
}

// NewLogger builds the process logger. The second return is false when
// LOG_LEVEL was not recognized.
func (c Config) NewLogger() (*logrus.Logger, bool) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, ok := c.Level()
	logger.SetLevel(level)
	return logger, ok
}
