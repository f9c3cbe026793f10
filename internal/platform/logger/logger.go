package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger for the given environment. Development and test
// environments get a human-readable console encoder.
func New(env, level string) (*zap.Logger, error) {
	var config zap.Config

	if IsDevelopment(env) {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	config.Level = zap.NewAtomicLevelAt(ParseLevel(level, IsDevelopment(env)))

	return config.Build()
}

// NewNamed builds a logger and names it after the service.
func NewNamed(env, level, name string) (*zap.Logger, error) {
	log, err := New(env, level)
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}

// ParseLevel maps a textual level onto a zap level. Unknown or empty values
// fall back to debug in development and info elsewhere.
func ParseLevel(level string, development bool) zapcore.Level {
	switch strings.ToUpper(level) {
	case "TRACE", "DEBUG":
		return zap.DebugLevel
	case "INFO":
		return zap.InfoLevel
	case "WARN":
		return zap.WarnLevel
	case "ERROR":
		return zap.ErrorLevel
	}
	if development {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

// IsDevelopment reports whether env is a local development or test environment.
func IsDevelopment(env string) bool {
	switch strings.ToLower(env) {
	case "development", "dev", "test", "local":
		return true
	}
	return false
}
