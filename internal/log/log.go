// SPDX-License-Identifier: GPL-3.0-or-later

// Package log holds the zap logger used by the qname command.
package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = zap.NewNop()

// L returns the configured logger, or a no-op logger before [Configure].
func L() *zap.Logger {
	return global
}

// SetLogger replaces the logger returned by [L].
func SetLogger(l *zap.Logger) {
	global = l
}

// Configure installs a logger for the given environment ("dev" or
// "prod") and level ("debug", "info", "warn" or "error").
func Configure(env, level string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger, err := newConfig(env != "prod", lvl).Build()
	if err != nil {
		return fmt.Errorf("cannot build logger: %w", err)
	}
	global = logger
	return nil
}

// newConfig returns a stderr config without stack traces, since the
// command only logs input errors that are also returned to the user.
func newConfig(dev bool, level zapcore.Level) zap.Config {
	config := zap.NewProductionConfig()
	if dev {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.DisableStacktrace = true
	config.EncoderConfig.TimeKey = "time"
	return config
}
