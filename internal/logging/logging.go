// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the zap logger used across the client.
//
// The terminal belongs to the UI, so log output goes to a file only.
// Controllers receive a *zap.Logger explicitly; L and S expose the process
// logger for code without an injected one.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init builds the process logger. level is a zap level name ("info" on
// parse failure), format is "json" or "console", and path is the log file.
// An empty path discards all output.
func Init(level, format, path string) (*zap.Logger, error) {
	if path == "" {
		return Replace(zap.NewNop()), nil
	}

	logLevel := zap.NewAtomicLevel()
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel.SetLevel(zap.InfoLevel)
	}

	var zapConfig zap.Config
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.Level = logLevel
	zapConfig.Encoding = "json"
	if format == "console" {
		zapConfig.Encoding = "console"
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	zapConfig.OutputPaths = []string{path}
	zapConfig.ErrorOutputPaths = []string{path}

	built, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return Replace(built), nil
}

// Replace swaps the process logger and returns the new one.
func Replace(l *zap.Logger) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
	return l
}

// L returns the process logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// S returns the process logger in sugared form.
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
