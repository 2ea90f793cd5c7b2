// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

// Package logging provides the small leveled logger used by the
// iconinverter CLI. The library itself never logs; it reports diagnostics
// through a callback that the CLI routes here.
package logging

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
)

// Level is a log severity. Messages below the configured level are dropped.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var current atomic.Int32

func init() {
	current.Store(int32(LevelInfo))
}

// SetLevel sets the global logging level by name: "debug", "info", "warn"
// or "error". Unknown names fall back to info.
func SetLevel(name string) {
	current.Store(int32(parseLevel(name)))
}

func parseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func enabled(l Level) bool {
	return l >= Level(current.Load())
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	if enabled(LevelDebug) {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Info logs a progress message. Info output goes plainly to stdout; it is
// the CLI's normal narration.
func Info(format string, args ...any) {
	if enabled(LevelInfo) {
		fmt.Printf(format+"\n", args...)
	}
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	if enabled(LevelWarn) {
		log.Printf("[WARN] "+format, args...)
	}
}

// Error logs an error message.
func Error(format string, args ...any) {
	if enabled(LevelError) {
		log.Printf("[ERROR] "+format, args...)
	}
}
