// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log provides a small leveled, structured logging abstraction used
// throughout the parser to report non-fatal anomalies encountered while
// decoding a file.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level is a logging severity.
type Level int8

// The set of severities, lowest first.
const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal interface every sink in this package implements.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes formatted log lines to an io.Writer.
type stdLogger struct {
	mu  sync.Mutex
	out *log.Logger
}

// NewStdLogger returns a Logger that writes to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{out: log.New(w, "", log.LstdFlags)}
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	if len(keyvals) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprint(keyvals...)
	l.out.Printf("[%s] %s", level, msg)
	return nil
}

// FilterOption configures a filtering Logger created by NewFilter.
type FilterOption func(*filter)

// FilterLevel drops any Log call below the given level.
func FilterLevel(level Level) FilterOption {
	return func(f *filter) {
		f.level = level
	}
}

type filter struct {
	Logger
	level Level
}

// NewFilter wraps next so that only records at or above the configured
// level are forwarded.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filter{Logger: next, level: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	return f.Logger.Log(level, keyvals...)
}

// Helper wraps a Logger with convenience, level-specific methods.
type Helper struct {
	logger Logger
}

// NewHelper returns a Helper over logger. A nil logger is valid; all
// methods become no-ops, so callers never need to guard against a missing
// logger being configured.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, keyvals ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(level, keyvals...)
}

// Debug logs at LevelDebug.
func (h *Helper) Debug(args ...interface{}) { h.log(LevelDebug, args...) }

// Debugf logs a formatted message at LevelDebug.
func (h *Helper) Debugf(format string, args ...interface{}) {
	h.log(LevelDebug, fmt.Sprintf(format, args...))
}

// Info logs at LevelInfo.
func (h *Helper) Info(args ...interface{}) { h.log(LevelInfo, args...) }

// Infof logs a formatted message at LevelInfo.
func (h *Helper) Infof(format string, args ...interface{}) {
	h.log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn logs at LevelWarn.
func (h *Helper) Warn(args ...interface{}) { h.log(LevelWarn, args...) }

// Warnf logs a formatted message at LevelWarn.
func (h *Helper) Warnf(format string, args ...interface{}) {
	h.log(LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs at LevelError.
func (h *Helper) Error(args ...interface{}) { h.log(LevelError, args...) }

// Errorf logs a formatted message at LevelError.
func (h *Helper) Errorf(format string, args ...interface{}) {
	h.log(LevelError, fmt.Sprintf(format, args...))
}

// DefaultLogger is a ready-to-use Logger writing to stderr at LevelInfo and
// above, handy for callers that do not wish to configure one explicitly.
var DefaultLogger = NewFilter(NewStdLogger(os.Stderr), FilterLevel(LevelInfo))
