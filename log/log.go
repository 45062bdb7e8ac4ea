// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log provides a minimal leveled logger used to surface decode-time
// diagnostics (recorded anomalies, input that matches no known header) without
// forcing a dependency on any particular logging framework.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level is a logging severity.
type Level int

// Supported levels, lowest to highest severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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

// Logger is the minimal interface a caller-supplied logger must satisfy.
type Logger interface {
	Log(level Level, msg string) error
}

// stdLogger writes formatted lines to an io.Writer via the standard library
// logger.
type stdLogger struct {
	l *log.Logger
}

// NewStdLogger returns a Logger that writes to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{l: log.New(w, "", log.LstdFlags)}
}

func (s *stdLogger) Log(level Level, msg string) error {
	s.l.Printf("[%s] %s", level, msg)
	return nil
}

// filter wraps a Logger and drops messages below a minimum level.
type filter struct {
	next Logger
	min  Level
}

// FilterLevel returns a Logger option value recognized by NewFilter.
func FilterLevel(min Level) Level { return min }

// NewFilter returns a Logger that forwards to next only messages at or
// above min.
func NewFilter(next Logger, min Level) Logger {
	return &filter{next: next, min: min}
}

func (f *filter) Log(level Level, msg string) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, msg)
}

// Helper adds convenience formatting methods on top of a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	if logger == nil {
		logger = NewStdLogger(os.Stdout)
	}
	return &Helper{logger: logger}
}

// Debugf logs at LevelDebug.
func (h *Helper) Debugf(format string, args ...interface{}) {
	h.logger.Log(LevelDebug, fmt.Sprintf(format, args...))
}

// Infof logs at LevelInfo.
func (h *Helper) Infof(format string, args ...interface{}) {
	h.logger.Log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs at LevelWarn.
func (h *Helper) Warnf(format string, args ...interface{}) {
	h.logger.Log(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs at LevelError.
func (h *Helper) Errorf(format string, args ...interface{}) {
	h.logger.Log(LevelError, fmt.Sprintf(format, args...))
}
