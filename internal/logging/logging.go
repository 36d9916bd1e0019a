package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// VerbosityLevel defines the logging verbosity.
type VerbosityLevel int

const (
	Verbose VerbosityLevel = iota
	Info
	Warning
	Error
	Off
)

var levelNames = map[VerbosityLevel]string{
	Verbose: "Verbose",
	Info:    "Info",
	Warning: "Warning",
	Error:   "Error",
	Off:     "Off",
}

func (v VerbosityLevel) String() string {
	if name, ok := levelNames[v]; ok {
		return name
	}
	return fmt.Sprintf("VerbosityLevel(%d)", int(v))
}

// ParseVerbosity parses a level name, case-insensitively.
func ParseVerbosity(s string) (VerbosityLevel, error) {
	for level, name := range levelNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return level, nil
		}
	}
	return Info, fmt.Errorf("unknown verbosity level %q (want Verbose, Info, Warning, Error or Off)", s)
}

// SlogLevel maps the verbosity to the minimum slog level that is written.
func (v VerbosityLevel) SlogLevel() slog.Level {
	switch v {
	case Verbose:
		return slog.LevelDebug
	case Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	case Off:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger writing to w at the given verbosity. Off discards
// everything.
func NewLogger(level VerbosityLevel, w io.Writer) *slog.Logger {
	if level == Off {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.SlogLevel()}))
}
