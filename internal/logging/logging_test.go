package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerbosity(t *testing.T) {
	for input, want := range map[string]VerbosityLevel{
		"Verbose":   Verbose,
		"info":      Info,
		" WARNING ": Warning,
		"Error":     Error,
		"off":       Off,
	} {
		got, err := ParseVerbosity(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseVerbosity("chatty")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Warning, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "file", "a.js")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "file=a.js")

	buf.Reset()
	NewLogger(Off, &buf).Error("nothing")
	assert.Empty(t, buf.String())

	assert.Equal(t, slog.LevelDebug, Verbose.SlogLevel())
	assert.Equal(t, "Warning", Warning.String())
}
