package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.WarnLevel)

	log.Info().Msg("hidden")
	log.Warn().Str("module", "cache").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "module")
	assert.Contains(t, buf.String(), "cache")
}

func TestNewLoggerWithLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, NewLoggerWithLevel("debug").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLoggerWithLevel("nonsense").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLoggerWithLevel("").GetLevel())
}
