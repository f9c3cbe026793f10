package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level       string
		development bool
		want        zap.AtomicLevel
	}{
		{"debug", false, zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"TRACE", false, zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"info", true, zap.NewAtomicLevelAt(zap.InfoLevel)},
		{"warn", false, zap.NewAtomicLevelAt(zap.WarnLevel)},
		{"error", false, zap.NewAtomicLevelAt(zap.ErrorLevel)},
		{"", true, zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"bogus", false, zap.NewAtomicLevelAt(zap.InfoLevel)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want.Level(), ParseLevel(tt.level, tt.development), "level %q", tt.level)
	}
}

func TestNewNamed(t *testing.T) {
	log, err := NewNamed("production", "warn", "service-gallery")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))

	dev, err := NewNamed("development", "", "service-gallery")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))
}
