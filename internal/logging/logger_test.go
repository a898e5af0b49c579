package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		level      string
		enabled    zapcore.Level
		disabled   zapcore.Level
	}{
		{"development debug", false, "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"production default", true, "", zapcore.InfoLevel, zapcore.DebugLevel},
		{"upper case", true, "WARN", zapcore.WarnLevel, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.production, tt.level)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.disabled))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(false, "chatty")
	assert.Error(t, err)
}
