package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit_ReplacesGlobalLogger(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	logger, err := Init(false, "debug")
	require.NoError(t, err)

	assert.Same(t, logger, zap.L())
	assert.True(t, zap.L().Core().Enabled(zapcore.DebugLevel))
}

func TestInit_DefaultsToInfo(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	_, err := Init(true, "")
	require.NoError(t, err)

	assert.False(t, zap.L().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, zap.L().Core().Enabled(zapcore.InfoLevel))
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	_, err := Init(true, "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
