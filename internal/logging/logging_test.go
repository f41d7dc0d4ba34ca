package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New(Config{})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(Config{Level: "debug", Dev: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid level "loud"`)
}

func TestBuildZapConfig(t *testing.T) {
	prod := buildZapConfig(false)
	assert.Equal(t, "json", prod.Encoding)
	assert.NotNil(t, prod.Sampling)
	assert.Equal(t, []string{"stderr"}, prod.OutputPaths)

	dev := buildZapConfig(true)
	assert.Equal(t, "console", dev.Encoding)
	assert.Equal(t, "ts", dev.EncoderConfig.TimeKey)
}
