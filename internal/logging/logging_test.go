package logging_test

import (
	"bytes"
	"testing"

	"github.com/Ikanga93/ritt-ai-assistant/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("warn", &buf)
	require.NoError(t, err)

	logger.Info("catalog loaded", zap.Int("items", 3))
	logger.Warn("skipped malformed entry", zap.String("id", "x1"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "catalog loaded")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "skipped malformed entry")
	assert.Contains(t, out, `"id": "x1"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"", zapcore.WarnLevel},
		{"DEBUG", zapcore.DebugLevel},
		{" info ", zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := logging.ParseLevel(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}
