package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tolino-notes/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("text format", func(t *testing.T) {
		logger, err := NewLogger(config.Log{Level: "debug", Format: "text"})
		require.NoError(t, err)
		assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
		assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	})

	t.Run("json format", func(t *testing.T) {
		logger, err := NewLogger(config.Log{Level: "warn", Format: "JSON"})
		require.NoError(t, err)
		assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
		assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := NewLogger(config.Log{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewLogger(config.Log{Level: "info", Format: "xml"})
		assert.Error(t, err)
	})
}

func TestSetup(t *testing.T) {
	std := logrus.StandardLogger()
	level, formatter, out := std.GetLevel(), std.Formatter, std.Out
	t.Cleanup(func() {
		std.SetLevel(level)
		std.SetFormatter(formatter)
		std.SetOutput(out)
	})

	var buf bytes.Buffer
	logger, err := Setup(config.Log{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logrus.WithField("book", "Miss Merkel").Info("Exported book")
	logger.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Exported book", entry["msg"])
	assert.Equal(t, "Miss Merkel", entry["book"])
}
