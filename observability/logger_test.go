package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miosa/osa-gallery/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize_WriterGetsJSON(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var buf bytes.Buffer
	Initialize(config.LogConfig{Level: "debug"}, zapcore.AddSync(&buf))
	GetLogger().Named("gallery").Debug("preview heights", zap.Int("preview_height", 12))
	Sync()

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, ServiceName+".gallery", entry["logger"])
	assert.Equal(t, "preview heights", entry["msg"])
	assert.EqualValues(t, 12, entry["preview_height"])
}

func TestInitialize_LevelFilters(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var buf bytes.Buffer
	Initialize(config.LogConfig{Level: "warn"}, zapcore.AddSync(&buf))
	GetLogger().Info("hidden")
	GetLogger().Warn("shown")
	Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestInitialize_BadLevelDefaultsToInfo(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var buf bytes.Buffer
	Initialize(config.LogConfig{Level: "loud"}, zapcore.AddSync(&buf))
	GetLogger().Debug("debug")
	GetLogger().Info("info")
	Sync()

	assert.NotContains(t, buf.String(), `"msg":"debug"`)
	assert.Contains(t, buf.String(), `"msg":"info"`)
}

func TestInitialize_File(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	path := filepath.Join(t.TempDir(), "gallery.log")
	InitializeLogger(config.LogConfig{Level: "info", File: path, MaxSize: 1})
	GetLogger().Info("to file")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestInitialize_NoSinksIsNop(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	InitializeLogger(config.LogConfig{Level: "debug"})
	logger := GetLogger()
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestInitialize_OnlyOnce(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	var first, second bytes.Buffer
	Initialize(config.LogConfig{Level: "info"}, zapcore.AddSync(&first))
	Initialize(config.LogConfig{Level: "info"}, zapcore.AddSync(&second))
	GetLogger().Info("once")
	Sync()

	assert.Contains(t, first.String(), "once")
	assert.Empty(t, second.String())
}

func TestGetLogger_BeforeInitialize(t *testing.T) {
	ResetForTest()
	assert.NotNil(t, GetLogger())
	Sync() // no-op without a logger
}
