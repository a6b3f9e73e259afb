package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfigs(t *testing.T) {
	dev := DefaultConfig()
	assert.Equal(t, "console", dev.Format)
	assert.Equal(t, "stdout", dev.Output)
	assert.NotEmpty(t, dev.TimeFormat)

	prod := ProductionConfig()
	assert.Equal(t, "json", prod.Format)
	assert.Equal(t, "stdout", prod.Output)
}

func TestNew(t *testing.T) {
	cases := []*Config{
		DefaultConfig(),
		ProductionConfig(),
		{Level: "debug", Format: "console", Output: "stderr", TimeFormat: "2006-01-02T15:04:05Z07:00"},
		{Level: "error", Format: "json", Output: "stdout", TimeFormat: "2006-01-02T15:04:05Z07:00"},
	}
	for _, cfg := range cases {
		log, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, log)
	}
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", "staging"} {
		t.Run(env, func(t *testing.T) {
			log, err := NewForEnvironment(env)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.level), tt.level)
	}
}

func TestBuildWriter(t *testing.T) {
	for _, output := range []string{"stdout", "stderr", "STDOUT"} {
		assert.NotNil(t, buildWriter(output))
	}
}

func TestBuildWriterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brewhouse.log")
	writer := buildWriter(path)
	require.NotNil(t, writer)

	n, err := writer.Write([]byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(content))
}

func TestBuildWriterUnwritablePathFallsBack(t *testing.T) {
	writer := buildWriter("/nonexistent-dir/brewhouse.log")
	assert.NotNil(t, writer)
}

func TestBuildEncoder(t *testing.T) {
	console := buildEncoder(&Config{Format: "console", TimeFormat: "2006-01-02"})
	assert.NotNil(t, console)

	jsonEnc := buildEncoder(&Config{Format: "json", TimeFormat: "2006-01-02"})
	assert.NotNil(t, jsonEnc)
}

func TestJSONOutputShape(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		buildEncoder(&Config{Format: "json", TimeFormat: "2006-01-02T15:04:05Z07:00"}),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	log := zap.New(core)

	log.Info("batch planned", zap.String("batch_number", "BATCH-2026-00001"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "batch planned", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "BATCH-2026-00001", entry["batch_number"])
	assert.NotEmpty(t, entry["time"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		buildEncoder(&Config{Format: "json", TimeFormat: "2006-01-02"}),
		zapcore.AddSync(&buf),
		parseLevel("warn"),
	)
	log := zap.New(core)

	log.Info("suppressed")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestSync(t *testing.T) {
	log, err := NewForEnvironment("development")
	require.NoError(t, err)

	// Sync on stdout can fail on some platforms; it must not panic.
	_ = Sync(log)
}
